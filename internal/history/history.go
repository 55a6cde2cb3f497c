// Package history holds the static tables of events, cities and
// personas covering the Mongol expansion (1206-1300), with read-only
// lookups over them. The tables are compiled in; there are no failure
// modes and no mutation operations.
package history

import "github.com/lennoxmeldrum/mongol-atlas/internal/domain"

// ClampYear bounds a year to the covered era.
func ClampYear(year int) int {
	if year < MinYear {
		return MinYear
	}
	if year > MaxYear {
		return MaxYear
	}
	return year
}

// Events returns all historical events ordered by year.
func Events() []domain.HistoricalEvent {
	out := make([]domain.HistoricalEvent, len(events))
	copy(out, events)
	return out
}

// Cities returns all tracked cities.
func Cities() []domain.City {
	out := make([]domain.City, len(cities))
	copy(out, cities)
	return out
}

// Personas returns all conversational personas.
func Personas() []domain.Persona {
	out := make([]domain.Persona, len(personas))
	copy(out, personas)
	return out
}

// PersonaByID looks up a persona by its identifier.
func PersonaByID(id string) (domain.Persona, bool) {
	for _, p := range personas {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Persona{}, false
}

// EventByYear returns the event triggered in the given year, if any.
func EventByYear(year int) (domain.HistoricalEvent, bool) {
	for _, e := range events {
		if e.Year == year {
			return e, true
		}
	}
	return domain.HistoricalEvent{}, false
}

// ActiveEvents returns the events whose year has been reached by the
// given timeline position. The result is monotonically non-decreasing
// in year; events stays ordered, so the prefix is returned.
func ActiveEvents(year int) []domain.HistoricalEvent {
	var out []domain.HistoricalEvent
	for _, e := range events {
		if e.Year > year {
			break
		}
		out = append(out, e)
	}
	return out
}
