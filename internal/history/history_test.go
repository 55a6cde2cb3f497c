package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsOrderedByYear(t *testing.T) {
	evts := Events()
	require.NotEmpty(t, evts)
	for i := 1; i < len(evts); i++ {
		assert.LessOrEqual(t, evts[i-1].Year, evts[i].Year)
	}
	assert.Equal(t, MinYear, evts[0].Year)
}

func TestActiveEvents(t *testing.T) {
	tests := []struct {
		name string
		year int
		want int
	}{
		{"before era", 1000, 0},
		{"first year", 1206, 1},
		{"just before baghdad", 1257, 5},
		{"baghdad enters", 1258, 6},
		{"end of era", 1300, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ActiveEvents(tt.year)
			assert.Len(t, got, tt.want)
			for _, e := range got {
				assert.LessOrEqual(t, e.Year, tt.year)
			}
		})
	}
}

func TestActiveEventsMonotonic(t *testing.T) {
	prev := 0
	for y := MinYear - 1; y <= MaxYear; y++ {
		n := len(ActiveEvents(y))
		assert.GreaterOrEqual(t, n, prev, "active set shrank at year %d", y)
		prev = n
	}
}

func TestBaghdadSiegeEntersAt1258(t *testing.T) {
	for _, e := range ActiveEvents(1257) {
		assert.NotEqual(t, "Siege of Baghdad", e.Title)
	}
	var found bool
	for _, e := range ActiveEvents(1258) {
		if e.Title == "Siege of Baghdad" {
			found = true
			assert.Equal(t, 1258, e.Year)
		}
	}
	assert.True(t, found)
}

func TestPersonaByID(t *testing.T) {
	p, ok := PersonaByID("genghis")
	require.True(t, ok)
	assert.Equal(t, "Genghis Khan", p.Name)
	assert.Equal(t, "Supreme Khan", p.Role)
	assert.NotEmpty(t, p.SystemPrompt)

	_, ok = PersonaByID("napoleon")
	assert.False(t, ok)
}

func TestEventByYear(t *testing.T) {
	e, ok := EventByYear(1258)
	require.True(t, ok)
	assert.Equal(t, "Siege of Baghdad", e.Title)

	_, ok = EventByYear(1207)
	assert.False(t, ok)
}

func TestClampYear(t *testing.T) {
	assert.Equal(t, MinYear, ClampYear(0))
	assert.Equal(t, MinYear, ClampYear(1205))
	assert.Equal(t, 1250, ClampYear(1250))
	assert.Equal(t, MaxYear, ClampYear(1301))
	assert.Equal(t, MaxYear, ClampYear(9999))
}

func TestCityConqueredPure(t *testing.T) {
	for _, c := range Cities() {
		assert.False(t, c.ConqueredBy(c.ConqueredYear-1), c.Name)
		assert.True(t, c.ConqueredBy(c.ConqueredYear), c.Name)
		assert.True(t, c.ConqueredBy(c.ConqueredYear), "idempotent for %s", c.Name)
	}
}

func TestCapitalPresent(t *testing.T) {
	var found bool
	for _, c := range Cities() {
		if c.Name == CapitalCity {
			found = true
			assert.True(t, c.ConqueredBy(MinYear))
		}
	}
	require.True(t, found)
}
