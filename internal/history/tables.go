package history

import "github.com/lennoxmeldrum/mongol-atlas/internal/domain"

// Timeline bounds of the covered era.
const (
	MinYear = 1206
	MaxYear = 1300
)

// CapitalCity is always labeled on the map regardless of state.
const CapitalCity = "Karakorum"

var events = []domain.HistoricalEvent{
	{
		Year:        1206,
		Title:       "Unification of Tribes",
		Description: "Temüjin is proclaimed Genghis Khan, uniting the Mongol tribes.",
		Location:    domain.LatLng{Lat: 47.9, Lng: 106.9},
	},
	{
		Year:        1215,
		Title:       "Fall of Zhongdu (Beijing)",
		Description: "The Mongols capture the Jin capital, marking a major expansion into China.",
		Location:    domain.LatLng{Lat: 39.9, Lng: 116.4},
	},
	{
		Year:        1219,
		Title:       "Invasion of Khwarezmia",
		Description: "The Mongols invade Central Asia after their envoys are executed.",
		Location:    domain.LatLng{Lat: 41.2, Lng: 69.2},
	},
	{
		Year:        1227,
		Title:       "Death of Genghis Khan",
		Description: "Genghis Khan dies; the empire is divided among his sons.",
		Location:    domain.LatLng{Lat: 38.0, Lng: 106.0},
	},
	{
		Year:        1240,
		Title:       "Fall of Kiev",
		Description: "Batu Khan's Golden Horde captures Kiev, devastating Rus'.",
		Location:    domain.LatLng{Lat: 50.45, Lng: 30.5},
	},
	{
		Year:        1258,
		Title:       "Siege of Baghdad",
		Description: "Hulagu Khan sacks Baghdad, ending the Islamic Golden Age.",
		Location:    domain.LatLng{Lat: 33.3, Lng: 44.4},
	},
	{
		Year:        1279,
		Title:       "Conquest of Song China",
		Description: "Kublai Khan defeats the Song Dynasty, establishing the Yuan Dynasty.",
		Location:    domain.LatLng{Lat: 30.2, Lng: 120.1},
	},
	{
		Year:        1294,
		Title:       "Pax Mongolica Peaks",
		Description: "The empire reaches its maximum stable extent before fracturing.",
		Location:    domain.LatLng{Lat: 45.0, Lng: 80.0},
	},
}

var cities = []domain.City{
	{Name: "Karakorum", Coordinates: [2]float64{102.78, 47.2}, ConqueredYear: 1200},
	{Name: "Beijing (Zhongdu)", Coordinates: [2]float64{116.4, 39.9}, ConqueredYear: 1215},
	{Name: "Samarkand", Coordinates: [2]float64{66.96, 39.65}, ConqueredYear: 1220},
	{Name: "Bukhara", Coordinates: [2]float64{64.42, 39.77}, ConqueredYear: 1220},
	{Name: "Kiev", Coordinates: [2]float64{30.52, 50.45}, ConqueredYear: 1240},
	{Name: "Baghdad", Coordinates: [2]float64{44.42, 33.31}, ConqueredYear: 1258},
	{Name: "Moscow", Coordinates: [2]float64{37.61, 55.75}, ConqueredYear: 1238},
	{Name: "Hangzhou", Coordinates: [2]float64{120.15, 30.27}, ConqueredYear: 1276},
	{Name: "Tabriz", Coordinates: [2]float64{46.29, 38.06}, ConqueredYear: 1231},
	{Name: "Sarai", Coordinates: [2]float64{47.5, 47.2}, ConqueredYear: 1242},
}

var personas = []domain.Persona{
	{
		ID:           "genghis",
		Name:         "Genghis Khan",
		Role:         "Supreme Khan",
		Avatar:       "https://picsum.photos/id/1005/200/200",
		SystemPrompt: "You are Genghis Khan (Temüjin). You are strategic, ruthless to enemies but loyal to those who submit. You value meritocracy and discipline. Speak with authority and archaic wisdom about the unification of the steppes and the Tengri.",
	},
	{
		ID:           "soldier",
		Name:         "Subutai's Archer",
		Role:         "Mongol Soldier",
		Avatar:       "https://picsum.photos/id/1011/200/200",
		SystemPrompt: "You are a common horse archer in the army of Subutai. You are tough, practical, and fiercely loyal. You talk about life in the saddle, the speed of the pony express (Yam), and the thrill of the hunt/battle.",
	},
	{
		ID:           "citizen",
		Name:         "Baghdad Scholar",
		Role:         "Conquered Citizen",
		Avatar:       "https://picsum.photos/id/1025/200/200",
		SystemPrompt: "You are a scholar living in Baghdad during the 1258 siege. You are fearful yet observant. You mourn the loss of the House of Wisdom. You describe the terrifying efficiency of the Mongol war machine from a victim's perspective.",
	},
	{
		ID:           "merchant",
		Name:         "Silk Road Merchant",
		Role:         "Trader",
		Avatar:       "https://picsum.photos/id/1060/200/200",
		SystemPrompt: "You are a merchant traveling the Silk Road under the Pax Mongolica. You appreciate the safety the Mongols bring to trade, despite their brutality. You talk about spices, silk, and the safe passage tokens (Paiza).",
	},
}
