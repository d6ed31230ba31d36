package postgres_adapter

import "time"

type demoCity struct {
	Slug     string
	Name     string
	Lat, Lng float64
}

type demoArtist struct {
	Name       string
	Bio        string
	CitySlug   string
	HourlyRate float64
	Rating     float64
	Genres     []string
	ImageID    int
}

type demoVenue struct {
	Name        string
	Type        string
	Description string
	CitySlug    string
	CapacityMin int
	CapacityMax int
	Rating      float64
	Amenities   []string
	ImageID     int
}

// demoEpoch - точка отсчета created_at, чтобы сортировка "newest" была воспроизводимой
var demoEpoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

var demoCities = []demoCity{
	{"wiesbaden", "Wiesbaden", 50.0782, 8.2398},
	{"frankfurt-am-main", "Frankfurt am Main", 50.1109, 8.6821},
	{"mainz", "Mainz", 49.9929, 8.2473},
	{"darmstadt", "Darmstadt", 49.8728, 8.6512},
	{"muenchen", "München", 48.1351, 11.5820},
	{"berlin", "Berlin", 52.5200, 13.4050},
	{"koeln", "Köln", 50.9375, 6.9603},
	{"hamburg", "Hamburg", 53.5511, 9.9937},
	{"leipzig", "Leipzig", 51.3397, 12.3731},
}

var demoGenres = map[string]string{
	"electronic":    "Electronic",
	"house":         "House",
	"deep-house":    "Deep House",
	"drum-and-bass": "Drum & Bass",
	"jazz":          "Jazz",
	"smooth-jazz":   "Smooth Jazz",
	"rock":          "Rock",
	"alternative":   "Alternative",
	"hip-hop":       "Hip-Hop",
	"deutschrap":    "Deutschrap",
	"classical":     "Klassik",
	"pop":           "Pop",
	"charts":        "Charts",
	"folk":          "Folk",
	"latin":         "Latin",
	"salsa":         "Salsa",
	"rnb":           "R&B",
	"soul":          "Soul",
	"metal":         "Metal",
	"heavy-metal":   "Heavy Metal",
	"reggae":        "Reggae",
}

var demoAmenities = []string{
	"stage", "sound-system", "lighting", "dance-floor", "bar", "coat-check", "piano",
	"backstage", "parking", "wheelchair-access", "outdoor-area", "wifi", "air-conditioning",
	"private-room", "kitchen", "green-room", "projector", "smoking-area",
}

var demoArtists = []demoArtist{
	{"DJ Nachtklang", "Deep electronic sounds from the heart of Wiesbaden. Resident DJ blending house, techno and deep house.", "wiesbaden", 120, 4.8, []string{"electronic", "house", "deep-house"}, 1011},
	{"Luna Voss", "Jazz vocalist and pianist performing across the Rhein-Main region. Smooth jazz for intimate evenings.", "frankfurt-am-main", 95, 4.9, []string{"jazz", "smooth-jazz"}, 1027},
	{"Steinbrech", "Alternative rock band from Mainz. Raw energy, authentic lyrics and powerful live performances.", "mainz", 85, 4.3, []string{"rock", "alternative"}, 1025},
	{"MC Rheinflow", "Bilingual MC bringing Deutschrap to the stage. Freestyle battles and high-energy live shows across Hessen.", "frankfurt-am-main", 150, 4.5, []string{"hip-hop", "deutschrap"}, 1012},
	{"Klara Engel", "Classically trained pianist and composer. Available for weddings and corporate events.", "muenchen", 200, 5.0, []string{"classical"}, 1029},
	{"Farbton", "Pop artist creating catchy melodies with electronic undertones.", "berlin", 110, 4.1, []string{"pop", "charts"}, 1005},
	{"Bass Monarch", "Drum & Bass specialist with high-octane DJ sets. Regular appearances at clubs across NRW.", "koeln", 130, 4.6, []string{"electronic", "drum-and-bass"}, 1074},
	{"The Wanderers", "Folk duo weaving storytelling and acoustic instruments into intimate performances.", "hamburg", 75, 4.4, []string{"folk"}, 1039},
	{"Sofia Ritmo", "Latin dance music with salsa, bachata and reggaeton vibes for every event.", "berlin", 100, 4.7, []string{"latin", "salsa"}, 1062},
	{"Velvet Echo", "Soulful R&B vocalist drawing on classic soul and modern R&B.", "koeln", 115, 4.8, []string{"rnb", "soul"}, 1044},
	{"Ironforge", "Heavy metal band from Leipzig. Thunderous riffs and pounding drums.", "leipzig", 90, 4.2, []string{"metal", "heavy-metal"}, 1059},
	{"Riddim Roots", "Reggae musician spreading positive vibes and conscious lyrics.", "darmstadt", 80, 4.0, []string{"reggae"}, 1069},
}

var demoVenues = []demoVenue{
	{"Nachtwerk Club", "CLUB", "Wiesbadens premier nightclub with world-class sound systems and international DJs.", "wiesbaden", 200, 800, 4.6, []string{"stage", "sound-system", "lighting", "dance-floor", "bar", "coat-check"}, 1016},
	{"Jazzkeller Frankfurt", "BAR", "Intimate jazz bar with live performances every evening in an underground atmosphere.", "frankfurt-am-main", 50, 150, 4.9, []string{"stage", "sound-system", "bar", "piano"}, 1033},
	{"Kulturhalle Mainz", "EVENT_SPACE", "Versatile event hall for concerts, corporate events and exhibitions with full accessibility.", "mainz", 300, 1000, 4.4, []string{"stage", "sound-system", "lighting", "backstage", "parking", "wheelchair-access"}, 1042},
	{"Skyline Lounge", "BAR", "Rooftop bar with views of the Frankfurt skyline. Craft cocktails and ambient music.", "frankfurt-am-main", 30, 100, 4.5, []string{"bar", "outdoor-area", "wifi", "air-conditioning"}, 1048},
	{"Palais München", "HOTEL", "Historic hotel with a grand ballroom for galas, weddings and corporate functions.", "muenchen", 100, 500, 4.7, []string{"stage", "sound-system", "private-room", "parking", "kitchen", "wifi"}, 1035},
	{"Berliner Halle", "EVENT_SPACE", "Massive event space in the heart of Berlin with cutting-edge production equipment.", "berlin", 500, 2000, 4.3, []string{"stage", "sound-system", "lighting", "backstage", "green-room", "projector"}, 1031},
	{"Rheinblick Restaurant", "RESTAURANT", "Fine dining overlooking the Rhine, available for private events and live music evenings.", "wiesbaden", 40, 120, 4.6, []string{"kitchen", "bar", "outdoor-area", "private-room", "wifi"}, 1058},
	{"Club Paradox", "CLUB", "Underground club in Köln with two dance floors and a legendary sound system.", "koeln", 300, 1200, 4.8, []string{"stage", "sound-system", "lighting", "dance-floor", "bar", "smoking-area"}, 1052},
	{"Hafenspeicher", "EVENT_SPACE", "Converted warehouse in the Hamburg harbor district for concerts and cultural events.", "hamburg", 200, 600, 4.5, []string{"stage", "sound-system", "backstage", "parking", "projector"}, 1015},
	{"Schlosspark Hotel", "HOTEL", "Elegant hotel in Darmstadt with garden grounds for weddings and musical evenings.", "darmstadt", 80, 300, 4.2, []string{"stage", "private-room", "parking", "kitchen", "wifi", "air-conditioning"}, 1040},
	{"Vinyl Underground", "CLUB", "Leipzigs spot for alternative and electronic music. Vinyl-only DJ sets and live bands.", "leipzig", 100, 400, 4.4, []string{"stage", "sound-system", "lighting", "dance-floor", "bar", "coat-check"}, 1024},
	{"Biergarten Alm", "RESTAURANT", "Traditional Bavarian beer garden with live music on weekends.", "muenchen", 60, 200, 4.1, []string{"kitchen", "bar", "outdoor-area", "parking", "wifi"}, 1060},
}
