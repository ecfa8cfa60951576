package venue

import "strings"

// Logo names an opponent's logo file and display title.
type Logo struct {
	File  string
	Title string
}

// LogoEntry associates title keywords with an opponent logo.
type LogoEntry struct {
	Keywords []string
	Logo     Logo
}

var ImageMapEliteserien = []LogoEntry{
	{Keywords: []string{"aalesund", "ålesund"}, Logo: Logo{File: "alesund.png", Title: "Aalesund"}},
	{Keywords: []string{"bodø"}, Logo: Logo{File: "bodoglimt.png", Title: "Bodø/Glimt"}},
	{Keywords: []string{"fredrikstad"}, Logo: Logo{File: "fredrikstad.png", Title: "Fredrikstad"}},
	{Keywords: []string{"hamkam", "hamar"}, Logo: Logo{File: "hamkam.png", Title: "HamKam"}},
	{Keywords: []string{"haugesund"}, Logo: Logo{File: "haugesund.png", Title: "Haugesund"}},
	{Keywords: []string{"kfum"}, Logo: Logo{File: "kfum.png", Title: "KFUM Oslo"}},
	{Keywords: []string{"kristiansund"}, Logo: Logo{File: "kristiansund.png", Title: "Kristiansund"}},
	{Keywords: []string{"lillestrøm"}, Logo: Logo{File: "lillestrom.png", Title: "Lillestrøm"}},
	{Keywords: []string{"molde"}, Logo: Logo{File: "molde.png", Title: "Molde"}},
	{Keywords: []string{"odd"}, Logo: Logo{File: "odd.png", Title: "Odd"}},
	{Keywords: []string{"rosenborg"}, Logo: Logo{File: "rosenborg.png", Title: "Rosenborg"}},
	{Keywords: []string{"sandefjord"}, Logo: Logo{File: "sandefjord.png", Title: "Sandefjord"}},
	{Keywords: []string{"sarpsborg"}, Logo: Logo{File: "sarpsborg.png", Title: "Sarpsborg"}},
	{Keywords: []string{"stabæk"}, Logo: Logo{File: "stabek.png", Title: "Stabæk"}},
	{Keywords: []string{"strømsgodset"}, Logo: Logo{File: "stromsgodset.png", Title: "Strømsgodset"}},
	{Keywords: []string{"tromsø"}, Logo: Logo{File: "tromso.png", Title: "Tromsø"}},
	{Keywords: []string{"vålerenga"}, Logo: Logo{File: "valrenga.png", Title: "Vålerenga"}},
	{Keywords: []string{"viking"}, Logo: Logo{File: "viking.png", Title: "Viking"}},
	{Keywords: []string{"partoutkort eliteserien"}, Logo: Logo{File: "eliteserien_logo.png", Title: "\nPartoutkort Eliteserien"}},
}

var ImageMapToppserien = []LogoEntry{
	{Keywords: []string{"arna", "bjørnar", "bjornar"}, Logo: Logo{File: "arnabjornar.png", Title: "Arna-Bjørnar"}},
	{Keywords: []string{"kolbotn"}, Logo: Logo{File: "kolbotn.png", Title: "Kolbotn"}},
	{Keywords: []string{"kristiansund"}, Logo: Logo{File: "kristiansund.png", Title: "Kristiansund"}},
	{Keywords: []string{"lillestrøm", "lsk"}, Logo: Logo{File: "lskkvinner.png", Title: "LSK Kvinner"}},
	{Keywords: []string{"lyn"}, Logo: Logo{File: "lyn.png", Title: "Lyn"}},
	{Keywords: []string{"rosenborg"}, Logo: Logo{File: "rbkkvinner.png", Title: "Rosenborg"}},
	{Keywords: []string{"roa", "røa"}, Logo: Logo{File: "roa.png", Title: "Røa"}},
	{Keywords: []string{"stabæk"}, Logo: Logo{File: "stabek.png", Title: "Stabæk"}},
	{Keywords: []string{"vålerenga"}, Logo: Logo{File: "valrenga.png", Title: "Vålerenga"}},
	{Keywords: []string{"åsane", "aasane", "asane"}, Logo: Logo{File: "aasane.png", Title: "Åsane"}},
	{Keywords: []string{"partoutkort toppserien"}, Logo: Logo{File: "toppserien_logo.png", Title: "\nPartoutkort Toppserien"}},
}

var ImageMapEurope = []LogoEntry{
	{Keywords: []string{"alkmaar"}, Logo: Logo{File: "alkmaar.png", Title: "AZ Alkmaar"}},
	{Keywords: []string{"glasgow"}, Logo: Logo{File: "default.png", Title: "Glasgow City"}},
	{Keywords: []string{"praha"}, Logo: Logo{File: "default.png", Title: "Slavia Praha"}},
	{Keywords: []string{"lyon"}, Logo: Logo{File: "lyon.png", Title: "Lyon"}},
	{Keywords: []string{"pölten"}, Logo: Logo{File: "polten.png", Title: "St. Pölten"}},
	{Keywords: []string{"barcelona"}, Logo: Logo{File: "barcelona_femini.png", Title: "Barcelona"}},
	{Keywords: []string{"go ahead eagles", "gae"}, Logo: Logo{File: "gae.png", Title: "Go Ahead Eagles"}},
	{Keywords: []string{"mirren"}, Logo: Logo{File: "stmirren.png", Title: "St. Mirren"}},
}

// FindLogo returns the first entry whose keyword appears in the line.
func FindLogo(line string, entries []LogoEntry) (Logo, bool) {
	lower := strings.ToLower(line)
	for _, entry := range entries {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				return entry.Logo, true
			}
		}
	}
	return Logo{}, false
}

// LeagueAssets picks the background image, league caption and opponent logo
// table for an event title.
func LeagueAssets(eventTitle string) (background, league string, entries []LogoEntry) {
	title := strings.ToLower(eventTitle)
	switch {
	case strings.Contains(title, "eliteserien"):
		return "brann_herrer_bg.png", "Eliteserien", ImageMapEliteserien
	case strings.Contains(title, "toppserien"):
		return "brann_kvinner_bg.png", "Toppserien", ImageMapToppserien
	case strings.Contains(title, "cup") || strings.Contains(title, "nm"):
		return "brann_cup_bg.png", "NM", ImageMapEliteserien
	case strings.Contains(title, "champion"), strings.Contains(title, "conference"), strings.Contains(title, "europa"):
		return "brann_europa_bg.png", "Europa", ImageMapEurope
	}
	return "brann_herrer_bg.png", "Eliteserien", ImageMapEliteserien
}
