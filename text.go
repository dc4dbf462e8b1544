package main

var (
	AboutMe = `Ich liebe es, Software zu bauen, die nützlich ist und Spaß macht. Die meisten
	meiner Projekte beginnen mit einer einfachen Idee und werden zur Gelegenheit, etwas Neues
	zu lernen, sei es eine andere Sprache, ein neues Werkzeug oder ein kniffliges Problem.`

	HeroPhrases = []string{
		"Leidenschaftlicher Entwickler & kreativer Problemlöser",
		"Ich erschaffe moderne Web-Erfahrungen mit Code & Design",
		"Jeden Tag lerne ich neue Technologien und Möglichkeiten",
		"Von der Idee zur Realität - mit Code und Kreativität",
	}

	ProjectPhrases = []string{
		"Entdecke meine neuesten Kreationen...",
		"Innovative Lösungen für moderne Probleme...",
		"Code, der Geschichten erzählt...",
		"Von der Idee zur Realität...",
		"Pixels mit Persönlichkeit...",
		"Kreativität trifft auf Technologie...",
		"Moderne Webentwicklung mit Leidenschaft...",
	}

	TechBubbles = []string{"HTML", "CSS", "JavaScript", "React", "Python", "Node.js", "Go"}
)

// phraseSets are the typewriter lists reachable by name.
var phraseSets = map[string][]string{
	"hero":     HeroPhrases,
	"projects": ProjectPhrases,
}

type TimelineItem struct {
	Period      string
	Title       string
	Place       string
	BulletItems []string
}

var Timeline = []TimelineItem{
	{
		Period: "2024 - Heute",
		Title:  "Webentwicklung",
		Place:  "Eigene Projekte",
		BulletItems: []string{
			"Portfolio-Website mit GitHub-Integration und Dark Mode",
			"Kleine Werkzeuge rund um Datenanalyse und Automatisierung",
		},
	},
	{
		Period: "2023 - 2024",
		Title:  "Frontend-Grundlagen",
		Place:  "Selbststudium",
		BulletItems: []string{
			"HTML, CSS und JavaScript von Grund auf",
			"Erste Schritte mit React und REST-APIs",
		},
	},
	{
		Period: "2022 - 2023",
		Title:  "Programmieren lernen",
		Place:  "Schule",
		BulletItems: []string{
			"Python als erste Sprache",
			"Algorithmen und Datenstrukturen",
		},
	},
}

type Stat struct {
	Label string
	Count int
	Icon  string
}

var Stats = []Stat{
	{Label: "Projekte", Count: 25, Icon: "🚀"},
	{Label: "Technologien", Count: 12, Icon: "⚙️"},
	{Label: "Kaffeetassen", Count: 500, Icon: "☕"},
	{Label: "Codezeilen (k)", Count: 50, Icon: "💻"},
}
