package repofeed

import "time"

// Summary is the subset of repository metadata shown on a project card.
// Empty strings stand for absent values.
type Summary struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"html_url"`
	HomepageURL string     `json:"homepage,omitempty"`
	Stars       int        `json:"stargazers_count"`
	Forks       int        `json:"forks_count"`
	Language    string     `json:"language,omitempty"`
	Topics      []string   `json:"topics,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

var demoUpdated = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Fallback returns the demo repositories shown when GitHub is unreachable.
// Each call returns a fresh copy.
func Fallback() []Summary {
	updated := demoUpdated
	return []Summary{
		{
			Name:        "portfolio-website",
			Description: "Meine persönliche Portfolio-Website mit modernem Design und GitHub-Integration",
			URL:         "https://github.com/demo/portfolio-website",
			HomepageURL: "https://johann-portfolio.demo",
			Stars:       15,
			Forks:       3,
			Language:    "HTML",
			Topics:      []string{"html", "css", "javascript", "portfolio"},
			UpdatedAt:   &updated,
		},
		{
			Name:        "task-manager-app",
			Description: "Eine React-basierte Aufgaben-Management App mit lokaler Speicherung",
			URL:         "https://github.com/demo/task-manager",
			HomepageURL: "https://task-manager.demo",
			Stars:       8,
			Forks:       2,
			Language:    "JavaScript",
			Topics:      []string{"react", "javascript", "productivity"},
			UpdatedAt:   &updated,
		},
		{
			Name:        "weather-dashboard",
			Description: "Wetter-Dashboard mit API-Integration und schönen Animationen",
			URL:         "https://github.com/demo/weather-dashboard",
			HomepageURL: "https://weather.demo",
			Stars:       12,
			Forks:       4,
			Language:    "JavaScript",
			Topics:      []string{"javascript", "api", "weather"},
			UpdatedAt:   &updated,
		},
		{
			Name:        "python-data-analyzer",
			Description: "Python-Tool zur Datenanalyse mit pandas und matplotlib",
			URL:         "https://github.com/demo/data-analyzer",
			Stars:       6,
			Forks:       1,
			Language:    "Python",
			Topics:      []string{"python", "data-science", "analysis"},
			UpdatedAt:   &updated,
		},
		{
			Name:        "css-animations-collection",
			Description: "Sammlung von CSS-Animationen und Effekten für moderne Websites",
			URL:         "https://github.com/demo/css-animations",
			HomepageURL: "https://css-animations.demo",
			Stars:       25,
			Forks:       7,
			Language:    "CSS",
			Topics:      []string{"css", "animations", "frontend"},
			UpdatedAt:   &updated,
		},
		{
			Name:        "node-api-starter",
			Description: "Node.js API Starter-Template mit Express und MongoDB Integration",
			URL:         "https://github.com/demo/node-api",
			Stars:       4,
			Forks:       2,
			Language:    "JavaScript",
			Topics:      []string{"nodejs", "api", "backend"},
			UpdatedAt:   &updated,
		},
	}
}
