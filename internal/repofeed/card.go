package repofeed

import (
	"fmt"
	"strings"
)

const (
	NoDescription   = "Keine Beschreibung verfügbar"
	UnknownLanguage = "Mixed"
)

// Card is the render model of one project card.
type Card struct {
	Title       string
	Description string
	Tags        []string
	Stars       int
	Forks       int
	Language    string
	Active      bool
	RepoURL     string
	DemoURL     string
	Languages   string
	Delay       string
}

func (c Card) HasDemo() bool {
	return c.DemoURL != ""
}

func (c Card) StatusText() string {
	if c.Active {
		return "Aktiv"
	}
	return "Archiv"
}

// BuildCards maps summaries to cards, keeping their order.
func BuildCards(repos []Summary) []Card {
	cards := make([]Card, 0, len(repos))
	for i, r := range repos {
		cards = append(cards, buildCard(i, r))
	}
	return cards
}

func buildCard(index int, r Summary) Card {
	c := Card{
		Title:       r.Name,
		Description: r.Description,
		Stars:       max(r.Stars, 0),
		Forks:       max(r.Forks, 0),
		Language:    r.Language,
		Active:      r.UpdatedAt != nil,
		RepoURL:     r.URL,
		DemoURL:     r.HomepageURL,
		Languages:   strings.ToLower(strings.Join(r.Topics, " ")),
		Delay:       fmt.Sprintf("%.1fs", float64(index)*0.1),
	}
	if c.Description == "" {
		c.Description = NoDescription
	}
	if c.Language == "" {
		c.Language = UnknownLanguage
	}

	switch {
	case len(r.Topics) > 0:
		c.Tags = append([]string(nil), r.Topics...)
	case r.Language != "":
		c.Tags = []string{r.Language}
	}
	return c
}
