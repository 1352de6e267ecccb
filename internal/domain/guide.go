package domain

// Guide represents a tour guide that can lead a guided excursion
type Guide struct {
	name     string
	surname  string
	language string
}

// NewGuide creates a guide speaking the given language
func NewGuide(name, surname, language string) *Guide {
	return &Guide{name: name, surname: surname, language: language}
}

func (g *Guide) Name() string     { return g.name }
func (g *Guide) Surname() string  { return g.surname }
func (g *Guide) Language() string { return g.language }

// SetLanguage changes the language the guide leads in
func (g *Guide) SetLanguage(language string) {
	g.language = language
}
