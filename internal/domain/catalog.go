package domain

type Service struct {
	Slug             string        `json:"slug"`
	Name             string        `json:"name"`
	ShortDescription string        `json:"short_description"`
	Description      string        `json:"description"`
	Features         []string      `json:"features"`
	ProcessSteps     []ProcessStep `json:"process_steps"`
	Keywords         []string      `json:"keywords,omitempty"` // optional, catalog-provided seed terms
}

type ProcessStep struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type City struct {
	Slug  string   `json:"slug"`
	Name  string   `json:"name"`
	State string   `json:"state"`
	Tier  string   `json:"tier,omitempty"` // metro|tier1|tier2
	Areas []string `json:"areas"`
}
