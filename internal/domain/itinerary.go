package domain

// SectionName is one of the three fixed times of day inside a Day.
type SectionName string

const (
	Morning   SectionName = "morning"
	Afternoon SectionName = "afternoon"
	Evening   SectionName = "evening"
)

// Activity is a single planned action. Optional fields are "" when absent.
type Activity struct {
	Title    string `json:"title"`
	Location string `json:"location,omitempty"`
	Time     string `json:"time,omitempty"`
	Cost     string `json:"cost,omitempty"`
	Tip      string `json:"tip,omitempty"`
}

// Sections always carries all three slots; NewSections returns them non-nil
// so they encode as [] rather than null.
type Sections struct {
	Morning   []Activity `json:"morning"`
	Afternoon []Activity `json:"afternoon"`
	Evening   []Activity `json:"evening"`
}

func NewSections() Sections {
	return Sections{
		Morning:   []Activity{},
		Afternoon: []Activity{},
		Evening:   []Activity{},
	}
}

// Slot returns a pointer to the named section's slice, or nil for an unknown name.
func (s *Sections) Slot(name SectionName) *[]Activity {
	switch name {
	case Morning:
		return &s.Morning
	case Afternoon:
		return &s.Afternoon
	case Evening:
		return &s.Evening
	}
	return nil
}

type Day struct {
	Day      int      `json:"day"`
	Location string   `json:"location"`
	Sections Sections `json:"sections"`
}

// Summary is a count of what a parse produced.
type Summary struct {
	Days         int `json:"days"`
	Activities   int `json:"activities"`
	WithTime     int `json:"with_time"`
	WithCost     int `json:"with_cost"`
	WithLocation int `json:"with_location"`
	WithTip      int `json:"with_tip"`
}

// Plan is what the planner hands back to callers.
type Plan struct {
	Markdown string  `json:"markdown,omitempty"`
	Days     []Day   `json:"days"`
	Summary  Summary `json:"summary"`
	Ignored  int     `json:"ignored_lines"`
	Cached   bool    `json:"cached"`
}
