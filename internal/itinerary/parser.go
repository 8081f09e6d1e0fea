// Package itinerary turns model-generated markdown itineraries into
// structured days, sections and activities.
//
// Parsing is forgiving: lines that do not match the expected shapes are
// skipped, never reported as errors. ParseReport exposes which lines were
// skipped and why for callers that want to log or inspect the loss.
package itinerary

import (
	"regexp"
	"strconv"
	"strings"

	"driftly/internal/domain"
)

// Section markers as emitted by the prompt template. Matching is by substring.
const (
	MorningMarker   = "### \U0001F5D3 Morning"
	AfternoonMarker = "### \u2600\uFE0F Afternoon"
	EveningMarker   = "### \U0001F319 Evening"
	TipMarker       = "\U0001F4A1"
)

// checked in this order; first hit wins
var sectionMarkers = []struct {
	marker string
	name   domain.SectionName
}{
	{MorningMarker, domain.Morning},
	{AfternoonMarker, domain.Afternoon},
	{EveningMarker, domain.Evening},
}

// ws is \s plus Unicode space separators; models emit U+00A0 and U+202F.
const ws = `[\s\p{Zs}]`

var (
	dayRe      = regexp.MustCompile(`^#` + ws + `*Day` + ws + `*(\d+):` + ws + `*(.+)$`)
	activityRe = regexp.MustCompile(`^-` + ws + `*(.+)$`)
	tipRe      = regexp.MustCompile(`^` + TipMarker + ws + `*(.+)$`)

	locationRe = regexp.MustCompile(`\+` + ws + `*([^+]+)$`)
	timeRe     = regexp.MustCompile(`\d{1,2}:\d{2}` + ws + `*(?:AM|PM|am|pm)`)
	costRe     = regexp.MustCompile(`\$\d+(?:-\d+)?`)
)

// Reasons attached to IgnoredLine.
const (
	ReasonOutsideDay     = "outside_day"
	ReasonOutsideSection = "outside_section"
	ReasonUnrecognized   = "unrecognized"
	ReasonEmptyTitle     = "empty_title"
	ReasonOrphanTip      = "orphan_tip"
)

// IgnoredLine is a non-blank input line that contributed nothing to the result.
type IgnoredLine struct {
	Number int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

type Report struct {
	Days    []domain.Day  `json:"days"`
	Ignored []IgnoredLine `json:"ignored,omitempty"`
}

// Parse returns the days found in markdown, in source order. It never
// returns nil and never fails.
func Parse(markdown string) []domain.Day {
	return ParseReport(markdown).Days
}

// ParseReport is Parse plus a record of every skipped line.
func ParseReport(markdown string) Report {
	st := state{days: []domain.Day{}}
	for i, line := range strings.Split(markdown, "\n") {
		st = st.step(i+1, strings.TrimSuffix(line, "\r"))
	}
	return st.finish()
}

// state is threaded by value through the fold over lines. day is allocated
// per header and owned by the state that opened it.
type state struct {
	days    []domain.Day
	day     *domain.Day
	section domain.SectionName
	ignored []IgnoredLine
}

func (s state) step(n int, line string) state {
	if d, ok := parseDayHeader(line); ok {
		s = s.closeDay()
		s.day = &d
		s.section = ""
		return s
	}

	for _, m := range sectionMarkers {
		if strings.Contains(line, m.marker) {
			s.section = m.name
			return s
		}
	}

	if s.day == nil {
		return s.skip(n, line, ReasonOutsideDay)
	}
	if s.section == "" {
		return s.skip(n, line, ReasonOutsideSection)
	}
	slot := s.day.Sections.Slot(s.section)

	if m := activityRe.FindStringSubmatch(line); m != nil {
		a, ok := parseActivity(m[1])
		if !ok {
			return s.skip(n, line, ReasonEmptyTitle)
		}
		*slot = append(*slot, a)
		return s
	}

	if m := tipRe.FindStringSubmatch(line); m != nil {
		if len(*slot) == 0 {
			return s.skip(n, line, ReasonOrphanTip)
		}
		(*slot)[len(*slot)-1].Tip = strings.TrimSpace(m[1])
		return s
	}

	return s.skip(n, line, ReasonUnrecognized)
}

func (s state) skip(n int, line, reason string) state {
	if strings.TrimSpace(line) == "" {
		return s
	}
	s.ignored = append(s.ignored, IgnoredLine{Number: n, Text: line, Reason: reason})
	return s
}

func (s state) closeDay() state {
	if s.day != nil {
		s.days = append(s.days, *s.day)
		s.day = nil
	}
	return s
}

func (s state) finish() Report {
	s = s.closeDay()
	return Report{Days: s.days, Ignored: s.ignored}
}

func parseDayHeader(line string) (domain.Day, bool) {
	m := dayRe.FindStringSubmatch(line)
	if m == nil {
		return domain.Day{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return domain.Day{}, false
	}
	return domain.Day{
		Day:      n,
		Location: strings.TrimSpace(m[2]),
		Sections: domain.NewSections(),
	}, true
}

// parseActivity runs the extract-and-strip pipeline over an activity line's
// content. Extraction order: location, time, cost. Stripping order:
// location suffix, cost, time. Each step touches at most the first match.
func parseActivity(content string) (domain.Activity, bool) {
	var a domain.Activity

	if m := locationRe.FindStringSubmatch(content); m != nil {
		a.Location = strings.TrimSpace(m[1])
	}
	a.Time = timeRe.FindString(content)
	a.Cost = costRe.FindString(content)

	title := removeFirst(locationRe, content)
	title = removeFirst(costRe, title)
	title = removeFirst(timeRe, title)
	a.Title = strings.TrimSpace(title)

	return a, a.Title != ""
}

func removeFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}

// Stats counts days, activities and populated optional fields.
func Stats(days []domain.Day) domain.Summary {
	sum := domain.Summary{Days: len(days)}
	for _, d := range days {
		for _, sec := range [][]domain.Activity{d.Sections.Morning, d.Sections.Afternoon, d.Sections.Evening} {
			for _, a := range sec {
				sum.Activities++
				if a.Time != "" {
					sum.WithTime++
				}
				if a.Cost != "" {
					sum.WithCost++
				}
				if a.Location != "" {
					sum.WithLocation++
				}
				if a.Tip != "" {
					sum.WithTip++
				}
			}
		}
	}
	return sum
}
