package itinerary_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftly/internal/domain"
	"driftly/internal/itinerary"
)

func md(lines ...string) string { return strings.Join(lines, "\n") }

func TestParse_EmptyInput(t *testing.T) {
	days := itinerary.Parse("")
	require.NotNil(t, days)
	assert.Empty(t, days)
}

func TestParse_NoDayHeaders(t *testing.T) {
	in := md(
		"# Travel Itinerary",
		itinerary.MorningMarker,
		"- Breakfast 8:00 AM $10",
		itinerary.TipMarker+" Go early",
		"## Daily Itinerary",
	)
	days := itinerary.Parse(in)
	require.NotNil(t, days)
	assert.Empty(t, days)
}

func TestParse_TwoDayItinerary(t *testing.T) {
	in := md(
		"# Day 1: Paris",
		itinerary.MorningMarker,
		"- Eiffel Tower visit 9:00 AM $25",
		itinerary.TipMarker+" Buy tickets online",
		"# Day 2: Lyon",
		itinerary.AfternoonMarker,
		"- City walk",
	)

	want := []domain.Day{
		{
			Day:      1,
			Location: "Paris",
			Sections: domain.Sections{
				Morning: []domain.Activity{{
					Title: "Eiffel Tower visit",
					Time:  "9:00 AM",
					Cost:  "$25",
					Tip:   "Buy tickets online",
				}},
				Afternoon: []domain.Activity{},
				Evening:   []domain.Activity{},
			},
		},
		{
			Day:      2,
			Location: "Lyon",
			Sections: domain.Sections{
				Morning:   []domain.Activity{},
				Afternoon: []domain.Activity{{Title: "City walk"}},
				Evening:   []domain.Activity{},
			},
		},
	}
	assert.Equal(t, want, itinerary.Parse(in))
}

func TestParse_DayHeadersKeepOrderAndNumbers(t *testing.T) {
	in := md(
		"# Day 3: Kyoto",
		"stray text",
		"#Day 1:   Osaka  ",
		"# Day 7: Tokyo, Japan",
	)
	days := itinerary.Parse(in)
	require.Len(t, days, 3)

	assert.Equal(t, 3, days[0].Day)
	assert.Equal(t, "Kyoto", days[0].Location)
	assert.Equal(t, 1, days[1].Day)
	assert.Equal(t, "Osaka", days[1].Location)
	assert.Equal(t, 7, days[2].Day)
	assert.Equal(t, "Tokyo, Japan", days[2].Location)

	for _, d := range days {
		assert.NotNil(t, d.Sections.Morning)
		assert.NotNil(t, d.Sections.Afternoon)
		assert.NotNil(t, d.Sections.Evening)
	}
}

func TestParse_NotDayHeaders(t *testing.T) {
	for _, line := range []string{
		"## Day 1 Paris",
		"Day 1: Paris",
		" # Day 1: Paris",
		"# Day one: Paris",
		"# Day 1:",
		"# Day 99999999999999999999999: Overflow",
	} {
		t.Run(line, func(t *testing.T) {
			assert.Empty(t, itinerary.Parse(line))
		})
	}
}

func TestParse_DayHeaderUnicodeSpaces(t *testing.T) {
	for _, line := range []string{
		"#\u00a0Day 1: Paris",
		"# Day\u202f1:\u00a0Paris",
	} {
		t.Run(line, func(t *testing.T) {
			days := itinerary.Parse(line)
			require.Len(t, days, 1)
			assert.Equal(t, 1, days[0].Day)
			assert.Equal(t, "Paris", days[0].Location)
		})
	}
}

func TestParse_ActivityMetadata(t *testing.T) {
	cases := []struct {
		name string
		line string
		want domain.Activity
	}{
		{
			name: "all fields",
			line: "- Visit the market 10:00 AM $15-20 + Central Square",
			want: domain.Activity{Title: "Visit the market", Time: "10:00 AM", Cost: "$15-20", Location: "Central Square"},
		},
		{
			name: "title only",
			line: "- City walk",
			want: domain.Activity{Title: "City walk"},
		},
		{
			name: "location only",
			line: "-Lunch at Chez Marie +  12 Rue Cler ",
			want: domain.Activity{Title: "Lunch at Chez Marie", Location: "12 Rue Cler"},
		},
		{
			name: "time lowercase without space",
			line: "- Sunset cruise 7:30pm",
			want: domain.Activity{Title: "Sunset cruise", Time: "7:30pm"},
		},
		{
			name: "first cost wins",
			line: "- Museum $12 or $20 guided",
			want: domain.Activity{Title: "Museum  or $20 guided", Cost: "$12"},
		},
		{
			name: "first time wins",
			line: "- Show 8:00 PM then 10:00 PM",
			want: domain.Activity{Title: "Show  then 10:00 PM", Time: "8:00 PM"},
		},
		{
			name: "location is last plus segment",
			line: "- Tapas + Bar A + Bar B",
			want: domain.Activity{Title: "Tapas + Bar A", Location: "Bar B"},
		},
		{
			name: "time inside location is still extracted",
			line: "- Lunch + Cafe Luna 12:30 PM",
			want: domain.Activity{Title: "Lunch", Location: "Cafe Luna 12:30 PM", Time: "12:30 PM"},
		},
		{
			name: "mixed case meridiem is not a time",
			line: "- Tea 4:00 Pm",
			want: domain.Activity{Title: "Tea 4:00 Pm"},
		},
		{
			name: "no-break space before meridiem",
			line: "- Market 9:00\u00a0AM $5",
			want: domain.Activity{Title: "Market", Time: "9:00\u00a0AM", Cost: "$5"},
		},
		{
			name: "narrow no-break space before meridiem",
			line: "- Market 9:00\u202fAM $5",
			want: domain.Activity{Title: "Market", Time: "9:00\u202fAM", Cost: "$5"},
		},
		{
			name: "no-break space after plus",
			line: "- Lunch +\u00a0Cafe Luna",
			want: domain.Activity{Title: "Lunch", Location: "Cafe Luna"},
		},
		{
			name: "markdown emphasis kept",
			line: "- **Breakfast**: Cafe de Flore $18 + 172 Bd Saint-Germain",
			want: domain.Activity{Title: "**Breakfast**: Cafe de Flore", Cost: "$18", Location: "172 Bd Saint-Germain"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			days := itinerary.Parse(md("# Day 1: Test", itinerary.MorningMarker, tc.line))
			require.Len(t, days, 1)
			require.Len(t, days[0].Sections.Morning, 1)
			assert.Equal(t, tc.want, days[0].Sections.Morning[0])
		})
	}
}

func TestParse_EmptyTitleDropsActivityWithoutLeaking(t *testing.T) {
	in := md(
		"# Day 1: Rome",
		itinerary.EveningMarker,
		"- $20",
		"- 9:00 PM + Trastevere",
		"- Dinner",
	)
	days := itinerary.Parse(in)
	require.Len(t, days, 1)
	assert.Equal(t, []domain.Activity{{Title: "Dinner"}}, days[0].Sections.Evening)
}

func TestParse_Tips(t *testing.T) {
	t.Run("attaches to last activity in section", func(t *testing.T) {
		in := md(
			"# Day 1: Bali",
			itinerary.MorningMarker,
			"- Rice terraces",
			"- Temple",
			itinerary.TipMarker+"   Arrive early  ",
		)
		m := itinerary.Parse(in)[0].Sections.Morning
		require.Len(t, m, 2)
		assert.Empty(t, m[0].Tip)
		assert.Equal(t, "Arrive early", m[1].Tip)
	})

	t.Run("dropped before any activity", func(t *testing.T) {
		in := md(
			"# Day 1: Bali",
			itinerary.MorningMarker,
			"- Rice terraces",
			itinerary.AfternoonMarker,
			itinerary.TipMarker+" Bring water",
			"- Beach",
		)
		d := itinerary.Parse(in)[0]
		assert.Empty(t, d.Sections.Morning[0].Tip)
		assert.Equal(t, []domain.Activity{{Title: "Beach"}}, d.Sections.Afternoon)
	})

	t.Run("later tip replaces earlier", func(t *testing.T) {
		in := md(
			"# Day 1: Bali",
			itinerary.EveningMarker,
			"- Kecak dance",
			itinerary.TipMarker+" first",
			itinerary.TipMarker+" second",
		)
		assert.Equal(t, "second", itinerary.Parse(in)[0].Sections.Evening[0].Tip)
	})

	t.Run("bold tip heading from template", func(t *testing.T) {
		in := md(
			"# Day 1: Bali",
			itinerary.EveningMarker,
			"- Kecak dance",
			"",
			itinerary.TipMarker+" **Cultural Tips**:",
			"- Dress modestly at temples",
		)
		ev := itinerary.Parse(in)[0].Sections.Evening
		require.Len(t, ev, 2)
		assert.Equal(t, "**Cultural Tips**:", ev[0].Tip)
		assert.Equal(t, "Dress modestly at temples", ev[1].Title)
	})
}

func TestParse_SectionResetsOnNewDay(t *testing.T) {
	in := md(
		"# Day 1: Lisbon",
		itinerary.EveningMarker,
		"- Fado",
		"# Day 2: Porto",
		"- Orphaned activity",
		itinerary.MorningMarker,
		"- Ribeira",
	)
	days := itinerary.Parse(in)
	require.Len(t, days, 2)
	assert.Equal(t, []domain.Activity{{Title: "Ribeira"}}, days[1].Sections.Morning)
	assert.Empty(t, days[1].Sections.Evening)
}

func TestParse_SectionMarkerPriority(t *testing.T) {
	in := md(
		"# Day 1: X",
		itinerary.EveningMarker+" "+itinerary.MorningMarker,
		"- A",
	)
	d := itinerary.Parse(in)[0]
	assert.Len(t, d.Sections.Morning, 1)
	assert.Empty(t, d.Sections.Evening)
}

func TestParse_SectionMarkerAsSubstring(t *testing.T) {
	in := md(
		"# Day 1: X",
		"#"+itinerary.AfternoonMarker+" (after lunch)",
		"- A",
	)
	assert.Len(t, itinerary.Parse(in)[0].Sections.Afternoon, 1)
}

func TestParse_CRLF(t *testing.T) {
	in := strings.Join([]string{
		"# Day 1: Paris",
		itinerary.MorningMarker,
		"- Louvre 9:00 AM $22 + Rue de Rivoli",
		itinerary.TipMarker + " Use the Carrousel entrance",
	}, "\r\n")
	days := itinerary.Parse(in)
	require.Len(t, days, 1)
	assert.Equal(t, "Paris", days[0].Location)
	assert.Equal(t, domain.Activity{
		Title:    "Louvre",
		Time:     "9:00 AM",
		Cost:     "$22",
		Location: "Rue de Rivoli",
		Tip:      "Use the Carrousel entrance",
	}, days[0].Sections.Morning[0])
}

func TestParse_Idempotent(t *testing.T) {
	in := sampleItinerary()
	assert.Equal(t, itinerary.Parse(in), itinerary.Parse(in))
}

func TestParse_Concurrent(t *testing.T) {
	in := sampleItinerary()
	want := itinerary.Parse(in)

	var wg sync.WaitGroup
	got := make([][]domain.Day, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = itinerary.Parse(in)
		}(i)
	}
	wg.Wait()
	for _, g := range got {
		assert.Equal(t, want, g)
	}
}

func TestParseReport_IgnoredLines(t *testing.T) {
	in := md(
		"# Travel Itinerary",                // 1 outside_day
		"# Day 1: Rome",                     // 2
		"Some intro",                        // 3 outside_section
		itinerary.MorningMarker,             // 4
		itinerary.TipMarker+" too early",    // 5 orphan_tip
		"- $5",                              // 6 empty_title
		"",                                  // 7 blank, not recorded
		"- Colosseum",                       // 8
		"  - Location: Piazza del Colosseo", // 9 unrecognized
	)
	r := itinerary.ParseReport(in)
	require.Len(t, r.Days, 1)
	assert.Equal(t, []itinerary.IgnoredLine{
		{Number: 1, Text: "# Travel Itinerary", Reason: itinerary.ReasonOutsideDay},
		{Number: 3, Text: "Some intro", Reason: itinerary.ReasonOutsideSection},
		{Number: 5, Text: itinerary.TipMarker + " too early", Reason: itinerary.ReasonOrphanTip},
		{Number: 6, Text: "- $5", Reason: itinerary.ReasonEmptyTitle},
		{Number: 9, Text: "  - Location: Piazza del Colosseo", Reason: itinerary.ReasonUnrecognized},
	}, r.Ignored)
	assert.Equal(t, itinerary.Parse(in), r.Days)
}

func TestStats(t *testing.T) {
	s := itinerary.Stats(itinerary.Parse(sampleItinerary()))
	assert.Equal(t, domain.Summary{
		Days:         2,
		Activities:   5,
		WithTime:     3,
		WithCost:     3,
		WithLocation: 3,
		WithTip:      2,
	}, s)
}

func sampleItinerary() string {
	return md(
		"# Day 1: Tokyo, Japan",
		"",
		itinerary.MorningMarker,
		"- **Breakfast**: Tsukiji Outer Market 7:30 AM $15 + 4 Chome-16-2 Tsukiji",
		itinerary.TipMarker+" Go before the crowds",
		"- Senso-ji Temple 10:00 AM + Asakusa",
		"",
		itinerary.AfternoonMarker,
		"- TeamLab Planets 2:00 PM $30-35",
		"",
		itinerary.EveningMarker,
		"- **Dinner**: Omoide Yokocho $40 + Shinjuku",
		itinerary.TipMarker+" Cash only at most stalls",
		"",
		"# Day 2: Kyoto, Japan",
		itinerary.MorningMarker,
		"- Fushimi Inari hike",
	)
}
