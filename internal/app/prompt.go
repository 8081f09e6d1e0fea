package app

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"driftly/internal/domain"
	"driftly/internal/itinerary"
)

const SystemPrompt = "You are an expert travel planner. Create a detailed itinerary using the provided markdown template. " +
	"Replace all placeholder text in brackets with specific, realistic recommendations. Maintain the exact markdown formatting provided."

const flexibleDates = "Flexible dates – suggest an ideal duration and timeline"

// FormatInterest turns "food-tours" or "historical_sites" into "Food Tours" / "Historical Sites".
func FormatInterest(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		r, n := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[n:]
	}
	return strings.Join(words, " ")
}

func formatInterests(in []string) string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, FormatInterest(s))
	}
	return strings.Join(out, ", ")
}

func dateInfo(r domain.TripRequest) string {
	if r.DateType == "flexible" {
		return flexibleDates
	}
	return fmt.Sprintf("%s to %s", r.StartDate, r.EndDate)
}

func accessibility(required bool) string {
	if required {
		return "Wheelchair accessible options required"
	}
	return "Standard accessibility"
}

// BuildPrompt renders the user message sent to the model: trip details then
// one templated day block per destination. The section markers are the ones
// the itinerary parser looks for.
func BuildPrompt(r domain.TripRequest) string {
	var b strings.Builder
	b.WriteString("# Travel Itinerary\n\n## Trip Details\n")
	fmt.Fprintf(&b, "- **Destinations**: %s\n", strings.Join(r.Destinations, ", "))
	fmt.Fprintf(&b, "- **Dates**: %s\n", dateInfo(r))
	fmt.Fprintf(&b, "- **Budget**: $%d per person\n", r.Budget)
	fmt.Fprintf(&b, "- **Interests**: %s\n", formatInterests(r.Interests))
	fmt.Fprintf(&b, "- **Weather Preference**: %s\n", r.WeatherPreference)
	fmt.Fprintf(&b, "- **Pace**: %s\n", r.Pace)
	fmt.Fprintf(&b, "- **Trip Type**: %s\n", r.TripType)
	fmt.Fprintf(&b, "- **Accessibility**: %s\n", accessibility(r.Accessibility))
	b.WriteString("\n## Daily Itinerary\n")

	for i, dest := range r.Destinations {
		fmt.Fprintf(&b, "\n# Day %d: %s\n\n", i+1, dest)
		writeSection(&b, itinerary.MorningMarker, "Breakfast", "*Local Tip: Best time to visit is early morning*")
		writeSection(&b, itinerary.AfternoonMarker, "Lunch", "*Estimated cost: $[Amount]*")
		writeSection(&b, itinerary.EveningMarker, "Dinner", "*Ambiance: [Description]*")
		b.WriteString(itinerary.TipMarker + " **Cultural Tips**:\n- [Insight 1]\n- [Insight 2]\n\n")
		b.WriteString("\U0001F504 **Transit Notes**:\n- [Transit details between locations]\n")
	}
	return b.String()
}

func writeSection(b *strings.Builder, marker, meal, note string) {
	b.WriteString(marker + "\n")
	fmt.Fprintf(b, "- **%s**: [Restaurant Name] + [Address]\n", meal)
	fmt.Fprintf(b, "  - %s\n", note)
	b.WriteString("- **Activity**: [Description]\n")
	b.WriteString("  - Location: [Address]\n")
	b.WriteString("  - Duration: [Time]\n")
	b.WriteString("  - Cost: $[Amount]\n\n")
}
