package suggestion

import (
	"strings"
)

const systemPrompt = `You recommend alternative time slots or other screens when demand for a selected screen and time is contended. Reply with a single JSON object and nothing else.`

// buildPrompt renders the user message for in
func buildPrompt(in Input) string {
	var b strings.Builder

	b.WriteString("The user has selected Screen: ")
	b.WriteString(in.SelectedScreen)
	b.WriteString(", Date: ")
	b.WriteString(in.SelectedDate)
	b.WriteString(", Time Period: ")
	b.WriteString(in.SelectedTimePeriod)
	b.WriteString(".\n")

	b.WriteString("Current demand level is: ")
	b.WriteString(in.DemandLevel)
	b.WriteString(".\n")

	b.WriteString("Nearby screens are: ")
	if len(in.NearbyScreens) == 0 {
		b.WriteString("none")
	} else {
		b.WriteString(strings.Join(in.NearbyScreens, ", "))
	}
	b.WriteString(".\n")

	if len(in.AllowedTimePeriods) > 0 {
		b.WriteString("Valid time periods are: ")
		b.WriteString(strings.Join(in.AllowedTimePeriods, ", "))
		b.WriteString(".\n")
	}

	b.WriteString(`
Based on this information, recommend alternative time slots and/or nearby screens to maximize coverage and reduce potential redundancy.
Respond in the following JSON format:
{
  "alternativeTimeSlots": ["List of alternative time slots"],
  "nearbyScreenRecommendations": ["List of nearby screen IDs"],
  "reasoning": "Explanation of why these recommendations are being made."
}`)

	return b.String()
}
