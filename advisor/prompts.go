package advisor

import (
	"fmt"
	"strings"
)

const (
	systemInstruction = "You are the FarmLink Neural Assistant. You provide expert agricultural, logistics, " +
		"and financial advice for African farmers and buyers. Use deep reasoning for complex problems. " +
		"Always be professional, futuristic, and helpful."

	deepChatThinkingBudget = 32768

	nearbyNodesPrompt = "Locate and list 3 nearby agricultural markets, cold storage warehouses, or processing hubs. " +
		"For each, give a one-sentence description of their services and importance."

	speechVoice = "Zephyr"

	insightsUnavailable       = "Insights currently unavailable."
	marketInsightsUnavailable = "Market insights currently unavailable."
	scanningInfrastructure    = "Scanning regional infrastructure..."
)

func fastInsightsPrompt(region string, crops []string) string {
	return fmt.Sprintf("Quick status for %s (%s): 2 bullet points on market price and weather alerts. Max 30 words total.",
		region, strings.Join(crops, ", "))
}

func agriInsightsPrompt(region string, crops []string) string {
	return fmt.Sprintf("Provide 3 short, modern agricultural insights for %s growing %s. Format as a bulleted list.",
		region, strings.Join(crops, ", "))
}

func calendarSuggestionsPrompt(location string, crops []string) string {
	return fmt.Sprintf(`Provide 5 agricultural calendar suggestions for %s regarding %s.
For each suggestion, use this EXACT format:
1.
CATEGORY: [planting/harvesting/market/maintenance]
TASK: [Short Task Name]
DETAILED ADVICE: [1-2 sentences of advice]
TIMING: [Specific time or date range]`, location, strings.Join(crops, ", "))
}

func buyingTipsPrompt(location string) string {
	return fmt.Sprintf("Provide 3 short, strategic buying tips for someone sourcing agricultural produce in %s. "+
		"Focus on quality verification, regional price trends, and logistics optimization.", location)
}

func speechPrompt(text string) string {
	return "Speak this clearly: " + text
}
