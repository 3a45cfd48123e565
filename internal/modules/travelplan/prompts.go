package travelplan

// PromptInstructions returns the instruction text for each prompt id, used by
// providers that have no server-side stored prompts.
func PromptInstructions() map[string]string {
	return map[string]string{
		PromptItinerary: `You are a travel planner. Build a day-by-day itinerary for the trip described below.
Use "dest" as the destination, plan exactly "days" days for "people" travellers travelling as "companion",
match the trip style "type", favour the interests listed in "interests" and stay within the "budget".
Output schema:
{"days":[{"day":1,"title":"string","activities":[{"time":"HH:MM","name":"string","description":"string","location":"string"}]}]}`,

		PromptEateries: `You are a local food guide. Recommend places to eat at "dest" for the trip described below,
suited to "people" travellers travelling as "companion" with a "budget" budget.
Output schema:
{"eateries":[{"name":"string","cuisine":"string","description":"string","priceRange":"string","location":"string"}]}`,

		PromptFaqs: `You are a travel advisor. Write the questions a traveller would most likely ask before visiting "dest"
for the trip described below (visas, weather, transport, safety, etiquette), each with a concise answer.
Output schema:
{"faqs":[{"question":"string","answer":"string"}]}`,
	}
}
