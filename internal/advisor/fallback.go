package advisor

// Fixed fallback payloads returned whenever the completion dependency is
// unconfigured, unreachable, or returns something unparseable. Callers always
// receive a complete, schema-valid result; the degradation is visible only in
// the reasoning text.

func fallbackSchedule() *ScheduleSuggestion {
	return &ScheduleSuggestion{
		SuggestedDaysRange:     "14-21 days",
		HearingDurationMinutes: 30,
		ConfidenceScore:        50,
		SchedulingReasoning:    "AI service unavailable. Default suggestion based on standard court procedures.",
		DelayRisk:              "Medium",
		Recommendations:        []string{"Review case manually", "Check judge availability"},
	}
}

func fallbackPriority() *PriorityAnalysis {
	score := 50
	return &PriorityAnalysis{
		PriorityScore:   &score,
		PriorityLevel:   "Medium",
		DelayRisk:       "Medium",
		Reasoning:       "AI service unavailable. Default priority assigned.",
		Recommendations: []string{"Manual review recommended"},
	}
}

func fallbackChatText() string {
	return "I apologize, but the AI service is currently unavailable. Please try again later or consult with the court clerk for assistance.\n\n⚖️ Disclaimer: This is an automated fallback response."
}
