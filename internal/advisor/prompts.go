package advisor

import (
	"fmt"
	"strings"

	"github.com/Sandeep-khatri01/court-scheduling-system/internal/laws"
	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/models"
)

// Disclaimer appended to every chat answer the model produces.
const chatDisclaimer = "⚖️ Disclaimer: This is AI-generated information for awareness only. Please consult a licensed advocate for legal advice."

func orNone(s *string) string {
	if s == nil || *s == "" {
		return "None"
	}
	return *s
}

// buildSchedulePrompt renders the scheduling-suggestion prompt for a case.
// Pure; no I/O.
func buildSchedulePrompt(cs models.Case) string {
	return fmt.Sprintf(`You are an AI court scheduling assistant for Indian courts.
Analyze this case and suggest optimal hearing schedule:

Case: %s
Type: %s
Priority Score: %d/100
Urgency: %s
Adjournments So Far: %d
Last Adjournment Reason: %s
Filing Date: %s
Current Status: %s

Based on Indian court scheduling best practices, provide:
1. Suggested number of days until next hearing
2. Recommended hearing duration in minutes
3. Priority reasoning
4. Risk assessment of further delays

Return STRICT JSON format:
{
    "suggested_days_range": "7-14 days",
    "hearing_duration_minutes": 45,
    "confidence_score": 85,
    "scheduling_reasoning": "explanation",
    "delay_risk": "Low|Medium|High",
    "recommendations": ["rec1", "rec2"]
}`,
		cs.Title, cs.CaseType, cs.PriorityScore, cs.Urgency,
		cs.AdjournmentCount, orNone(cs.LastAdjournmentReason),
		cs.FilingDate, cs.Status)
}

// buildPriorityPrompt renders the priority-analysis prompt for a case.
func buildPriorityPrompt(cs models.Case) string {
	return fmt.Sprintf(`You are a court case prioritization AI for Indian judiciary.
Analyze this case and assign a priority score:

Case: %s
Type: %s
Filing Date: %s
Adjournments: %d
Last Adjournment: %s
Current Urgency: %s

Consider: case age, number of adjournments, case type severity, impact on parties.

Return STRICT JSON:
{
    "priority_score": number(0-100),
    "priority_level": "Low|Medium|High|Critical",
    "delay_risk": "Low|Medium|High",
    "reasoning": "short explanation",
    "recommendations": ["rec1", "rec2"]
}`,
		cs.Title, cs.CaseType, cs.FilingDate,
		cs.AdjournmentCount, orNone(cs.LastAdjournmentReason), cs.Urgency)
}

// buildChatPrompt renders the constrained LawBot prompt around the retrieved
// law context. The grounding rules are advisory: they are a property of the
// prompt, not an enforced guarantee.
func buildChatPrompt(message string, relevant []laws.ScoredLaw) string {
	var context string
	if len(relevant) > 0 {
		parts := make([]string, 0, len(relevant))
		for _, l := range relevant {
			bail := "No"
			if l.IsBailable {
				bail = "Yes"
			}
			parts = append(parts, fmt.Sprintf("[%s - %s] %s: %s | Penalty: %s | Bailable: %s",
				l.ActName, l.Section, l.Title, l.Description, l.Penalty, bail))
		}
		context = strings.Join(parts, "\n\n")
	}
	if context == "" {
		context = "No specific laws found matching this query."
	}

	return fmt.Sprintf(`You are "LawBot", an AI legal assistant for Indian courts.

IMPORTANT RULES:
- ONLY answer based on the provided LEGAL CONTEXT below
- If the context does not contain relevant information, say: "I don't have specific information about this in my database. Please consult a qualified lawyer."
- NEVER invent or fabricate any law, section, or penalty
- Always include relevant section numbers in your answer
- Add a disclaimer at the end: "%s"
- Be concise, clear, and use simple language
- Format your response with proper structure using bullet points

LEGAL CONTEXT FROM DATABASE:
%s

User Question: %s`, chatDisclaimer, context, message)
}
