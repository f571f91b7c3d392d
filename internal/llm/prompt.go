package llm

import (
	"fmt"
	"strings"

	"github.com/shakauthossain/nh-buddy/internal/domain"
)

const assistantPersona = `You are NH Buddy, a smart, witty and helpful virtual assistant representing the company. Answer the user's question with clarity and accuracy based on the FAQ context below and the conversation so far.

Be helpful but never robotic, confident but not cocky, professional but friendly. Rephrase bare yes/no answers into helpful sentences. Never invent details that are not in the context. If the context does not contain the answer, suggest contacting the team instead of guessing. Do not answer personal, financial or legal questions. Respond in plain text, not markdown.`

// BuildAnswerPrompt renders the retrieval-augmented, conversation-aware
// prompt for one user question.
func BuildAnswerPrompt(faqContext string, history []domain.Turn, query string) string {
	var sb strings.Builder
	sb.WriteString(assistantPersona)
	sb.WriteString("\n\nFAQ context:\n")
	if faqContext == "" {
		sb.WriteString("(no matching FAQ entries)\n")
	} else {
		sb.WriteString(faqContext)
		sb.WriteString("\n")
	}

	if len(history) > 0 {
		sb.WriteString("\nConversation so far:\n")
		for _, turn := range history {
			fmt.Fprintf(&sb, "%s: %s\n", turn.Role, turn.Content)
		}
	}

	fmt.Fprintf(&sb, "\nUser question: %s\nAnswer:", query)
	return sb.String()
}

// BuildYesNoPrompt renders the schedule-intent check prompt. The reply is
// expected to be a bare "yes" or "no".
func BuildYesNoPrompt(message string) string {
	return fmt.Sprintf(
		"Does this message express intent to schedule a meeting? Reply only \"yes\" or \"no\".\nMessage: %q", message)
}
