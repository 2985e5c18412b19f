package assistant

import "fmt"

// Fixed user-facing messages for the degraded paths. The wording is
// part of the product surface and must not drift between releases.
const (
	// MessageNotUnderstood is returned when no attributes could be
	// derived from the prompt.
	MessageNotUnderstood = "I couldn't understand your request. Could you please provide more details?"

	// MessageComposeFailed replaces the composed answer when the chat
	// model is unreachable. The matched items are still returned.
	MessageComposeFailed = "I apologize, but I encountered an error while processing your request. Please try again later or rephrase your query."

	// MessageTechnicalIssue is returned when handling a prompt panics.
	MessageTechnicalIssue = "I encountered a technical issue while processing your request. Please try again with a simpler query."
)

// MessageNoMatches reports that neither the full nor the relaxed pass
// found anything for the prompt.
func MessageNoMatches(prompt string) string {
	return fmt.Sprintf("I couldn't find any items matching \"%s\" in our database. Could you try a more general search?", prompt)
}
