package domain

// AnswerOrigin identifies which path produced an answer.
type AnswerOrigin string

// Answer origins.
const (
	// OriginKnowledgeBase means the answer came from retrieved document
	// context.
	OriginKnowledgeBase AnswerOrigin = "knowledge_base"

	// OriginWebSearch means retrieval was insufficient and the answer
	// was assembled from web search results.
	OriginWebSearch AnswerOrigin = "web_search"

	// OriginNone means neither the knowledge base nor the web search
	// produced usable material.
	OriginNone AnswerOrigin = "none"

	// OriginError means answering failed and the text carries the
	// recovered error message.
	OriginError AnswerOrigin = "error"
)

// Label returns the user-facing source label for the origin.
func (o AnswerOrigin) Label() string {
	switch o {
	case OriginKnowledgeBase:
		return "PDF Knowledge Base"
	case OriginWebSearch:
		return "Web Search"
	case OriginError:
		return "Error"
	default:
		return "No Source"
	}
}

// Answer is the result of routing a question through retrieval and,
// when needed, the web search fallback.
type Answer struct {
	// Text is the answer body shown to the user.
	Text string

	// Origin records which path produced the text.
	Origin AnswerOrigin

	// Sources holds result URLs when Origin is OriginWebSearch.
	// Empty otherwise.
	Sources []string
}
