package constant

const (
	// PlaceholderAnswer is persisted for an assistant message before any
	// token has streamed; it is overwritten once generation completes.
	PlaceholderAnswer = "Generating..."

	// WelcomeMessage seeds a freshly created conversation.
	WelcomeMessage = "Hi, how can I help you ?"

	// ContextSeparator joins retrieved chunk contents in the prompt.
	ContextSeparator = "\n\n---\n\n"

	// NoContextFound is injected in place of retrieved context when no
	// candidate passed the relevance filter, so the model is told this
	// plainly instead of receiving an empty block.
	NoContextFound = "No relevant documents found."

	// SourcesHeading opens the source list appended to a final answer.
	SourcesHeading = "<h4>Here my Sources:</h4>"
)

// AnswerPromptHeader instructs the model before history, context and the
// question are appended.
const AnswerPromptHeader = `You are a knowledgeable and articulate assistant.
Based solely on the context provided below, produce a detailed and self-contained answer to the question.
Structure your answer with clear sections, such as:

1. **Overview:** A brief summary or introduction.
2. **Key Details:** Explanation of the relevant facts or technical points.
3. **Insights or Comparisons:** Any additional analysis, recommendations, or comparisons that help clarify the answer.

Do not refer to internal labels or figures from the context. Ensure your answer is easy to understand on its own.`
