package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptChatSystem frames a chat question.
	// Placeholders, in order: %s knowledge context, %s transcript, %s question.
	PromptChatSystem = "chat_system"

	// PromptSuggestions asks for follow-up questions as a JSON array.
	// Placeholder: %s the answer being followed up.
	PromptSuggestions = "suggestions"

	// PromptAnalysis asks for the seven-field JSON analysis of a record.
	// Placeholders: %s title, %s content.
	PromptAnalysis = "analysis"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}

// DefaultPrompts are the built-in templates, keyed by prompt name.
// Prompt stores seed user-editable files from them and services fall back
// to them when no store is configured.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var DefaultPrompts = map[string]string{
	PromptChatSystem: `شما دستیار حقوقی قانون مشروطه (۱۲۸۵) هستید.
منابع: %s
پاسخ کوتاه، دقیق و به زبان فارسی امروزی باشد.
تاریخچه گفتگو: %s
سوال کاربر: %s`,

	PromptSuggestions: `Based on this answer about the Iranian Constitution: "%s...", suggest 3 short, relevant follow-up questions in Persian. Return ONLY the questions as a JSON array of strings (e.g. ["Question 1", "Question 2"]).`,

	PromptAnalysis: `تحلیل حقوقی اصل "%s": "%s".
خروجی JSON:
{
  "modernText": "فارسی ساده",
  "example": "مثال کاربردی",
  "historicalContext": "چرایی تصویب",
  "proponentView": "نظر موافقان",
  "opponentView": "نظر مخالفان",
  "prevailingView": "نظر نهایی",
  "legalTruth": "تفسیر حقوقی"
}`,
}
