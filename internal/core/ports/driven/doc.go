// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ContentSource: Loads the immutable content snapshot
//   - KeyValueStore: The durable storage medium (SQLite, Badger, memory)
//   - AnalysisCache: Analysis namespace of the persistent cache
//   - ChatHistoryStore: Chat-history namespace of the persistent cache
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model operations. Without it, chat answers with an apology
//     and article analysis is unavailable.
//   - SpeechSynthesizer: Narration. Without it, messages carry no audio.
//   - PromptStore: Customisable prompts. Without it, built-in defaults are used.
//   - LLMProber: Checks provider settings before they are relied on.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
