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
//   - SourceAdapter: Fetches and normalises events from one organisation
//   - Fetcher: Retrying network fetch used by adapters
//   - EventStore: Event persistence with replace and append semantics
//   - RunStore: Pipeline run history
//   - SchedulerStore: Scheduler state persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - AIClassifier: Model-assisted category labelling. Without it, keyword rules are used.
//   - LLMService: Language model backing the AIClassifier.
//   - MetricsRecorder: Pipeline metrics. Without it, nothing is recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or source package
package driven
