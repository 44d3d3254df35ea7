// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: User-editable classification prompts
//
// LoadEnv reads .env files into the process environment before settings are resolved.
package file
