// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Extractor: Turns one document format into plain text
//   - ExtractorRegistry: Selects the extractor for a format
//   - StructuredModel: Generative model constrained by a response schema
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - PromptStore: Customisable prompt templates. Without it, built-in prompts are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
