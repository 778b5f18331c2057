// Package domain defines the core business entities for studybuddy.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A named byte blob selected for study guide generation
//   - Format: The declared format of a document (text, markdown, pdf, docx)
//   - StudyGuide: The seven question categories returned by the model
//   - Question: The tagged union over the five practice question kinds
//   - Failure: A user-facing error carrying its diagnostic cause
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
