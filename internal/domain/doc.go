// Package domain contains the core domain entities and value objects for textdrop.
//
// This package represents the innermost layer of the module. It has no
// dependencies on infrastructure concerns (host documents, logging, settings
// files) and contains only pure data and business rules.
//
// # Entities
//
//   - [PasteCapture]: A single intercepted paste with its dedup fingerprint
//   - [BatchPart]: One contiguous slice of an oversized paste
//   - [AttachableFile]: A named, MIME-typed file ready for upload
//   - [ClassificationResult]: The classifier's format guess with confidence
//   - [Settings]: The immutable per-paste settings snapshot
//   - [Outcome]: The terminal result of one orchestrator run
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
