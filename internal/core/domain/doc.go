// Package domain defines the core entities for studydeck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawFile: A named byte buffer handed over by a driving adapter
//   - Source: One ingested study artifact with extracted text and a unit count
//   - Corpus: The delimited concatenation of every current Source
//   - Section: A detected logical subdivision of the corpus
//   - SlideDeckSpec: A validated description of a slide deck
//   - Presentation: The document tree a deck writer serialises
//   - Session: Per-user state owning all of the above
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
