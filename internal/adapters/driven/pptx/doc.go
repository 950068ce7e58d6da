// Package pptx writes presentation trees as Office Open XML (.pptx) packages.
//
// Static parts (theme, slide master, the single blank layout, notes master
// and property parts) are embedded. Slides, notes slides, relationships,
// content types and document properties are generated per deck.
package pptx
