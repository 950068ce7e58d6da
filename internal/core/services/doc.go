// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The generation pipeline lives here: token budgets and input truncation,
// prompt rendering, the Generator that is the only caller of the LLM port,
// the study tasks built on it, slide deck spec validation and the compiler
// that turns a spec into a presentation tree.
package services
