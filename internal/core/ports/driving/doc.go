// Package driving defines interfaces that external actors (CLI, TUI, MCP, HTTP)
// use to interact with core services. These are the "driving" ports in hexagonal
// architecture terminology - they drive the application.
//
// Every operation takes the *domain.Session it acts on; adapters own session
// lifetimes and serialise actions against a session.
//
// Implementations of these interfaces live in internal/core/services.
package driving
