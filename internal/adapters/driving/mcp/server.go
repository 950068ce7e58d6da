package mcp

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for studydeck.
// All tools act on one server-owned session, one call at a time.
type Server struct {
	ports  *Ports
	server *mcp.Server

	mu      sync.Mutex
	session *domain.Session
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "studydeck",
		Version: Version,
	}

	s := &Server{
		ports:   ports,
		server:  mcp.NewServer(impl, nil),
		session: domain.NewSession(uuid.New().String()),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Session returns the server-owned session.
func (s *Server) Session() *domain.Session {
	return s.session
}

// withSession runs fn holding the session lock.
func (s *Server) withSession(fn func(*domain.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.session)
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
