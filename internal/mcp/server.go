// Package mcp exposes the skill registry to AI assistants over the Model
// Context Protocol: the assistant sends its user's request and gets back
// the ranked skill documents it should consult.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sharpskill/skillmatch/internal/match"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for skillmatch.
type Server struct {
	registry *match.Registry
	server   *mcp.Server
}

// NewServer creates an MCP server serving the given registry.
func NewServer(registry *match.Registry) (*Server, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}

	impl := &mcp.Implementation{
		Name:    "skillmatch",
		Version: Version,
	}

	s := &Server{
		registry: registry,
		server:   mcp.NewServer(impl, nil),
	}
	s.registerTools()
	return s, nil
}

// Run starts the MCP server over stdio. It blocks until the context is
// cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
