// Package mcp exposes the poetry graph over the Model Context Protocol so
// agent clients can query the canon and request generation constraints.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bohara2000/MARTA-Poetry/internal/graph"
	"github.com/bohara2000/MARTA-Poetry/internal/personality"
	"github.com/bohara2000/MARTA-Poetry/internal/prompt"
)

type Server struct {
	graph         *graph.Graph
	personalities *personality.Store
	builder       *prompt.Builder
	mcp           *sdk.Server
}

func NewServer(g *graph.Graph, personalities *personality.Store, version string) *Server {
	s := &Server{
		graph:         g,
		personalities: personalities,
		builder:       prompt.NewBuilder(g),
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "martapoetry",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
