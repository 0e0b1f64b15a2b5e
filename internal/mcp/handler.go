// Package mcp exposes the data service as MCP tools over a streamable
// HTTP endpoint.
package mcp

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/vileo06/investliu/internal/analysis"
	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/service"
)

// Handler is the HTTP handler for the MCP endpoint. It wraps mcp-go's
// StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	server     *mcpserver.MCPServer
	logger     *common.Logger
}

// NewHandler creates an MCP handler with all tools registered.
func NewHandler(logger *common.Logger, svc *service.Service, analyses *analysis.Store) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"investliu",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	toolCount := RegisterTools(mcpSrv, svc, analyses)

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().Int("tools", toolCount).Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		server:     mcpSrv,
		logger:     logger,
	}
}

// Server returns the underlying MCPServer for testing.
func (h *Handler) Server() *mcpserver.MCPServer {
	return h.server
}

// ServeHTTP delegates to the streamable MCP server.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
