// Package mcpadapter exposes deck generation to MCP clients over stdio.
package mcpadapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/slidemaker/internal/core/domain"
	"github.com/kirillkom/slidemaker/internal/core/ports"
)

const (
	serverName    = "slidemaker"
	serverVersion = "1.0.0"

	toolGenerateSlides = "generate_slides"
	toolListHistory    = "list_history"
)

type Server struct {
	generator ports.DeckGenerator
	history   ports.DeckHistoryService
	logger    *slog.Logger
	mcp       *server.MCPServer
}

func NewServer(generator ports.DeckGenerator, history ports.DeckHistoryService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		generator: generator,
		history:   history,
		logger:    logger,
		mcp:       server.NewMCPServer(serverName, serverVersion, server.WithToolCapabilities(false)),
	}

	s.mcp.AddTool(mcp.NewTool(toolGenerateSlides,
		mcp.WithDescription("Generate an educational slide deck from source text and store it in history."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Source text to turn into slides.")),
		mcp.WithString("presentation_title", mcp.Description("Title shown on the title slide.")),
		mcp.WithString("theme", mcp.Enum(string(domain.ThemeDark), string(domain.ThemeLight)), mcp.Description("Color theme, dark by default.")),
		mcp.WithString("model", mcp.Description("Model override for the synthesis provider.")),
	), s.generateSlides)

	s.mcp.AddTool(mcp.NewTool(toolListHistory,
		mcp.WithDescription("List recently generated decks, most recent first."),
	), s.listHistory)

	return s
}

// Serve speaks MCP over the given streams until ctx is done or in closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	return stdio.Listen(ctx, in, out)
}

func (s *Server) generateSlides(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil
	}

	deck, err := s.generator.Generate(ctx, domain.GenerateRequest{
		Content:           content,
		PresentationTitle: req.GetString("presentation_title", ""),
		Theme:             domain.Theme(req.GetString("theme", "")),
		Policy:            domain.SynthesisPolicy{Model: req.GetString("model", "")},
	})
	if err != nil {
		s.logger.Warn("mcp_tool_failed", "tool", toolGenerateSlides, "error", err)
		return mcp.NewToolResultError(domain.UserMessage(err)), nil
	}

	s.logger.Info("slides_generated", "deck_id", deck.ID, "slides", len(deck.Slides), "surface", "mcp")
	return jsonResult(deck)
}

func (s *Server) listHistory(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries, err := s.history.List(ctx)
	if err != nil {
		s.logger.Warn("mcp_tool_failed", "tool", toolListHistory, "error", err)
		return mcp.NewToolResultError(domain.UserMessage(err)), nil
	}
	return jsonResult(map[string]any{"decks": summaries})
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(raw)), nil
}
