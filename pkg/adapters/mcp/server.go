package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/pkg/document"
	"github.com/aretw0/tmsim/pkg/domain"
)

const formatsURI = "tmsim://formats"

// Converter defines the part of tmsim.Converter the MCP tools call.
type Converter interface {
	ConvertAndEncode(ctx context.Context, src string, format document.Format) ([]byte, error)
	Validate(ctx context.Context, src string) []error
}

// ValidateArgs are the arguments of validate_machine.
type ValidateArgs struct {
	Source string `json:"source"`
}

// Diagnostic is one problem found in a description.
type Diagnostic struct {
	Message string `json:"message" jsonschema_description:"Human readable error"`
	Kind    string `json:"kind" jsonschema_description:"Error class, e.g. syntax or conflicting_rule"`
	Line    int    `json:"line,omitempty" jsonschema_description:"1-based source line, omitted when not tied to a line"`
}

// ValidateResult is the structured output of validate_machine.
type ValidateResult struct {
	Valid  bool         `json:"valid" jsonschema_description:"True when the description converts cleanly"`
	Errors []Diagnostic `json:"errors" jsonschema_description:"Every problem found, in source order"`
}

// Server exposes the converter as an MCP server.
type Server struct {
	conv      Converter
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(conv Converter) *Server {
	s := &Server{
		conv:      conv,
		mcpServer: server.NewMCPServer("tmsim-mcp", tmsim.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: convert_machine
	convertTool := mcp.NewTool("convert_machine",
		mcp.WithDescription("Convert a textual Turing machine description into a structured document."),
		mcp.WithString("source", mcp.Required(), mcp.Description("The machine description: alphabet, tape and rule lines")),
		mcp.WithString("format", mcp.Description("Output format: json (default), yaml, toml or legacy")),
	)
	s.mcpServer.AddTool(convertTool, s.handleConvert)

	// TOOL: validate_machine
	validateTool := mcp.NewTool("validate_machine",
		mcp.WithDescription("Check a Turing machine description and report every problem found."),
		mcp.WithString("source", mcp.Required(), mcp.Description("The machine description")),
		mcp.WithOutputSchema[ValidateResult](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, err := request.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := checkSource(src); err != nil {
		slog.Warn("MCP Convert: source rejected", "error", err, "size", len(src))
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := document.ParseFormat(request.GetString("format", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := s.conv.ConvertAndEncode(ctx, src, format)
	if err != nil {
		slog.Debug("MCP Convert: rejected", "kind", domain.ErrorKind(err), "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", domain.ErrorKind(err), err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args ValidateArgs) (ValidateResult, error) {
	if err := checkSource(args.Source); err != nil {
		slog.Warn("MCP Validate: source rejected", "error", err, "size", len(args.Source))
		return ValidateResult{}, err
	}

	errs := s.conv.Validate(ctx, args.Source)
	result := ValidateResult{Valid: len(errs) == 0, Errors: make([]Diagnostic, 0, len(errs))}
	for _, err := range errs {
		result.Errors = append(result.Errors, Diagnostic{
			Message: err.Error(),
			Kind:    domain.ErrorKind(err),
			Line:    domain.ErrorLine(err),
		})
	}
	return result, nil
}

func (s *Server) registerResources() {
	// EXPOSE: tmsim://formats
	s.mcpServer.AddResource(mcp.NewResource(formatsURI, "Supported Output Formats",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(document.Formats)
		if err != nil {
			return nil, fmt.Errorf("failed to list formats: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      formatsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
