// Package mcp exposes decodex's search engine as an MCP tool, in the
// teacher's own shape (internal/mcp/server.go: mcp.NewServer +
// server.AddTool, one handler per tool, jsonschema-go for InputSchema).
// Where the teacher's server exposed a whole codebase-intelligence tool
// surface, decodex exposes a single "decode" tool — an AI-agent-facing
// counterpart to internal/apiserver's REST+websocket dashboard, for
// callers that prefer the MCP stdio protocol over HTTP polling.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/decodex/internal/search"
)

// Version is stamped into the MCP Implementation descriptor; callers set
// it to the same build version cmd/decodex reports via --version.
var Version = "dev"

// decodeParams is the "decode" tool's input shape (spec §6's CLI/config
// surface, narrowed to what an MCP caller can usefully set per call).
type decodeParams struct {
	Input           string `json:"input"`
	DeadlineSeconds int    `json:"deadline_seconds,omitempty"`
	CollectAll      bool   `json:"collect_all,omitempty"`
}

var decodeInputSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"input": {
			Type:        "string",
			Description: "the candidate-ciphertext string to search for a plaintext decoding",
		},
		"deadline_seconds": {
			Type:        "integer",
			Description: "wall-clock search deadline in seconds; 0 uses the server's configured default",
		},
		"collect_all": {
			Type:        "boolean",
			Description: "keep searching until the deadline, collecting every plaintext found instead of stopping at the first",
		},
	},
	Required: []string{"input"},
}

// resultView mirrors internal/apiserver's wire shape, so a caller reading
// both surfaces sees the same field names for a decode result.
type resultView struct {
	Text  string     `json:"text"`
	Chain []stepView `json:"chain"`
}

type stepView struct {
	Transformation string `json:"transformation"`
	Input          string `json:"input"`
	Output         string `json:"output"`
	Key            string `json:"key,omitempty"`
	Recognizer     string `json:"recognizer,omitempty"`
}

func toResultView(r search.Result) resultView {
	steps := make([]stepView, 0, len(r.Chain))
	for _, s := range r.Chain {
		steps = append(steps, stepView{
			Transformation: s.TransformationName,
			Input:          s.InputText,
			Output:         s.OutputText,
			Key:            s.Key,
			Recognizer:     s.RecognizerName,
		})
	}
	return resultView{Text: r.Text, Chain: steps}
}

// Server wraps an mcp.Server exposing decodex's "decode" tool.
// newEngine mirrors apiserver.Server's constructor argument: a factory
// producing a fresh search.Engine per call, so concurrent MCP calls never
// share Engine state.
type Server struct {
	server    *mcp.Server
	newEngine func(mode search.Mode) *search.Engine
}

// NewServer builds the MCP server and registers its tools.
func NewServer(newEngine func(mode search.Mode) *search.Engine) *Server {
	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "decodex-mcp-server",
			Version: Version,
		}, nil),
		newEngine: newEngine,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "decode",
		Description: "Search for a plaintext decoding of a candidate-ciphertext string, trying layered combinations of encoders and ciphers until a recognizer confirms one.",
		InputSchema: decodeInputSchema,
	}, s.handleDecode)
}

func (s *Server) handleDecode(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params decodeParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return errorResult(fmt.Errorf("invalid parameters: %w", err))
	}
	if params.Input == "" {
		return errorResult(fmt.Errorf("input is required"))
	}

	mode := search.ModeSingleShot
	if params.CollectAll {
		mode = search.ModeCollectAll
	}

	engine := s.newEngine(mode)
	if params.DeadlineSeconds > 0 {
		// The factory already baked in the config's deadline; a per-call
		// override means re-running Engine.Run under our own shorter
		// context rather than rebuilding the engine.
		var cancel context.CancelFunc
		ctx, cancel = contextWithSeconds(ctx, params.DeadlineSeconds)
		defer cancel()
	}

	results, stats, err := engine.Run(ctx, params.Input)
	if err != nil {
		return errorResult(fmt.Errorf("search failed: %w", err))
	}

	views := make([]resultView, 0, len(results))
	for _, r := range results {
		views = append(views, toResultView(r))
	}

	return jsonResult(map[string]interface{}{
		"results": views,
		"stats":   stats,
	})
}

// Run serves the MCP tool surface over stdio, the transport the teacher's
// cmd/lci uses for its own MCP server.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func contextWithSeconds(ctx context.Context, seconds int) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
}

func jsonResult(data interface{}) (*mcp.CallToolResult, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(content)}},
	}, nil
}

func errorResult(err error) (*mcp.CallToolResult, error) {
	content, marshalErr := json.Marshal(map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
	if marshalErr != nil {
		return nil, marshalErr
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: string(content)}},
	}, nil
}
