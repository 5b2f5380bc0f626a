package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	gosdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/decodex/internal/heuristic"
	"github.com/standardbeagle/decodex/internal/search"
	"github.com/standardbeagle/decodex/internal/transform"
	"github.com/standardbeagle/decodex/internal/types"
)

type stubRecognizer struct{ target string }

func (s stubRecognizer) Recognize(ctx context.Context, text, producingTransformation string) types.RecognitionResult {
	if text == s.target {
		return types.RecognitionResult{IsPlaintext: true, RecognizerName: "stub"}
	}
	return types.RecognitionResult{}
}

func newTestEngineFactory(target string) func(search.Mode) *search.Engine {
	registry := transform.NewReferenceRegistry()
	model := heuristic.NewModel(registry.Descriptor, heuristic.DefaultDepthPenalty)
	return func(mode search.Mode) *search.Engine {
		return search.New(search.Config{
			Mode:       mode,
			Deadline:   2 * time.Second,
			Registry:   registry,
			Model:      model,
			Recognizer: stubRecognizer{target: target},
		})
	}
}

func callDecode(t *testing.T, srv *Server, params decodeParams) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}
	result, err := srv.handleDecode(context.Background(), &gosdkmcp.CallToolRequest{
		Params: &gosdkmcp.CallToolParamsRaw{Arguments: raw},
	})
	if err != nil {
		t.Fatalf("handleDecode returned an error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected a successful result, got error content: %+v", result.Content)
	}
	text, ok := result.Content[0].(*gosdkmcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(text.Text), &decoded); err != nil {
		t.Fatalf("failed to decode result JSON: %v", err)
	}
	return decoded
}

func TestHandleDecodeFindsPlaintextThroughBase64(t *testing.T) {
	srv := NewServer(newTestEngineFactory("Hello World"))

	decoded := callDecode(t, srv, decodeParams{Input: "SGVsbG8gV29ybGQ="})

	results, ok := decoded["results"].([]interface{})
	if !ok || len(results) != 1 {
		t.Fatalf("expected exactly one result, got %+v", decoded["results"])
	}
	first, ok := results[0].(map[string]interface{})
	if !ok || first["text"] != "Hello World" {
		t.Fatalf("expected decoded 'Hello World', got %+v", results[0])
	}
}

func TestHandleDecodeRejectsMissingInput(t *testing.T) {
	srv := NewServer(newTestEngineFactory("unused"))

	raw, _ := json.Marshal(decodeParams{})
	result, err := srv.handleDecode(context.Background(), &gosdkmcp.CallToolRequest{
		Params: &gosdkmcp.CallToolParamsRaw{Arguments: raw},
	})
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected an error result for a missing input field")
	}
}
