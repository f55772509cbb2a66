// Package mcptools defines the tools served by the test MCP server.
// The server main and the tests share this one registration path.
package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type EchoInput struct {
	Message string `json:"message" jsonschema:"the message to echo back"`
}

type EchoOutput struct {
	Message string `json:"message" jsonschema:"the echoed message, unchanged"`
}

func Echo(ctx context.Context, req *mcp.CallToolRequest, input EchoInput) (
	*mcp.CallToolResult,
	EchoOutput,
	error,
) {
	return nil, EchoOutput{Message: input.Message}, nil
}

type AddInput struct {
	A int64 `json:"a" jsonschema:"the first addend"`
	B int64 `json:"b" jsonschema:"the second addend"`
}

type AddOutput struct {
	Sum int64 `json:"sum" jsonschema:"the sum of 'a' and 'b'"`
}

func Add(ctx context.Context, req *mcp.CallToolRequest, input AddInput) (
	*mcp.CallToolResult,
	AddOutput,
	error,
) {
	return nil, AddOutput{Sum: input.A + input.B}, nil
}

// NewServer returns an MCP server exposing the echo and add tools.
// Parameter validation against the input schemas is handled by the SDK.
func NewServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "test-mcp", Version: "v0.1.0"}, nil)
	mcp.AddTool(server, &mcp.Tool{Name: "echo", Description: "Echo back the message"}, Echo)
	mcp.AddTool(server, &mcp.Tool{Name: "add", Description: "Add two numbers"}, Add)
	return server
}
