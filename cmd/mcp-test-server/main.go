// mcp-test-server serves the echo and add tools over stdio.
package main

import (
	"context"
	"log"

	"github.com/JulesGosnell/claij/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	server := mcptools.NewServer()
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
