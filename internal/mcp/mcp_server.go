// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the boost MCP server without starting it.
// mgr may be nil, in which case tools that need the store report an error.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"ADS Boost Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	s.AddTool(mcp.NewTool("compute_boost",
		mcp.WithDescription("Compute boost factors for one bibliographic record given as a JSON object."),
		mcp.WithString("record", mcp.Description("The record as JSON, with bibcode or scix_id, bib_data, metrics and collections."), mcp.Required()),
		mcp.WithBoolean("persist", mcp.Description("Upsert the result into the boost store. Defaults to false.")),
		mcp.WithString("rank_order", mcp.Description("Override the collection rank order."), mcp.Enum("descending", "ascending")),
	), h.handleComputeBoost)

	s.AddTool(mcp.NewTool("query_boost",
		mcp.WithDescription("Look up stored boost factors by bibcode, falling back to scix_id."),
		mcp.WithString("id", mcp.Description("A bibcode or scix_id."), mcp.Required()),
	), h.handleQueryBoost)

	s.AddTool(mcp.NewTool("top_boosts",
		mcp.WithDescription("List the stored records with the highest boost for a discipline."),
		mcp.WithString("discipline", mcp.Description("Discipline to rank by. Defaults to the overall boost_factor."),
			mcp.Enum("astronomy", "physics", "earth_science", "planetary_science", "heliophysics", "general")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of records returned. Defaults to 10.")),
	), h.handleTopBoosts)

	s.AddTool(mcp.NewTool("explain_rankings",
		mcp.WithDescription("Show the doctype scores, collection rank weights and combiner weights in effect."),
	), h.handleExplainRankings)

	return s
}

// StartMCPServer serves the boost tools over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager, version string) error {
	s := NewMCPServer(baseCfg, mgr, version)
	return server.ServeStdio(s)
}
