// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/gacscore/gacscore/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the gacscore MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"GAC Assessment Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: list_dimensions ---
	s.AddTool(mcp.NewTool("list_dimensions",
		mcp.WithDescription("List the assessment catalog: dimensions, modules, questions and how each question is scored."),
		mcp.WithString("dimension", mcp.Description("Only list questions of this dimension id.")),
	), h.handleListDimensions)

	// --- 2. Tool: score_question ---
	s.AddTool(mcp.NewTool("score_question",
		mcp.WithDescription("Score one answer against a catalog question without touching any project."),
		mcp.WithString("dimension", mcp.Description("Dimension id, e.g. 'energy'."), mcp.Required()),
		mcp.WithString("question", mcp.Description("Question id within the dimension, e.g. 'q1'."), mcp.Required()),
		mcp.WithString("answer", mcp.Description("Raw answer: a number or option value, comma separated checkbox values, or a JSON record for multi-input questions.")),
	), h.handleScoreQuestion)

	// --- 3. Tool: assess_project ---
	s.AddTool(mcp.NewTool("assess_project",
		mcp.WithDescription("Score a saved project and return the full assessment report."),
		mcp.WithString("project_path", mcp.Description("Path to a project JSON file. Defaults to the project store.")),
		mcp.WithString("project", mcp.Description("Project name in the project store.")),
		mcp.WithString("selected", mcp.Description("Comma separated dimension ids to include.")),
		mcp.WithNumber("tolerance", mcp.Description("Allowed deviation of weight sums from 100.")),
	), h.handleAssessProject)

	// --- 4. Tool: check_weights ---
	s.AddTool(mcp.NewTool("check_weights",
		mcp.WithDescription("Run the weight validation gate on a saved project."),
		mcp.WithString("project_path", mcp.Description("Path to a project JSON file. Defaults to the project store.")),
		mcp.WithString("project", mcp.Description("Project name in the project store.")),
		mcp.WithString("selected", mcp.Description("Comma separated dimension ids to include.")),
		mcp.WithNumber("tolerance", mcp.Description("Allowed deviation of weight sums from 100.")),
	), h.handleCheckWeights)

	return s
}

// StartMCPServer starts the gacscore MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
