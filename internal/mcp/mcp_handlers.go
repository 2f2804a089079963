package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gacscore/gacscore/core"
	"github.com/gacscore/gacscore/internal/contract"
	"github.com/gacscore/gacscore/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleListDimensions(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model := core.BuildCatalogModel()
	if dimID := request.GetString("dimension", ""); dimID != "" {
		var records []schema.CatalogRecord
		for _, r := range model.Dimensions {
			if r.DimensionID == dimID {
				records = append(records, r)
			}
		}
		if len(records) == 0 {
			return mcp.NewToolResultError(fmt.Sprintf("unknown dimension %q", dimID)), nil
		}
		model.Dimensions = records
	}
	return jsonResult(model)
}

func (h *toolHandler) handleScoreQuestion(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dimID := request.GetString("dimension", "")
	qID := request.GetString("question", "")
	if dimID == "" || qID == "" {
		return mcp.NewToolResultError("dimension and question are required"), nil
	}

	qr, err := core.ScoreQuestion(dimID, qID, request.GetString("answer", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	return jsonResult(qr)
}

func (h *toolHandler) handleAssessProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.projectConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid assessment parameters: %v", err)), nil
	}

	report, err := core.ScoreProject(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("assessment failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleCheckWeights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.projectConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid check parameters: %v", err)), nil
	}

	report, err := core.ScoreProject(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("weight check failed: %v", err)), nil
	}
	return jsonResult(report.WeightCheck)
}

// projectConfig applies the per-call project arguments on top of the base config.
func (h *toolHandler) projectConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("project_path", ""); p != "" {
		cfg.ProjectPath = p
	}
	if name := request.GetString("project", ""); name != "" {
		cfg.ProjectName = name
	}
	if err := contract.RevalidateSelection(cfg, request.GetString("selected", "")); err != nil {
		return nil, err
	}
	if err := contract.RevalidateTolerance(cfg, request.GetFloat("tolerance", 0)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
