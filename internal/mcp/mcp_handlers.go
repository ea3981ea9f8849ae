package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/adsabs/adsboost/core"
	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

const defaultTopLimit = 10

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) boostStore() contract.BoostStore {
	if h.mgr == nil {
		return nil
	}
	return h.mgr.GetBoostStore()
}

func (h *toolHandler) handleComputeBoost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if order := request.GetString("rank_order", ""); order != "" {
		cfg.Scoring.RankOrder = schema.RankOrder(strings.ToLower(order))
		if _, ok := schema.ValidRankOrders[cfg.Scoring.RankOrder]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid rank_order %q", order)), nil
		}
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(request.GetString("record", "")), &raw); err != nil || raw == nil {
		return mcp.NewToolResultError("record must be a JSON object"), nil
	}

	var opts []core.ProcessorOption
	if request.GetBool("persist", false) {
		bs := h.boostStore()
		if bs == nil {
			return mcp.NewToolResultError("persist requested but no boost store is configured"), nil
		}
		opts = append(opts, core.WithStore(bs))
	}

	rec, err := core.NewProcessor(cfg.Scoring, opts...).Process(ctx, raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(rec, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleQueryBoost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := core.LookupBoost(ctx, h.boostStore(), request.GetString("id", ""))
	if errors.Is(err, core.ErrNotFound) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(records, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleTopBoosts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bs := h.boostStore()
	if bs == nil {
		return mcp.NewToolResultError("no boost store is configured"), nil
	}

	by := schema.Discipline(strings.ToLower(request.GetString("discipline", "")))
	if by != "" {
		if _, ok := schema.ValidDisciplines[by]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid discipline %q", by)), nil
		}
	}
	limit := request.GetInt("limit", defaultTopLimit)
	if limit <= 0 {
		return mcp.NewToolResultError("limit must be at least 1"), nil
	}

	records, err := bs.GetAll(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}
	ranked := core.RankRecords(records, by, limit)
	if ranked == nil {
		ranked = []schema.BoostRecord{}
	}

	jsonData, _ := json.MarshalIndent(ranked, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleExplainRankings(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report := core.ExplainRankings(h.baseCfg.Scoring)
	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
