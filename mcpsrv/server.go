package mcpsrv

import (
	"context"
	"math"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/pullshop/gesture"
	"github.com/qyinm/pullshop/logger"
	"github.com/qyinm/pullshop/mcpsrv/dto"
	"github.com/qyinm/pullshop/types"
	"github.com/qyinm/pullshop/view"
	"github.com/sahilm/fuzzy"
)

type categoryListArgs struct {
	Query  string `json:"query,omitempty" jsonschema:"Optional fuzzy query over key, label and theme"`
	Offset int    `json:"offset,omitempty" jsonschema:"Optional pagination offset"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Optional page size limit"`
}

type categoryArgs struct {
	Category string `json:"category,omitempty" jsonschema:"Category key: fresh, digital, clothing; unknown keys resolve to fresh"`
}

type gesturePreviewArgs struct {
	Category string    `json:"category,omitempty" jsonschema:"Category key; selects the threshold"`
	Moves    []float64 `json:"moves" jsonschema:"Touch Y offsets relative to the touch start, in pixels"`
	Release  bool      `json:"release,omitempty" jsonschema:"Release the touch after the last move"`
}

type viewRenderArgs struct {
	Category string  `json:"category,omitempty" jsonschema:"Category key"`
	Status   string  `json:"status,omitempty" jsonschema:"normal, pulling, loosing or loading"`
	Distance float64 `json:"distance,omitempty" jsonschema:"Damped pull distance in pixels; clamped to twice the threshold"`
}

type categoryListOutput struct {
	Query      string         `json:"query"`
	Offset     int            `json:"offset"`
	Limit      int            `json:"limit"`
	NextOffset int            `json:"next_offset"`
	HasMore    bool           `json:"has_more"`
	Total      int            `json:"total"`
	Items      []dto.Category `json:"items"`
}

type categoryConfigOutput struct {
	Requested string             `json:"requested"`
	Fallback  bool               `json:"fallback"`
	Item      dto.CategoryConfig `json:"item"`
}

type catalogOutput struct {
	Category string        `json:"category"`
	Total    int           `json:"total"`
	Items    []dto.Product `json:"items"`
}

type gestureStep struct {
	Move              float64          `json:"move"`
	PreventsScrolling bool             `json:"prevents_scrolling"`
	State             dto.GestureState `json:"state"`
}

type gesturePreviewOutput struct {
	Category    string           `json:"category"`
	ThresholdPx float64          `json:"threshold_px"`
	Steps       []gestureStep    `json:"steps"`
	Refreshes   bool             `json:"refreshes"`
	Final       dto.GestureState `json:"final"`
}

type viewRenderOutput struct {
	Category string     `json:"category"`
	Status   string     `json:"status"`
	Render   dto.Render `json:"render"`
}

type ServerOptions struct {
	Logger *logger.Log
}

func NewServer(store types.ConfigSource, source types.CatalogSource, version string, opts *ServerOptions) *mcp.Server {
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}
	if opts == nil {
		opts = &ServerOptions{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	log := opts.Logger.WithComponent("mcp")

	server := mcp.NewServer(&mcp.Implementation{Name: "pullshop", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "category_list",
		Description: "List product categories with their theme colors.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args categoryListArgs) (*mcp.CallToolResult, categoryListOutput, error) {
		return categoryListHandler(ctx, req, args, store)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "category_config_get",
		Description: "Get the pull-to-refresh config of a category.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args categoryArgs) (*mcp.CallToolResult, categoryConfigOutput, error) {
		return categoryConfigHandler(ctx, req, args, store)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "catalog_initial",
		Description: "Get the fixed initial product list of a category.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args categoryArgs) (*mcp.CallToolResult, catalogOutput, error) {
		return catalogInitialHandler(ctx, req, args, store, source)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "catalog_regenerate",
		Description: "Generate a fresh random product list for a category, as a refresh would.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args categoryArgs) (*mcp.CallToolResult, catalogOutput, error) {
		result, out, err := catalogRegenerateHandler(ctx, req, args, store, source)
		log.WithField("category", out.Category).Debug("catalog regenerated")
		return result, out, err
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "gesture_preview",
		Description: "Replay a pull gesture and report distance and status after each move.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args gesturePreviewArgs) (*mcp.CallToolResult, gesturePreviewOutput, error) {
		return gesturePreviewHandler(ctx, req, args, store)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "view_render",
		Description: "Render header copy, inline style and icon markup for a category and gesture state.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args viewRenderArgs) (*mcp.CallToolResult, viewRenderOutput, error) {
		return viewRenderHandler(ctx, req, args, store)
	})

	return server
}

func categoryListHandler(_ context.Context, _ *mcp.CallToolRequest, args categoryListArgs, store types.ConfigSource) (*mcp.CallToolResult, categoryListOutput, error) {
	all := store.Categories()
	filtered := all
	if query := strings.TrimSpace(args.Query); query != "" {
		haystack := make([]string, len(all))
		for i, c := range all {
			haystack[i] = strings.Join([]string{string(c.Key()), c.Label(), c.Theme()}, " ")
		}
		matches := fuzzy.Find(query, haystack)
		filtered = make([]types.CategoryConfig, 0, len(matches))
		for _, m := range matches {
			filtered = append(filtered, all[m.Index])
		}
	}

	limit := args.Limit
	if limit <= 0 {
		limit = 25
	}
	if limit > 100 {
		limit = 100
	}
	offset := args.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > len(filtered) {
		offset = len(filtered)
	}

	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	page := filtered[offset:end]
	nextOffset := end
	hasMore := end < len(filtered)
	if !hasMore {
		nextOffset = -1
	}

	return nil, categoryListOutput{
		Query:      args.Query,
		Offset:     offset,
		Limit:      limit,
		NextOffset: nextOffset,
		HasMore:    hasMore,
		Total:      len(filtered),
		Items:      dto.FromCategories(page),
	}, nil
}

func categoryConfigHandler(_ context.Context, _ *mcp.CallToolRequest, args categoryArgs, store types.ConfigSource) (*mcp.CallToolResult, categoryConfigOutput, error) {
	requested := strings.TrimSpace(strings.ToLower(args.Category))
	cfg := store.Get(requested)
	return nil, categoryConfigOutput{
		Requested: args.Category,
		Fallback:  string(cfg.Key()) != requested,
		Item:      dto.FromCategoryConfig(cfg),
	}, nil
}

func catalogInitialHandler(_ context.Context, _ *mcp.CallToolRequest, args categoryArgs, store types.ConfigSource, source types.CatalogSource) (*mcp.CallToolResult, catalogOutput, error) {
	category := resolveCategory(store, args.Category)
	products := source.Initial(category)
	return nil, catalogOutput{
		Category: string(category),
		Total:    len(products),
		Items:    dto.FromProducts(products),
	}, nil
}

func catalogRegenerateHandler(_ context.Context, _ *mcp.CallToolRequest, args categoryArgs, store types.ConfigSource, source types.CatalogSource) (*mcp.CallToolResult, catalogOutput, error) {
	category := resolveCategory(store, args.Category)
	products := source.Regenerate(category)
	return nil, catalogOutput{
		Category: string(category),
		Total:    len(products),
		Items:    dto.FromProducts(products),
	}, nil
}

func gesturePreviewHandler(_ context.Context, _ *mcp.CallToolRequest, args gesturePreviewArgs, store types.ConfigSource) (*mcp.CallToolResult, gesturePreviewOutput, error) {
	if len(args.Moves) == 0 {
		return errorToolResult("moves is required"), gesturePreviewOutput{}, nil
	}
	if len(args.Moves) > 200 {
		return errorToolResult("at most 200 moves are allowed"), gesturePreviewOutput{}, nil
	}

	cfg := store.Get(strings.TrimSpace(strings.ToLower(args.Category)))
	m := gesture.New(cfg.ThresholdPx())
	m.TouchStart(0, 0)

	steps := make([]gestureStep, 0, len(args.Moves))
	for _, y := range args.Moves {
		prevents := m.TouchMove(y, 0)
		steps = append(steps, gestureStep{
			Move:              y,
			PreventsScrolling: prevents,
			State:             dto.FromGestureState(m.State()),
		})
	}

	refreshes := false
	if args.Release {
		_, refreshes = m.TouchEnd()
	}

	return nil, gesturePreviewOutput{
		Category:    string(cfg.Key()),
		ThresholdPx: cfg.ThresholdPx(),
		Steps:       steps,
		Refreshes:   refreshes,
		Final:       dto.FromGestureState(m.State()),
	}, nil
}

func viewRenderHandler(_ context.Context, _ *mcp.CallToolRequest, args viewRenderArgs, store types.ConfigSource) (*mcp.CallToolResult, viewRenderOutput, error) {
	status, err := types.ParseStatus(args.Status)
	if err != nil {
		return errorToolResult(err.Error()), viewRenderOutput{}, nil
	}
	if args.Distance < 0 {
		return errorToolResult("distance must not be negative"), viewRenderOutput{}, nil
	}

	cfg := store.Get(strings.TrimSpace(strings.ToLower(args.Category)))
	st := types.GestureState{
		Status:         status,
		IsPulling:      status != types.StatusNormal,
		IsRefreshing:   status == types.StatusLoading,
		PullDistancePx: math.Min(args.Distance, cfg.ThresholdPx()*2),
	}
	if status == types.StatusLoading {
		st.PullDistancePx = cfg.ThresholdPx()
	}

	return nil, viewRenderOutput{
		Category: string(cfg.Key()),
		Status:   status.String(),
		Render:   dto.FromRender(view.Preview(cfg, st)),
	}, nil
}

func resolveCategory(store types.ConfigSource, raw string) types.Category {
	return store.Get(strings.TrimSpace(strings.ToLower(raw))).Key()
}

func errorToolResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
