package mcpsrv

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/pullshop/catalog"
	"github.com/qyinm/pullshop/theme"
	"github.com/qyinm/pullshop/types"
)

func newTestCatalog() *catalog.Generator {
	return catalog.New(catalog.WithIDSource(catalog.NewCounter(100)), catalog.WithRand(rand.New(rand.NewSource(9))))
}

func TestToolCategoryListPaging(t *testing.T) {
	_, out, err := categoryListHandler(context.Background(), nil, categoryListArgs{Offset: 0, Limit: 2}, theme.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Total != 3 {
		t.Fatalf("unexpected total: %d", out.Total)
	}
	if len(out.Items) != 2 || out.Items[0].Key != "fresh" {
		t.Fatalf("unexpected items: %+v", out.Items)
	}
	if !out.HasMore || out.NextOffset != 2 {
		t.Fatalf("unexpected paging: has_more=%v next=%d", out.HasMore, out.NextOffset)
	}

	_, out, _ = categoryListHandler(context.Background(), nil, categoryListArgs{Offset: 2, Limit: 2}, theme.Default())
	if out.HasMore || out.NextOffset != -1 || len(out.Items) != 1 {
		t.Fatalf("unexpected last page: %+v", out)
	}
}

func TestToolCategoryListFuzzy(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"dgt", "digital"},
		{"pink", "clothing"},
		{"生鲜", "fresh"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			_, out, _ := categoryListHandler(context.Background(), nil, categoryListArgs{Query: tt.query}, theme.Default())
			if len(out.Items) == 0 || out.Items[0].Key != tt.want {
				t.Fatalf("query %q: got %+v, want first %q", tt.query, out.Items, tt.want)
			}
		})
	}

	_, out, _ := categoryListHandler(context.Background(), nil, categoryListArgs{Query: "zzzz"}, theme.Default())
	if out.Total != 0 {
		t.Fatalf("expected no matches, got %+v", out.Items)
	}
}

func TestToolCategoryConfigFallback(t *testing.T) {
	_, out, _ := categoryConfigHandler(context.Background(), nil, categoryArgs{Category: "toys"}, theme.Default())
	if !out.Fallback || out.Item.Key != "fresh" {
		t.Fatalf("unknown category should fall back to fresh: %+v", out)
	}
	_, out, _ = categoryConfigHandler(context.Background(), nil, categoryArgs{Category: "Digital"}, theme.Default())
	if out.Fallback || out.Item.Icon != "gear" {
		t.Fatalf("unexpected digital config: %+v", out)
	}
}

func TestToolCatalog(t *testing.T) {
	src := newTestCatalog()
	_, initial, _ := catalogInitialHandler(context.Background(), nil, categoryArgs{Category: "clothing"}, theme.Default(), src)
	if initial.Total != 6 || initial.Items[0].Name != "时尚T恤" || initial.Items[0].Price != "99.00" {
		t.Fatalf("unexpected initial list: %+v", initial)
	}

	_, regen, _ := catalogRegenerateHandler(context.Background(), nil, categoryArgs{Category: "nope"}, theme.Default(), src)
	if regen.Category != "fresh" || regen.Total != 6 {
		t.Fatalf("unexpected regenerate output: %+v", regen)
	}
}

func TestToolGesturePreview(t *testing.T) {
	_, out, _ := gesturePreviewHandler(context.Background(), nil, gesturePreviewArgs{
		Moves:   []float64{70, 100, 120},
		Release: true,
	}, theme.Default())

	want := []struct {
		distance float64
		status   string
	}{
		{60, "pulling"},
		{75, "pulling"},
		{85, "loosing"},
	}
	if len(out.Steps) != len(want) {
		t.Fatalf("steps = %d", len(out.Steps))
	}
	for i, w := range want {
		if out.Steps[i].State.PullDistancePx != w.distance || out.Steps[i].State.Status != w.status {
			t.Errorf("step %d = %+v, want %v/%s", i, out.Steps[i].State, w.distance, w.status)
		}
		if !out.Steps[i].PreventsScrolling {
			t.Errorf("step %d should prevent scrolling", i)
		}
	}
	if !out.Refreshes || out.Final.Status != "loading" || out.Final.PullDistancePx != 80 {
		t.Fatalf("unexpected final state: refreshes=%v %+v", out.Refreshes, out.Final)
	}

	_, out, _ = gesturePreviewHandler(context.Background(), nil, gesturePreviewArgs{Moves: []float64{-10}}, theme.Default())
	if out.Steps[0].PreventsScrolling || out.Final.Status != "normal" {
		t.Fatalf("upward move should cancel: %+v", out)
	}

	result, _, _ := gesturePreviewHandler(context.Background(), nil, gesturePreviewArgs{}, theme.Default())
	if result == nil || !result.IsError {
		t.Fatal("empty moves must return IsError")
	}
}

func TestToolViewRender(t *testing.T) {
	_, out, _ := viewRenderHandler(context.Background(), nil, viewRenderArgs{Category: "digital", Status: "loading", Distance: 130}, theme.Default())
	if out.Render.Transition != "none" || out.Render.TranslateY != 20 {
		t.Fatalf("loading render should pin at threshold: %+v", out.Render)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out.Render.IconMarkup))
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	if !doc.Find("div.animation-icon").HasClass("gear-icon") || !doc.Find("div.animation-icon").HasClass("loading") {
		t.Errorf("unexpected markup: %s", out.Render.IconMarkup)
	}
	if out.Render.Copy != "正在加载前沿数码..." {
		t.Errorf("copy = %q", out.Render.Copy)
	}

	_, out, _ = viewRenderHandler(context.Background(), nil, viewRenderArgs{Distance: 500, Status: "loosing"}, theme.Default())
	if out.Render.TranslateY != 100 {
		t.Errorf("distance should clamp to 160, translateY = %v", out.Render.TranslateY)
	}

	result, _, _ := viewRenderHandler(context.Background(), nil, viewRenderArgs{Status: "spinning"}, theme.Default())
	if result == nil || !result.IsError {
		t.Fatal("invalid status must return IsError")
	}
	result, _, _ = viewRenderHandler(context.Background(), nil, viewRenderArgs{Distance: -1}, theme.Default())
	if result == nil || !result.IsError {
		t.Fatal("negative distance must return IsError")
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv := startTestServer(Config{APIKey: "secret", RPS: 100, Burst: 100})
	defer srv.Close()

	resp, err := postInitialize(srv.URL+"/mcp", nil)
	if err != nil {
		t.Fatalf("initialize request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAuthMiddlewareSuccess(t *testing.T) {
	srv := startTestServer(Config{APIKey: "secret", RPS: 100, Burst: 100})
	defer srv.Close()

	for _, headers := range []map[string]string{
		{"Authorization": "Bearer secret"},
		{"X-API-Key": "secret"},
	} {
		resp, err := postInitialize(srv.URL+"/mcp", headers)
		if err != nil {
			t.Fatalf("initialize request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("headers %v: expected 200, got %d", headers, resp.StatusCode)
		}
	}
}

func TestAuthMiddlewareMalformedBearer(t *testing.T) {
	srv := startTestServer(Config{APIKey: "secret", RPS: 100, Burst: 100})
	defer srv.Close()

	resp, err := postInitialize(srv.URL+"/mcp", map[string]string{"Authorization": "Bearer"})
	if err != nil {
		t.Fatalf("initialize request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestOriginAllowlistMiddleware(t *testing.T) {
	srv := startTestServer(Config{RPS: 100, Burst: 100})
	defer srv.Close()

	resp, err := postInitialize(srv.URL+"/mcp", map[string]string{"Origin": "https://evil.example"})
	if err != nil {
		t.Fatalf("initialize request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestOriginAllowlistPreflight(t *testing.T) {
	srv := startTestServer(Config{AllowedOrigins: []string{"https://app.example"}, RPS: 100, Burst: 100})
	defer srv.Close()

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/mcp", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Fatalf("missing CORS header")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	srv := startTestServer(Config{RPS: 1, Burst: 1})
	defer srv.Close()

	resp1, err := postInitialize(srv.URL+"/mcp", nil)
	if err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	defer resp1.Body.Close()
	if resp1.StatusCode != http.StatusOK {
		t.Fatalf("expected first request 200, got %d", resp1.StatusCode)
	}

	resp2, err := postInitialize(srv.URL+"/mcp", nil)
	if err != nil {
		t.Fatalf("second request failed: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected second request 429, got %d", resp2.StatusCode)
	}
}

func TestRateLimitRefill(t *testing.T) {
	srv := startTestServer(Config{RPS: 20, Burst: 1})
	defer srv.Close()

	resp1, err := postInitialize(srv.URL+"/mcp", nil)
	if err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	resp1.Body.Close()

	time.Sleep(80 * time.Millisecond)
	resp2, err := postInitialize(srv.URL+"/mcp", nil)
	if err != nil {
		t.Fatalf("second request failed: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected request 200 after refill, got %d", resp2.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	srv := startTestServer(Config{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestMCPListTools(t *testing.T) {
	ctx := context.Background()
	srv := startTestServer(Config{})
	defer srv.Close()

	session := connectTestClient(t, ctx, srv.URL+"/mcp")
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	for _, name := range []string{"category_list", "category_config_get", "catalog_initial", "catalog_regenerate", "gesture_preview", "view_render"} {
		if !containsTool(tools.Tools, name) {
			t.Fatalf("missing tool %q", name)
		}
	}
}

func TestMCPCoreTools(t *testing.T) {
	ctx := context.Background()
	srv := startTestServer(Config{})
	defer srv.Close()

	session := connectTestClient(t, ctx, srv.URL+"/mcp")
	defer session.Close()

	cases := []mcp.CallToolParams{
		{Name: "category_list", Arguments: map[string]any{"query": "fresh"}},
		{Name: "category_config_get", Arguments: map[string]any{"category": "digital"}},
		{Name: "catalog_initial", Arguments: map[string]any{"category": "clothing"}},
		{Name: "catalog_regenerate", Arguments: map[string]any{"category": "fresh"}},
		{Name: "gesture_preview", Arguments: map[string]any{"moves": []float64{30, 90}, "release": true}},
		{Name: "view_render", Arguments: map[string]any{"category": "clothing", "status": "pulling", "distance": 40}},
	}

	for _, tc := range cases {
		result, err := session.CallTool(ctx, &tc)
		if err != nil {
			t.Fatalf("call tool %s failed: %v", tc.Name, err)
		}
		if result.IsError {
			t.Fatalf("tool %s returned IsError=true", tc.Name)
		}
	}
}

func TestMCPRegenerateStructuredOutput(t *testing.T) {
	ctx := context.Background()
	srv := startTestServer(Config{})
	defer srv.Close()

	session := connectTestClient(t, ctx, srv.URL+"/mcp")
	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "catalog_regenerate", Arguments: map[string]any{"category": "digital"}})
	if err != nil {
		t.Fatalf("call catalog_regenerate: %v", err)
	}
	b, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var out catalogOutput
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if out.Category != string(types.Digital) || len(out.Items) != 6 {
		t.Fatalf("unexpected output: %+v", out)
	}
	for _, item := range out.Items {
		if !strings.Contains(item.Price, ".") || len(item.Price)-strings.Index(item.Price, ".") != 3 {
			t.Errorf("price %q is not fixed to 2 decimals", item.Price)
		}
	}
}

func startTestServer(cfg Config) *httptest.Server {
	if cfg.RPS <= 0 {
		cfg.RPS = 100
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 100
	}
	server := NewServer(theme.Default(), newTestCatalog(), "test", &ServerOptions{})
	return httptest.NewServer(NewMux(server, cfg, nil))
}

func connectTestClient(t *testing.T, ctx context.Context, endpoint string) *mcp.ClientSession {
	t.Helper()
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: endpoint}, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	return session
}

func containsTool(tools []*mcp.Tool, name string) bool {
	for _, tool := range tools {
		if tool != nil && tool.Name == name {
			return true
		}
	}
	return false
}

func postInitialize(url string, headers map[string]string) (*http.Response, error) {
	payload := map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "initialize",
		"params": map[string]any{
			"protocolVersion": "2025-06-18",
			"capabilities":    map[string]any{},
			"clientInfo": map[string]any{
				"name":    "test",
				"version": "1",
			},
		},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(string(b)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return http.DefaultClient.Do(req)
}
