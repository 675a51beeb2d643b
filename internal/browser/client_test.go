package browser

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestListTabs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json/list" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"tab-1","type":"page","url":"https://example.com/","title":"Example","webSocketDebuggerUrl":"ws://host/devtools/page/tab-1"},
			{"id":"tab-2","type":"page","url":"about:blank","title":""}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nil)
	tabs, err := client.ListTabs(context.Background())
	if err != nil {
		t.Fatalf("ListTabs failed: %v", err)
	}

	if len(tabs) != 2 {
		t.Fatalf("expected 2 tabs, got %d", len(tabs))
	}
	if tabs[0].URL != "https://example.com/" {
		t.Errorf("unexpected tab URL %q", tabs[0].URL)
	}
	if tabs[0].WebSocketDebuggerURL != "ws://host/devtools/page/tab-1" {
		t.Errorf("debugger URL not decoded, got %q", tabs[0].WebSocketDebuggerURL)
	}
}

func TestListTabsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, 200*time.Millisecond, nil)
	if _, err := client.ListTabs(context.Background()); !errors.Is(err, ErrDebuggerUnavailable) {
		t.Errorf("expected ErrDebuggerUnavailable, got %v", err)
	}
}

func TestListTabsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nil)
	if _, err := client.ListTabs(context.Background()); !errors.Is(err, ErrDebuggerUnavailable) {
		t.Errorf("expected ErrDebuggerUnavailable, got %v", err)
	}
}

var upgrader = websocket.Upgrader{}

// debuggerStub answers Runtime.evaluate over a real websocket, optionally
// emitting unrelated event frames first the way a live debugger does.
func debuggerStub(t *testing.T, respond func(id int64, expression string) any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		var req struct {
			ID     int64  `json:"id"`
			Method string `json:"method"`
			Params struct {
				Expression string `json:"expression"`
			} `json:"params"`
		}
		if err := conn.ReadJSON(&req); err != nil {
			t.Errorf("read failed: %v", err)
			return
		}
		if req.Method != "Runtime.evaluate" {
			t.Errorf("unexpected method %q", req.Method)
		}

		// Event frame with no id, must be skipped by the client.
		conn.WriteJSON(map[string]any{
			"method": "Runtime.consoleAPICalled",
			"params": map[string]any{},
		})
		conn.WriteJSON(respond(req.ID, req.Params.Expression))
	}))
}

func wsTab(server *httptest.Server) Tab {
	return Tab{
		ID:                   "tab-1",
		Type:                 "page",
		URL:                  "https://example.com/",
		WebSocketDebuggerURL: "ws" + strings.TrimPrefix(server.URL, "http"),
	}
}

func TestEvaluateReturnsValue(t *testing.T) {
	server := debuggerStub(t, func(id int64, _ string) any {
		return map[string]any{
			"id": id,
			"result": map[string]any{
				"result": map[string]any{
					"type":  "object",
					"value": map[string]any{"ok": true, "status": 200},
				},
			},
		}
	})
	defer server.Close()

	client := NewClient("", time.Second, nil)
	payload, err := client.Evaluate(context.Background(), wsTab(server), "probe()")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	var result struct {
		OK     bool `json:"ok"`
		Status int  `json:"status"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		t.Fatalf("payload %s is not valid JSON: %v", payload, err)
	}
	if !result.OK || result.Status != 200 {
		t.Errorf("unexpected payload %s", payload)
	}
}

func TestEvaluateProtocolError(t *testing.T) {
	server := debuggerStub(t, func(id int64, _ string) any {
		return map[string]any{
			"id":    id,
			"error": map[string]any{"message": "target crashed"},
		}
	})
	defer server.Close()

	client := NewClient("", time.Second, nil)
	if _, err := client.Evaluate(context.Background(), wsTab(server), "probe()"); !errors.Is(err, ErrEvalFailed) {
		t.Errorf("expected ErrEvalFailed, got %v", err)
	}
}

func TestEvaluateException(t *testing.T) {
	server := debuggerStub(t, func(id int64, _ string) any {
		return map[string]any{
			"id": id,
			"result": map[string]any{
				"result":           map[string]any{"type": "object"},
				"exceptionDetails": map[string]any{"text": "Uncaught ReferenceError"},
			},
		}
	})
	defer server.Close()

	client := NewClient("", time.Second, nil)
	if _, err := client.Evaluate(context.Background(), wsTab(server), "probe()"); !errors.Is(err, ErrEvalFailed) {
		t.Errorf("expected ErrEvalFailed, got %v", err)
	}
}

func TestEvaluateRequiresDebuggerURL(t *testing.T) {
	client := NewClient("", time.Second, nil)
	tab := Tab{ID: "tab-1", URL: "https://example.com/"}
	if _, err := client.Evaluate(context.Background(), tab, "probe()"); !errors.Is(err, ErrNotDebuggable) {
		t.Errorf("expected ErrNotDebuggable, got %v", err)
	}
}
