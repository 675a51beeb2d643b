package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Client talks to a browser's remote-debugging endpoint: tab listing over
// plain HTTP, script evaluation over the tab's debugger websocket.
type Client struct {
	baseURL string
	http    *http.Client
	dialer  *websocket.Dialer
	timeout time.Duration
	logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
		dialer: &websocket.Dialer{
			HandshakeTimeout: timeout,
		},
		timeout: timeout,
		logger:  logger,
	}
}

// ListTabs returns every open browsing context the debugger reports.
func (c *Client) ListTabs(ctx context.Context) ([]Tab, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/json/list", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tab list request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("debugger endpoint unreachable", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrDebuggerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrDebuggerUnavailable, resp.StatusCode)
	}

	var tabs []Tab
	if err := json.NewDecoder(resp.Body).Decode(&tabs); err != nil {
		return nil, fmt.Errorf("failed to decode tab list: %w", err)
	}

	return tabs, nil
}

type evaluateRequest struct {
	ID     int64          `json:"id"`
	Method string         `json:"method"`
	Params evaluateParams `json:"params"`
}

type evaluateParams struct {
	Expression    string `json:"expression"`
	AwaitPromise  bool   `json:"awaitPromise"`
	ReturnByValue bool   `json:"returnByValue"`
}

type evaluateResponse struct {
	ID     int64 `json:"id"`
	Result struct {
		Result struct {
			Type  string          `json:"type"`
			Value json.RawMessage `json:"value"`
		} `json:"result"`
		ExceptionDetails *struct {
			Text string `json:"text"`
		} `json:"exceptionDetails"`
	} `json:"result"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Evaluate runs expression inside the tab's browsing context and returns
// the JSON value it produced. A nil payload with a nil error means the
// expression evaluated to nothing.
func (c *Client) Evaluate(ctx context.Context, tab Tab, expression string) (json.RawMessage, error) {
	if tab.WebSocketDebuggerURL == "" {
		return nil, ErrNotDebuggable
	}

	conn, _, err := c.dialer.DialContext(ctx, tab.WebSocketDebuggerURL, nil)
	if err != nil {
		c.logger.Debug("failed to attach to tab", "tab_id", tab.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrDebuggerUnavailable, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	conn.SetReadDeadline(deadline)
	conn.SetWriteDeadline(deadline)

	const requestID = 1
	req := evaluateRequest{
		ID:     requestID,
		Method: "Runtime.evaluate",
		Params: evaluateParams{
			Expression:    expression,
			AwaitPromise:  true,
			ReturnByValue: true,
		},
	}

	if err := conn.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvalFailed, err)
	}

	// Соединение также доставляет события; ждем наш ответ
	for {
		var resp evaluateResponse
		if err := conn.ReadJSON(&resp); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEvalFailed, err)
		}

		if resp.ID != requestID {
			continue
		}

		if resp.Error != nil {
			return nil, fmt.Errorf("%w: %s", ErrEvalFailed, resp.Error.Message)
		}
		if resp.Result.ExceptionDetails != nil {
			return nil, fmt.Errorf("%w: %s", ErrEvalFailed, resp.Result.ExceptionDetails.Text)
		}

		return resp.Result.Result.Value, nil
	}
}
