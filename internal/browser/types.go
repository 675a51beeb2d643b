package browser

import "errors"

// Tab is one open browsing context, as reported by the remote-debugging
// endpoint's /json/list.
type Tab struct {
	ID                   string `json:"id"`
	Type                 string `json:"type"`
	Title                string `json:"title"`
	URL                  string `json:"url"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

var ErrDebuggerUnavailable = errors.New("browser debugger unavailable")
var ErrNotDebuggable = errors.New("tab has no debugger endpoint")
var ErrEvalFailed = errors.New("script evaluation failed in tab")
