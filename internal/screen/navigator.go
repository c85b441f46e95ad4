package screen

import "sync"

type Route string

const (
	RouteLogin         Route = "/login"
	RouteHome          Route = "/home"
	RouteExplore       Route = "/explore"
	RouteTickets       Route = "/tickets"
	RouteProfile       Route = "/profile"
	RouteNotifications Route = "/notifications"
	RouteBookmarks     Route = "/bookmarks"
)

type Navigator interface {
	Push(r Route)
	// Replace swaps the current route so back cannot return to it.
	Replace(r Route)
	Back() bool
	Current() Route
}

// History is a stack-based Navigator.
type History struct {
	mu    sync.Mutex
	stack []Route
}

func NewHistory(start Route) *History {
	return &History{stack: []Route{start}}
}

func (h *History) Push(r Route) {
	h.mu.Lock()
	h.stack = append(h.stack, r)
	h.mu.Unlock()
}

func (h *History) Replace(r Route) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) == 0 {
		h.stack = []Route{r}
		return
	}
	h.stack[len(h.stack)-1] = r
}

func (h *History) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) <= 1 {
		return false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return true
}

func (h *History) Current() Route {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) == 0 {
		return ""
	}
	return h.stack[len(h.stack)-1]
}

// Depth is the number of routes on the stack.
func (h *History) Depth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack)
}
