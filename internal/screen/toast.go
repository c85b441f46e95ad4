// Package screen holds the per-screen view-model state: the last fetched
// collections, the derived views, the UI flags and the toasts each screen
// raises. Screens are driven from one goroutine; they are not safe for
// concurrent use.
package screen

import (
	"sync"

	"github.com/google/uuid"
)

type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
	ToastWarning ToastType = "warning"
)

// Toast is a transient notice shown to the user.
type Toast struct {
	ID      string
	Type    ToastType
	Title   string
	Message string
}

func NewToast(kind ToastType, title, message string) Toast {
	return Toast{ID: uuid.NewString(), Type: kind, Title: title, Message: message}
}

type Notifier interface {
	Show(t Toast)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(t Toast)

func (f NotifierFunc) Show(t Toast) { f(t) }

// ToastLog keeps every toast shown until drained.
type ToastLog struct {
	mu     sync.Mutex
	toasts []Toast
}

func (l *ToastLog) Show(t Toast) {
	l.mu.Lock()
	l.toasts = append(l.toasts, t)
	l.mu.Unlock()
}

// Drain returns the pending toasts and empties the log.
func (l *ToastLog) Drain() []Toast {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.toasts
	l.toasts = nil
	return out
}

func (l *ToastLog) Last() (Toast, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.toasts) == 0 {
		return Toast{}, false
	}
	return l.toasts[len(l.toasts)-1], true
}

func showError(n Notifier, message string) {
	if n != nil {
		n.Show(NewToast(ToastError, "Error", message))
	}
}

func show(n Notifier, kind ToastType, title, message string) {
	if n != nil {
		n.Show(NewToast(kind, title, message))
	}
}
