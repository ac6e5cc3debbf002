// Package notify delivers human-readable failure messages to the user.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/soyeahso/anydoor/internal/logging"
)

// Notifier receives error strings for display. Delivery is fire-and-forget.
type Notifier interface {
	Error(msg string)
}

// Func adapts a plain function to a Notifier.
type Func func(msg string)

// Error calls f(msg).
func (f Func) Error(msg string) { f(msg) }

// LogNotifier records notifications in the structured log.
type LogNotifier struct {
	log *logging.Logger
}

// NewLogNotifier creates a notifier that logs at error level.
func NewLogNotifier(log *logging.Logger) *LogNotifier {
	return &LogNotifier{log: log.Sub("notify")}
}

// Error logs msg.
func (n *LogNotifier) Error(msg string) {
	n.log.Error().Msg(msg)
}

// WriterNotifier prints notifications to a writer such as stderr. Safe for
// use from multiple goroutines.
type WriterNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriterNotifier creates a notifier printing to out.
func NewWriterNotifier(out io.Writer) *WriterNotifier {
	return &WriterNotifier{out: out}
}

// Error prints "anydoor: <msg>".
func (n *WriterNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "anydoor: %s\n", msg)
}

// Multi fans a notification out to every non-nil notifier in order.
func Multi(notifiers ...Notifier) Notifier {
	var list []Notifier
	for _, n := range notifiers {
		if n != nil {
			list = append(list, n)
		}
	}
	return multi(list)
}

type multi []Notifier

func (m multi) Error(msg string) {
	for _, n := range m {
		n.Error(msg)
	}
}
