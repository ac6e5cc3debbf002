// Package prompt presents the argument template for editing and returns the
// user's final text.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Prompter shows initial text to the user and blocks until they confirm or
// dismiss it. ok is false when the user dismissed the prompt.
type Prompter interface {
	Present(ctx context.Context, title, initial string) (text string, ok bool, err error)
}

// DismissCommand is the line that dismisses a ReaderPrompter.
const DismissCommand = ":q"

// ReaderPrompter prints the initial text and reads the replacement from In
// until EOF. Empty input confirms the initial text unchanged.
//
// When ctx is cancelled and In has a SetReadDeadline method (pipes, sockets,
// *os.File on a pollable descriptor) the pending read is interrupted and In
// stays usable. Other readers keep one goroutine blocked in Read until they
// return.
type ReaderPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Present implements Prompter.
func (p *ReaderPrompter) Present(ctx context.Context, title, initial string) (string, bool, error) {
	fmt.Fprintf(p.Out, "%s\n%s\n", title, initial)
	fmt.Fprintf(p.Out, "-- enter replacement JSON, end with EOF (Ctrl-D); empty keeps the text above, %s cancels --\n", DismissCommand)

	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(bufio.NewReader(p.In))
		ch <- result{data, err}
	}()

	var r result
	select {
	case <-ctx.Done():
		if d, ok := p.In.(readDeadliner); ok && d.SetReadDeadline(time.Now()) == nil {
			<-ch
			_ = d.SetReadDeadline(time.Time{})
		}
		return "", false, ctx.Err()
	case r = <-ch:
	}
	if r.err != nil {
		return "", false, fmt.Errorf("reading input: %w", r.err)
	}

	input := strings.TrimSpace(string(r.data))
	switch input {
	case "":
		return initial, true, nil
	case DismissCommand:
		return "", false, nil
	}
	return trimNewlines(string(r.data)), true, nil
}

// StaticPrompter confirms a fixed text without interaction.
type StaticPrompter struct {
	Text string
}

// Present implements Prompter.
func (p StaticPrompter) Present(_ context.Context, _, _ string) (string, bool, error) {
	return p.Text, true, nil
}

// Func adapts a function to a Prompter.
type Func func(ctx context.Context, title, initial string) (string, bool, error)

// Present calls f.
func (f Func) Present(ctx context.Context, title, initial string) (string, bool, error) {
	return f(ctx, title, initial)
}

type readDeadliner interface {
	SetReadDeadline(t time.Time) error
}

func trimNewlines(s string) string {
	return strings.TrimRight(s, "\r\n")
}
