package prompt

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soyeahso/anydoor/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEditor(t *testing.T, editor string) *EditorPrompter {
	t.Helper()
	p := NewEditorPrompter(editor, logging.New(nil, "silent"))
	p.Stdin = strings.NewReader("")
	p.Stdout = io.Discard
	p.Stderr = io.Discard
	p.TempDir = t.TempDir()
	return p
}

// --- ReaderPrompter tests ---

func TestReaderPrompter_Replacement(t *testing.T) {
	var out bytes.Buffer
	p := &ReaderPrompter{In: strings.NewReader("{\"id\": 5}\n"), Out: &out}

	text, ok, err := p.Present(context.Background(), "Generate call code", "{\n  \"id\": null\n}")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id": 5}`, text)
	assert.Contains(t, out.String(), "Generate call code")
	assert.Contains(t, out.String(), `"id": null`)
}

func TestReaderPrompter_EmptyKeepsInitial(t *testing.T) {
	p := &ReaderPrompter{In: strings.NewReader("  \n"), Out: io.Discard}

	text, ok, err := p.Present(context.Background(), "t", `{"a": 1}`)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a": 1}`, text)
}

func TestReaderPrompter_Dismiss(t *testing.T) {
	p := &ReaderPrompter{In: strings.NewReader(":q\n"), Out: io.Discard}

	text, ok, err := p.Present(context.Background(), "t", `{"a": 1}`)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestReaderPrompter_ContextCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	p := &ReaderPrompter{In: r, Out: io.Discard}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, ok, err := p.Present(ctx, "t", "{}")
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReaderPrompter_CancelReleasesInput(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	p := &ReaderPrompter{In: r, Out: io.Discard}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, ok, err := p.Present(ctx, "t", "{}")
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// No reader is left behind to swallow later input.
	_, err = w.WriteString("after")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "after", string(data))
}

// --- StaticPrompter / Func tests ---

func TestStaticPrompter(t *testing.T) {
	text, ok, err := StaticPrompter{Text: `{"id": 5}`}.Present(context.Background(), "t", "ignored")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id": 5}`, text)
}

func TestFunc(t *testing.T) {
	var gotInitial string
	p := Func(func(_ context.Context, _, initial string) (string, bool, error) {
		gotInitial = initial
		return "", false, nil
	})

	_, ok, err := p.Present(context.Background(), "t", "{}")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "{}", gotInitial)
}

// --- EditorPrompter tests ---

func TestResolveEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	assert.Equal(t, "vi", ResolveEditor(""))

	t.Setenv("EDITOR", "nano")
	assert.Equal(t, "nano", ResolveEditor(""))

	t.Setenv("VISUAL", "code --wait")
	assert.Equal(t, "code --wait", ResolveEditor(""))

	assert.Equal(t, "hx", ResolveEditor("hx"))
}

func TestEditorPrompter_Unchanged(t *testing.T) {
	p := testEditor(t, "true")

	text, ok, err := p.Present(context.Background(), "t", "{\n  \"id\": null\n}")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{\n  \"id\": null\n}", text)
}

func TestEditorPrompter_Edited(t *testing.T) {
	src := filepath.Join(t.TempDir(), "edited.json")
	require.NoError(t, os.WriteFile(src, []byte("{\"id\": 5}\n"), 0o600))
	p := testEditor(t, "cp "+src)

	text, ok, err := p.Present(context.Background(), "t", "{\n  \"id\": null\n}")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id": 5}`, text)
}

func TestEditorPrompter_NonZeroExitDismisses(t *testing.T) {
	p := testEditor(t, "false")

	_, ok, err := p.Present(context.Background(), "t", "{}")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEditorPrompter_EmptiedFileDismisses(t *testing.T) {
	p := testEditor(t, ": >")

	_, ok, err := p.Present(context.Background(), "t", `{"id": null}`)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEditorPrompter_RemovesTempFile(t *testing.T) {
	p := testEditor(t, "true")

	_, _, err := p.Present(context.Background(), "t", "{}")
	require.NoError(t, err)

	entries, err := os.ReadDir(p.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEditorPrompter_CancelledContext(t *testing.T) {
	p := testEditor(t, "sleep 5;")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, ok, err := p.Present(ctx, "t", "{}")
	assert.False(t, ok)
	assert.Error(t, err)
}

var (
	_ Prompter = (*ReaderPrompter)(nil)
	_ Prompter = StaticPrompter{}
	_ Prompter = (*EditorPrompter)(nil)
	_ Prompter = Func(nil)
)
