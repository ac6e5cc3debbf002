package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/soyeahso/anydoor/internal/logging"
	"github.com/soyeahso/anydoor/internal/template"
)

// EditorPrompter opens the text in an external editor. The prompt is
// dismissed when the editor exits non-zero or the file is left blank.
type EditorPrompter struct {
	Editor  string // command line; see ResolveEditor
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	TempDir string

	log *logging.Logger
}

// NewEditorPrompter creates a prompter that runs editor attached to the
// process terminal.
func NewEditorPrompter(editor string, log *logging.Logger) *EditorPrompter {
	return &EditorPrompter{
		Editor: ResolveEditor(editor),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		log:    log.Sub("prompt"),
	}
}

// ResolveEditor picks the editor command: the configured value, then
// $VISUAL, then $EDITOR, then vi.
func ResolveEditor(configured string) string {
	for _, e := range []string{configured, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(e) != "" {
			return e
		}
	}
	return "vi"
}

// Present implements Prompter.
func (p *EditorPrompter) Present(ctx context.Context, title, initial string) (string, bool, error) {
	f, err := os.CreateTemp(p.TempDir, "anydoor-*.json")
	if err != nil {
		return "", false, fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(initial + "\n"); err != nil {
		f.Close()
		return "", false, fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", false, fmt.Errorf("closing temp file: %w", err)
	}

	p.log.Debug().Str("editor", p.Editor).Str("file", path).Str("title", title).Msg("opening editor")

	// "$@" lets the configured command carry its own flags and quoting.
	cmd := exec.CommandContext(ctx, "sh", "-c", p.Editor+` "$@"`, "anydoor-editor", path)
	cmd.WaitDelay = time.Second
	cmd.Stdin = p.Stdin
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			p.log.Info().Int("exitCode", exitErr.ExitCode()).Msg("editor exited non-zero, dismissed")
			return "", false, nil
		}
		return "", false, fmt.Errorf("running editor %q: %w", p.Editor, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("reading edited file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		p.log.Info().Msg("edited file is empty, dismissed")
		return "", false, nil
	}

	text := trimNewlines(string(data))
	if err := template.Validate(text); err != nil {
		p.log.Warn().Msg("edited arguments are not valid JSON; sending as written")
	}
	return text, true, nil
}
