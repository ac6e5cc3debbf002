// Package intention implements the "Open any door" action: it turns a call
// site into an editable JSON argument payload, remembers the edited payload
// per signature, and hands it to the any_door server.
package intention

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/soyeahso/anydoor/internal/analyzer"
	"github.com/soyeahso/anydoor/internal/domain"
	"github.com/soyeahso/anydoor/internal/hooks"
	"github.com/soyeahso/anydoor/internal/logging"
	"github.com/soyeahso/anydoor/internal/notify"
	"github.com/soyeahso/anydoor/internal/prompt"
	"github.com/soyeahso/anydoor/internal/settings"
	"github.com/soyeahso/anydoor/internal/template"
)

const (
	text        = "Open any door"
	familyName  = "Any door"
	promptTitle = "Generate call code"
)

var (
	// ErrNotApplicable means there is no call site to act on.
	ErrNotApplicable = analyzer.ErrNotApplicable

	// ErrBusy means another invocation is still waiting on its prompt.
	ErrBusy = errors.New("an invocation is already in progress")
)

// Outcome reports how far an invocation got.
type Outcome int

const (
	// Aborted means nothing was sent: a precondition or the settings failed.
	Aborted Outcome = iota
	// Dismissed means the prompt was closed without confirming.
	Dismissed
	// Dispatched means a request was handed to the sender.
	Dispatched
)

func (o Outcome) String() string {
	switch o {
	case Dismissed:
		return "dismissed"
	case Dispatched:
		return "dispatched"
	default:
		return "aborted"
	}
}

// Locator finds the call site at a source position.
type Locator interface {
	Locate(ctx context.Context, pos analyzer.Position) (*domain.CallSite, error)
}

// Sender delivers a request to the any_door server without blocking.
type Sender interface {
	Send(req domain.InvocationRequest, port int, onError func(error))
}

// Intention wires the collaborators of one editor action together.
type Intention struct {
	settings settings.Provider
	prompter prompt.Prompter
	sender   Sender
	notifier notify.Notifier
	locator  Locator
	hooks    *hooks.Manager
	log      *logging.Logger

	// busy serializes invocations; the prompt is modal.
	busy sync.Mutex
}

// Option configures an Intention.
type Option func(*Intention)

// WithLocator sets the analyzer used by InvokeAt.
func WithLocator(l Locator) Option {
	return func(in *Intention) { in.locator = l }
}

// WithHooks sets the hook manager for lifecycle events.
func WithHooks(hm *hooks.Manager) Option {
	return func(in *Intention) { in.hooks = hm }
}

// New creates an Intention.
func New(sp settings.Provider, p prompt.Prompter, s Sender, n notify.Notifier, log *logging.Logger, opts ...Option) *Intention {
	in := &Intention{
		settings: sp,
		prompter: p,
		sender:   s,
		notifier: n,
		log:      log.Sub("intention"),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Text is the label shown for the action.
func (in *Intention) Text() string { return text }

// FamilyName groups the action with related ones.
func (in *Intention) FamilyName() string { return familyName }

// IsAvailable reports whether the action can run on site.
func (in *Intention) IsAvailable(site *domain.CallSite) bool {
	return site != nil
}

// InvokeAt locates the call site at pos and invokes the action on it.
func (in *Intention) InvokeAt(ctx context.Context, pos analyzer.Position) (Outcome, error) {
	if in.locator == nil {
		return Aborted, errors.New("no locator configured")
	}
	site, err := in.locator.Locate(ctx, pos)
	if err != nil {
		return Aborted, err
	}
	return in.Invoke(ctx, site)
}

// Invoke runs the action on site. Failures after the precondition checks are
// reported through the notifier and leave the returned error nil.
func (in *Intention) Invoke(ctx context.Context, site *domain.CallSite) (Outcome, error) {
	if !in.IsAvailable(site) {
		return Aborted, ErrNotApplicable
	}
	if !in.busy.TryLock() {
		return Aborted, ErrBusy
	}
	defer in.busy.Unlock()

	state, err := in.settings()
	if err != nil {
		in.notifier.Error("get AnyDoorSettings Service error. errMsg:" + err.Error())
		return Aborted, nil
	}

	log := in.log.With("key", site.Key())
	in.hooks.Emit(ctx, hooks.EventInvocationStart, eventData(site))

	if !site.HasParameters() {
		log.Debug().Msg("no parameters, sending empty payload")
		in.send(site, template.Empty, state.Port())
		return Dispatched, nil
	}

	key := site.Key()
	initial, ok := state.GetCache(key)
	if !ok {
		initial, err = template.Default(parameterNames(site))
		if err != nil {
			in.notifier.Error(fmt.Sprintf("build argument template error: %v", err))
			return Aborted, nil
		}
	}
	log.Debug().Bool("cached", ok).Msg("presenting argument prompt")

	content, confirmed, err := in.prompter.Present(ctx, promptTitle, initial)
	if err != nil {
		in.notifier.Error(fmt.Sprintf("open prompt error: %v", err))
		return Aborted, nil
	}
	if !confirmed {
		log.Debug().Msg("prompt dismissed")
		in.hooks.Emit(ctx, hooks.EventPromptDismissed, eventData(site))
		return Dismissed, nil
	}

	state.PutCache(key, content)
	data := eventData(site)
	data["content"] = content
	in.hooks.Emit(ctx, hooks.EventTemplateSaved, data)

	in.send(site, content, state.Port())
	return Dispatched, nil
}

func (in *Intention) send(site *domain.CallSite, content string, port int) {
	in.sender.Send(site.Request(content), port, func(err error) {
		in.notifier.Error("call any_door error " + err.Error())
	})
}

// parameterNames returns one name per parameter type, filling gaps with
// positional names.
func parameterNames(site *domain.CallSite) []string {
	names := make([]string, len(site.ParameterTypeNames))
	for i := range names {
		if i < len(site.ParameterNames) && site.ParameterNames[i] != "" {
			names[i] = site.ParameterNames[i]
		} else {
			names[i] = fmt.Sprintf("arg%d", i)
		}
	}
	return names
}

func eventData(site *domain.CallSite) map[string]any {
	return map[string]any{
		"key":            site.Key(),
		"className":      site.QualifiedTypeName,
		"methodName":     site.MemberName,
		"parameterTypes": site.ParameterTypeNames,
	}
}
