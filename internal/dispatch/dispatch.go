// Package dispatch posts invocation requests to the local any_door server.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/soyeahso/anydoor/internal/domain"
	"github.com/soyeahso/anydoor/internal/hooks"
	"github.com/soyeahso/anydoor/internal/logging"
	"github.com/soyeahso/anydoor/internal/version"
)

const (
	// Host is the loopback address the any_door server listens on.
	Host = "127.0.0.1"
	// RunPath is the endpoint that executes an invocation.
	RunPath = "/any_door/run"

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// Dispatcher sends invocation requests without blocking the caller. Success
// is never reported; failures reach only the per-call error callback.
type Dispatcher struct {
	client *http.Client
	host   string
	hooks  *hooks.Manager
	log    *logging.Logger

	wg sync.WaitGroup
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTimeout sets the HTTP client timeout for each request.
func WithTimeout(d time.Duration) Option {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) { d.client = c }
}

// WithHooks sets the hook manager notified of sent and failed invocations.
func WithHooks(hm *hooks.Manager) Option {
	return func(d *Dispatcher) { d.hooks = hm }
}

// New creates a Dispatcher.
func New(log *logging.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		client: &http.Client{Timeout: defaultTimeout},
		host:   Host,
		log:    log.Sub("dispatch"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// URL returns the run endpoint for the given port.
func URL(host string, port int) string {
	return fmt.Sprintf("http://%s:%d%s", host, port, RunPath)
}

// Send posts req to the any_door server on port in the background and returns
// immediately. onError, if non-nil, is called exactly once when the request
// cannot be delivered or the server answers with a non-2xx status.
func (d *Dispatcher) Send(req domain.InvocationRequest, port int, onError func(error)) {
	if req.ParameterTypes == nil {
		req.ParameterTypes = []string{}
	}
	requestID := uuid.New().String()
	log := d.log.With("requestId", requestID)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("dispatch panicked")
			}
		}()

		ctx := context.Background()
		err := d.post(ctx, URL(d.host, port), requestID, req)
		if err != nil {
			log.Warn().Err(err).Str("className", req.ClassName).Str("methodName", req.MethodName).Msg("invocation failed")
			d.hooks.Emit(ctx, hooks.EventInvocationFailed, map[string]any{
				"requestId":  requestID,
				"className":  req.ClassName,
				"methodName": req.MethodName,
				"error":      err.Error(),
			})
			if onError != nil {
				onError(err)
			}
			return
		}

		log.Info().Str("className", req.ClassName).Str("methodName", req.MethodName).Msg("invocation sent")
		d.hooks.Emit(ctx, hooks.EventInvocationSent, map[string]any{
			"requestId":      requestID,
			"className":      req.ClassName,
			"methodName":     req.MethodName,
			"parameterTypes": req.ParameterTypes,
		})
	}()
}

func (d *Dispatcher) post(ctx context.Context, url, requestID string, req domain.InvocationRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-Id", requestID)
	httpReq.Header.Set("User-Agent", version.UserAgent())

	d.log.Debug().Str("url", url).RawJSON("body", payload).Msg("posting invocation")

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			return fmt.Errorf("any_door responded %s", resp.Status)
		}
		return fmt.Errorf("any_door responded %s: %s", resp.Status, msg)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Drain waits until every in-flight Send has finished or ctx is done. It is
// meant for process shutdown; callers of Send never wait on it.
func (d *Dispatcher) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
