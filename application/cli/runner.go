// Package cli runs one invocation of the client: it validates the URL,
// dispatches the request and prints the result.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gh0stintheshe11/Web-Client/application/format"
	"github.com/gh0stintheshe11/Web-Client/application/validation"
	"github.com/gh0stintheshe11/Web-Client/domain/entities"
	"github.com/gh0stintheshe11/Web-Client/domain/errors"
)

// RequestDispatcher sends a request and classifies the result.
type RequestDispatcher interface {
	Dispatch(ctx context.Context, spec entities.RequestSpec) (entities.Outcome, error)
}

// Runner prints the output of one invocation to an injected writer.
type Runner struct {
	out        io.Writer
	dispatcher RequestDispatcher
	logger     *slog.Logger
}

// Option is a functional option for configuring a Runner.
type Option func(*Runner)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a Runner writing to out.
func NewRunner(out io.Writer, dispatcher RequestDispatcher, opts ...Option) *Runner {
	r := &Runner{
		out:        out,
		dispatcher: dispatcher,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs the invocation described by spec.
//
// URL and request failures are printed as a single "Error: " line and Run
// returns nil. A non-nil error is either *errors.FatalInputError for a
// malformed --json payload, or a failure to write the output. Lines printed
// before a fatal error are kept.
func (r *Runner) Run(ctx context.Context, spec entities.RequestSpec) error {
	p := &printer{w: r.out}
	method := spec.ResolvedMethod()

	p.linef("Requesting URL: %s", spec.URL)
	p.linef("Method: %s", method)

	target, err := validation.ValidateURL(spec.URL)
	if err != nil {
		r.logger.DebugContext(ctx, "url rejected", "url", spec.URL, "error", errors.ToErrorDetail(err))
		p.linef("Error: %s", err)
		return p.err
	}
	r.logger.DebugContext(ctx, "url accepted", "scheme", target.Scheme(), "host", target.Hostname(), "port", target.Port())

	if payload, ok := spec.JSONData(); ok {
		p.linef("JSON: %s", payload)
	} else if data, ok := spec.FormData(); ok && method == entities.MethodPost {
		p.linef("Data: %s", data)
	}
	if p.err != nil {
		return p.err
	}

	outcome, err := r.dispatcher.Dispatch(ctx, spec)
	if err != nil {
		return err
	}

	if success, ok := outcome.(entities.Success); ok {
		if format.IsJSON(success.Body) {
			p.line("Response body (JSON with sorted keys):")
			p.line(format.Body(success.Body))
		} else {
			p.line("Response body:")
			p.line(success.Body)
		}
		return p.err
	}

	failure := errors.FromOutcome(outcome)
	if failure == nil {
		return fmt.Errorf("unexpected outcome %T", outcome)
	}
	r.logger.DebugContext(ctx, "request failed", "error", failure.ToErrorDetail())
	p.linef("Error: %s", failure)
	return p.err
}

// printer writes lines and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	if _, err := io.WriteString(p.w, s+"\n"); err != nil {
		p.err = fmt.Errorf("failed to write output: %w", err)
	}
}

func (p *printer) linef(layout string, args ...any) {
	p.line(fmt.Sprintf(layout, args...))
}
