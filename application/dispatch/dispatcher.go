// Package dispatch builds and sends the single request of an invocation and
// classifies what came back.
package dispatch

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"net"
	"strings"

	"github.com/gh0stintheshe11/Web-Client/application/format"
	"github.com/gh0stintheshe11/Web-Client/domain/entities"
	"github.com/gh0stintheshe11/Web-Client/domain/errors"
	"github.com/gh0stintheshe11/Web-Client/domain/ports"
)

// Dispatcher sends requests through an injected ports.HTTPClient.
type Dispatcher struct {
	client ports.HTTPClient
	logger *slog.Logger
}

// Option is a functional option for configuring a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a Dispatcher that sends requests through client.
func New(client ports.HTTPClient, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch sends spec and classifies the result.
//
// The only error it returns is *errors.FatalInputError, for a --json payload
// that does not parse. That check runs before anything else. Every other
// failure is reported through the returned Outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, spec entities.RequestSpec) (entities.Outcome, error) {
	if payload, ok := spec.JSONData(); ok {
		if err := format.Validate(payload); err != nil {
			return nil, &errors.FatalInputError{Err: err, Payload: payload}
		}
	}

	method := spec.ResolvedMethod()
	switch method {
	case entities.MethodGet:
		d.logger.DebugContext(ctx, "sending request", "method", method, "url", spec.URL)
		resp, err := d.client.Get(ctx, spec.URL)
		return d.classify(ctx, resp, err), nil
	case entities.MethodPost:
		return d.post(ctx, spec), nil
	default:
		d.logger.DebugContext(ctx, "rejecting request", "method", method, "reason", entities.RejectUnsupportedMethod)
		return entities.Rejected{Reason: entities.RejectUnsupportedMethod}, nil
	}
}

func (d *Dispatcher) post(ctx context.Context, spec entities.RequestSpec) entities.Outcome {
	if payload, ok := spec.JSONData(); ok {
		return d.send(ctx, spec.URL, entities.ContentTypeJSON, []byte(payload))
	}

	data, ok := spec.FormData()
	if !ok {
		d.logger.DebugContext(ctx, "rejecting request", "method", entities.MethodPost, "reason", entities.RejectMissingData)
		return entities.Rejected{Reason: entities.RejectMissingData}
	}

	if strings.HasPrefix(data, "{") {
		compact, err := format.Compact(data)
		if err != nil {
			d.logger.DebugContext(ctx, "rejecting request", "method", entities.MethodPost,
				"reason", entities.RejectInvalidInlineJSON, "error", err)
			return entities.Rejected{Reason: entities.RejectInvalidInlineJSON, Detail: err.Error()}
		}
		return d.send(ctx, spec.URL, entities.ContentTypeJSON, []byte(compact))
	}

	return d.send(ctx, spec.URL, entities.ContentTypeForm, []byte(data))
}

func (d *Dispatcher) send(ctx context.Context, url, contentType string, body []byte) entities.Outcome {
	d.logger.DebugContext(ctx, "sending request",
		"method", entities.MethodPost, "url", url, "content_type", contentType, "body_bytes", len(body))

	headers := map[string]string{"Content-Type": contentType}
	resp, err := d.client.Post(ctx, url, headers, body)
	return d.classify(ctx, resp, err)
}

// classify maps a transport result to an Outcome. A non-2xx status wins over
// a body read error, since the body is discarded in that case anyway.
func (d *Dispatcher) classify(ctx context.Context, resp *ports.HTTPResponse, err error) entities.Outcome {
	if resp != nil && !entities.IsSuccessStatus(resp.StatusCode) {
		d.logger.DebugContext(ctx, "request failed", "status", resp.StatusCode)
		return entities.HTTPFailure{StatusCode: resp.StatusCode}
	}

	if err != nil {
		kind := entities.TransportOther
		switch {
		case resp != nil:
			kind = entities.TransportReadBody
		case isConnectFailure(err):
			kind = entities.TransportConnect
		}
		d.logger.DebugContext(ctx, "transport failure", "kind", kind, "error", errors.ToErrorDetail(err))
		return entities.TransportFailure{Kind: kind, Message: underlyingMessage(err)}
	}

	if resp == nil {
		return entities.TransportFailure{Kind: entities.TransportOther, Message: "no response received"}
	}

	if resp.BodyTruncated {
		d.logger.WarnContext(ctx, "response body truncated", "bytes", len(resp.Body))
	}
	d.logger.DebugContext(ctx, "request completed", "status", resp.StatusCode, "proto", resp.Proto, "body_bytes", len(resp.Body))
	return entities.Success{Body: string(resp.Body), StatusCode: resp.StatusCode}
}

// isConnectFailure reports whether err means the server was never reached:
// a name resolution failure or a failed dial.
func isConnectFailure(err error) bool {
	var netErr *errors.NetworkError
	if stdErrors.As(err, &netErr) {
		return netErr.Operation == errors.OpConnect
	}

	var dnsErr *net.DNSError
	if stdErrors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	return stdErrors.As(err, &opErr) && opErr.Op == "dial"
}

// underlyingMessage strips the adapter's NetworkError wrapper so the user
// sees the transport's own message.
func underlyingMessage(err error) string {
	var netErr *errors.NetworkError
	if stdErrors.As(err, &netErr) && netErr.Err != nil {
		return netErr.Err.Error()
	}
	return err.Error()
}
