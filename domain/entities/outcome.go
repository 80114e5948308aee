package entities

// Outcome is the result of dispatching one request.
// It is a closed set of variants: Success, TransportFailure, HTTPFailure
// and Rejected. Consumers switch on the concrete type.
type Outcome interface {
	// Succeeded reports whether the request completed with a 2xx status.
	Succeeded() bool

	outcome()
}

// TransportKind classifies a transport-level failure.
type TransportKind string

const (
	// TransportConnect means the server could not be reached (DNS or dial).
	TransportConnect TransportKind = "connect"

	// TransportOther covers every other transport error.
	TransportOther TransportKind = "other"

	// TransportReadBody means a 2xx response arrived but its body could not be read.
	TransportReadBody TransportKind = "read_body"
)

// RejectReason explains why no network call was made.
type RejectReason string

const (
	// RejectMissingData means POST was requested without any payload.
	RejectMissingData RejectReason = "missing_data"

	// RejectUnsupportedMethod means the method is neither GET nor POST.
	RejectUnsupportedMethod RejectReason = "unsupported_method"

	// RejectInvalidInlineJSON means a -d payload looked like JSON but did not parse.
	RejectInvalidInlineJSON RejectReason = "invalid_inline_json"
)

// Success carries the full body of a 2xx response.
type Success struct {
	Body       string
	StatusCode int
}

// TransportFailure means the request did not produce a usable response.
type TransportFailure struct {
	Kind    TransportKind
	Message string
}

// HTTPFailure means a response arrived with a non-2xx status. The body is discarded.
type HTTPFailure struct {
	StatusCode int
}

// Rejected means the request was refused before any network activity.
type Rejected struct {
	Reason RejectReason

	// Detail holds the parser message for RejectInvalidInlineJSON.
	Detail string
}

func (Success) Succeeded() bool          { return true }
func (TransportFailure) Succeeded() bool { return false }
func (HTTPFailure) Succeeded() bool      { return false }
func (Rejected) Succeeded() bool         { return false }

func (Success) outcome()          {}
func (TransportFailure) outcome() {}
func (HTTPFailure) outcome()      {}
func (Rejected) outcome()         {}

// IsSuccessStatus reports whether code is in the 2xx range.
func IsSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}
