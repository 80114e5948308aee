// Package errors provides the client's error taxonomy.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/gh0stintheshe11/Web-Client/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is an interface for error types that can convert themselves
// to a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to a structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// Network operations reported by transport adapters.
const (
	OpConnect  = "connect"
	OpRequest  = "request"
	OpReadBody = "read_body"
)

// NetworkError represents a transport operation failure.
type NetworkError struct {
	Err       error
	Operation string
	Target    string
}

func (e *NetworkError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("network %s failed for %s: %v", e.Operation, e.Target, e.Err)
	}
	return fmt.Sprintf("network %s failed: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *NetworkError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "network", Code: e.Operation}
}

// ValidationKind identifies which URL check failed.
type ValidationKind string

const (
	InvalidIPv6     ValidationKind = "ipv6"
	InvalidIPv4     ValidationKind = "ipv4"
	InvalidPort     ValidationKind = "port"
	InvalidProtocol ValidationKind = "protocol"
)

var validationMessages = map[ValidationKind]string{
	InvalidIPv6:     "The URL contains an invalid IPv6 address.",
	InvalidIPv4:     "The URL contains an invalid IPv4 address.",
	InvalidPort:     "The URL contains an invalid port number.",
	InvalidProtocol: "The URL does not have a valid base protocol.",
}

// ValidationError reports a URL rejected by the validator.
// The message depends only on Kind.
type ValidationError struct {
	Kind ValidationKind
	URL  string
}

func (e *ValidationError) Error() string {
	if msg, ok := validationMessages[e.Kind]; ok {
		return msg
	}
	return validationMessages[InvalidProtocol]
}

// ToErrorDetail implements DetailedError.
func (e *ValidationError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("validation", e.Error()).
		WithCode("invalid_" + string(e.Kind)).
		WithDetails(map[string]any{"url": e.URL})
}

// DispatchKind identifies a recoverable request failure.
type DispatchKind string

const (
	DispatchConnect           DispatchKind = "connect"
	DispatchTransport         DispatchKind = "transport"
	DispatchHTTPStatus        DispatchKind = "http_status"
	DispatchMissingData       DispatchKind = "missing_data"
	DispatchUnsupportedMethod DispatchKind = "unsupported_method"
	DispatchInlineJSON        DispatchKind = "inline_json"
)

// ConnectFailureMessage is shown when the server cannot be reached.
const ConnectFailureMessage = "Unable to connect to the server. Perhaps the network is offline or the server hostname cannot be resolved."

// DispatchError is a request failure that is reported as normal output.
type DispatchError struct {
	Kind DispatchKind

	// Detail is the underlying transport or parser message, where one exists.
	Detail string

	// StatusCode is set for DispatchHTTPStatus.
	StatusCode int
}

func (e *DispatchError) Error() string {
	switch e.Kind {
	case DispatchConnect:
		return ConnectFailureMessage
	case DispatchHTTPStatus:
		return fmt.Sprintf("Request failed with status code: %d", e.StatusCode)
	case DispatchMissingData:
		return "No data provided for POST request."
	case DispatchUnsupportedMethod:
		return "Unsupported HTTP method."
	case DispatchInlineJSON:
		return "Invalid JSON data: " + e.Detail
	default:
		return e.Detail
	}
}

// ToErrorDetail implements DetailedError.
func (e *DispatchError) ToErrorDetail() *entities.ErrorDetail {
	detail := entities.NewErrorDetail("dispatch", e.Error()).WithCode(string(e.Kind))
	if e.Kind == DispatchHTTPStatus {
		detail.Code = fmt.Sprintf("http_%d", e.StatusCode)
	}
	return detail
}

// FromOutcome converts a failed outcome into a DispatchError.
// It returns nil for a successful outcome.
func FromOutcome(o entities.Outcome) *DispatchError {
	switch v := o.(type) {
	case entities.TransportFailure:
		if v.Kind == entities.TransportConnect {
			return &DispatchError{Kind: DispatchConnect, Detail: v.Message}
		}
		return &DispatchError{Kind: DispatchTransport, Detail: v.Message}
	case entities.HTTPFailure:
		return &DispatchError{Kind: DispatchHTTPStatus, StatusCode: v.StatusCode}
	case entities.Rejected:
		switch v.Reason {
		case entities.RejectMissingData:
			return &DispatchError{Kind: DispatchMissingData}
		case entities.RejectInvalidInlineJSON:
			return &DispatchError{Kind: DispatchInlineJSON, Detail: v.Detail}
		default:
			return &DispatchError{Kind: DispatchUnsupportedMethod}
		}
	default:
		return nil
	}
}

// FatalInputError reports a malformed --json payload.
// It is never rendered as normal output; the process must abort.
type FatalInputError struct {
	Err     error
	Payload string
}

func (e *FatalInputError) Error() string {
	return fmt.Sprintf("Invalid JSON: %v", e.Err)
}

func (e *FatalInputError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *FatalInputError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("fatal", e.Error()).
		WithCode("invalid_json").
		WithDetails(map[string]any{"payload": e.Payload})
}

// ConfigError represents a settings validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}
