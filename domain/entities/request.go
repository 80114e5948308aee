package entities

import "net/url"

// Supported HTTP methods. Method names are matched case-sensitively.
const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

// Request content types.
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// RequestSpec describes the single request of one invocation.
// It is built once from user input and never mutated afterwards.
type RequestSpec struct {
	form *string
	json *string

	// URL is the raw target URL as typed by the user.
	URL string `json:"url"`

	// Method is the raw method requested with -X. Default is GET.
	Method string `json:"method"`
}

// RequestOption is a functional option for building a RequestSpec.
type RequestOption func(*RequestSpec)

// WithMethod sets the requested method. An empty method is ignored.
func WithMethod(method string) RequestOption {
	return func(r *RequestSpec) {
		if method != "" {
			r.Method = method
		}
	}
}

// WithFormData attaches a -d payload.
func WithFormData(data string) RequestOption {
	return func(r *RequestSpec) {
		r.form = &data
	}
}

// WithJSONData attaches a --json payload. Its presence forces POST.
func WithJSONData(data string) RequestOption {
	return func(r *RequestSpec) {
		r.json = &data
	}
}

// NewRequestSpec creates a RequestSpec for rawURL with the given options.
func NewRequestSpec(rawURL string, opts ...RequestOption) RequestSpec {
	spec := RequestSpec{
		URL:    rawURL,
		Method: MethodGet,
	}
	for _, opt := range opts {
		opt(&spec)
	}
	return spec
}

// ResolvedMethod returns POST whenever a JSON payload is present,
// regardless of the requested method. Otherwise it returns Method unchanged.
func (r RequestSpec) ResolvedMethod() string {
	if r.json != nil {
		return MethodPost
	}
	return r.Method
}

// FormData returns the -d payload and whether one was supplied.
func (r RequestSpec) FormData() (string, bool) {
	if r.form == nil {
		return "", false
	}
	return *r.form, true
}

// JSONData returns the --json payload and whether one was supplied.
func (r RequestSpec) JSONData() (string, bool) {
	if r.json == nil {
		return "", false
	}
	return *r.json, true
}

// ValidatedURL is a URL that passed the pre-checks and the scheme check.
// Values are only produced by the URL validator.
type ValidatedURL struct {
	parsed *url.URL
	raw    string
}

// NewValidatedURL wraps an already checked URL.
// Callers outside the validator should not construct ValidatedURL values.
func NewValidatedURL(raw string, parsed *url.URL) *ValidatedURL {
	return &ValidatedURL{raw: raw, parsed: parsed}
}

// String returns the URL exactly as the user supplied it.
func (u *ValidatedURL) String() string {
	return u.raw
}

// Scheme returns "http" or "https".
func (u *ValidatedURL) Scheme() string {
	return u.parsed.Scheme
}

// Hostname returns the host without port or IPv6 brackets.
func (u *ValidatedURL) Hostname() string {
	return u.parsed.Hostname()
}

// Port returns the explicit port, or "" if none was given.
func (u *ValidatedURL) Port() string {
	return u.parsed.Port()
}

// Path returns the decoded path component.
func (u *ValidatedURL) Path() string {
	return u.parsed.Path
}
