package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gh0stintheshe11/Web-Client/domain/entities"
	domainErrors "github.com/gh0stintheshe11/Web-Client/domain/errors"
	"github.com/gh0stintheshe11/Web-Client/domain/ports"
	"github.com/gh0stintheshe11/Web-Client/internal/testutil"
)

const target = "https://jsonplaceholder.typicode.com/posts"

func TestDispatch_Get(t *testing.T) {
	client := &testutil.MockHTTPClient{Body: "<html>ok</html>"}
	d := New(client)

	outcome, err := d.Dispatch(context.Background(), entities.NewRequestSpec(target))
	require.NoError(t, err)

	assert.Equal(t, entities.Success{Body: "<html>ok</html>", StatusCode: 200}, outcome)

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "GET", calls[0].Method)
	assert.Equal(t, target, calls[0].URL)
	assert.Nil(t, calls[0].Body)
}

func TestDispatch_GetIgnoresFormData(t *testing.T) {
	client := &testutil.MockHTTPClient{}
	d := New(client)

	spec := entities.NewRequestSpec(target, entities.WithFormData("a=1"))
	_, err := d.Dispatch(context.Background(), spec)
	require.NoError(t, err)

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "GET", calls[0].Method)
	assert.Nil(t, calls[0].Body)
}

func TestDispatch_HTTPStatus(t *testing.T) {
	for _, code := range []int{301, 400, 404, 500, 503} {
		t.Run(fmt.Sprintf("%d", code), func(t *testing.T) {
			client := &testutil.MockHTTPClient{
				GetFunc: func(ctx context.Context, url string) (*ports.HTTPResponse, error) {
					return &ports.HTTPResponse{StatusCode: code, Body: []byte("discarded")}, nil
				},
			}

			outcome, err := New(client).Dispatch(context.Background(), entities.NewRequestSpec(target))
			require.NoError(t, err)
			assert.Equal(t, entities.HTTPFailure{StatusCode: code}, outcome)
			assert.Equal(t, fmt.Sprintf("Request failed with status code: %d", code),
				domainErrors.FromOutcome(outcome).Error())
		})
	}
}

func TestDispatch_JSONForcesPost(t *testing.T) {
	client := &testutil.MockHTTPClient{Body: `{"id":1}`}
	d := New(client)

	payload := `{"title":"x"}`
	spec := entities.NewRequestSpec(target, entities.WithMethod("GET"), entities.WithJSONData(payload))

	outcome, err := d.Dispatch(context.Background(), spec)
	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "POST", calls[0].Method)
	assert.Equal(t, "application/json", calls[0].Headers["Content-Type"])
	assert.Equal(t, payload, string(calls[0].Body), "json payload is sent verbatim")
}

func TestDispatch_JSONSentVerbatim(t *testing.T) {
	client := &testutil.MockHTTPClient{}
	payload := "{\"title\": \"World\", \"userId\": 5}"

	_, err := New(client).Dispatch(context.Background(),
		entities.NewRequestSpec(target, entities.WithJSONData(payload), entities.WithFormData("ignored=1")))
	require.NoError(t, err)

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, payload, string(calls[0].Body))
}

func TestDispatch_InvalidJSONIsFatal(t *testing.T) {
	tests := []struct {
		name   string
		method string
	}{
		{"default method", ""},
		{"explicit GET", "GET"},
		{"unsupported method", "BREW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &testutil.MockHTTPClient{}
			payload := `{"title": "World"; "userId": 5}`
			spec := entities.NewRequestSpec(target, entities.WithMethod(tt.method), entities.WithJSONData(payload))

			outcome, err := New(client).Dispatch(context.Background(), spec)
			require.Error(t, err)
			assert.Nil(t, outcome)

			var fatal *domainErrors.FatalInputError
			require.True(t, errors.As(err, &fatal))
			assert.Equal(t, payload, fatal.Payload)
			assert.Contains(t, err.Error(), "Invalid JSON:")
			assert.Empty(t, client.Calls(), "no network call may happen")
		})
	}
}

func TestDispatch_FormData(t *testing.T) {
	client := &testutil.MockHTTPClient{}
	spec := entities.NewRequestSpec(target, entities.WithMethod("POST"), entities.WithFormData("a=1&b=2"))

	outcome, err := New(client).Dispatch(context.Background(), spec)
	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "POST", calls[0].Method)
	assert.Equal(t, "application/x-www-form-urlencoded", calls[0].Headers["Content-Type"])
	assert.Equal(t, "a=1&b=2", string(calls[0].Body))
}

func TestDispatch_InlineJSON(t *testing.T) {
	client := &testutil.MockHTTPClient{}
	spec := entities.NewRequestSpec(target,
		entities.WithMethod("POST"),
		entities.WithFormData(`{"userId": 1, "title": "Hello"}`))

	outcome, err := New(client).Dispatch(context.Background(), spec)
	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "application/json", calls[0].Headers["Content-Type"])
	assert.Equal(t, `{"title":"Hello","userId":1}`, string(calls[0].Body))
}

func TestDispatch_InvalidInlineJSONIsRecoverable(t *testing.T) {
	client := &testutil.MockHTTPClient{}
	spec := entities.NewRequestSpec(target, entities.WithMethod("POST"), entities.WithFormData(`{"a": `))

	outcome, err := New(client).Dispatch(context.Background(), spec)
	require.NoError(t, err)

	rejected, ok := outcome.(entities.Rejected)
	require.True(t, ok)
	assert.Equal(t, entities.RejectInvalidInlineJSON, rejected.Reason)
	assert.Equal(t, "Invalid JSON data: unexpected end of JSON input", domainErrors.FromOutcome(outcome).Error())
	assert.Empty(t, client.Calls())
}

func TestDispatch_FormNotStartingWithBraceIsForm(t *testing.T) {
	client := &testutil.MockHTTPClient{}
	spec := entities.NewRequestSpec(target, entities.WithMethod("POST"), entities.WithFormData(` {"a":1}`))

	_, err := New(client).Dispatch(context.Background(), spec)
	require.NoError(t, err)

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "application/x-www-form-urlencoded", calls[0].Headers["Content-Type"])
	assert.Equal(t, ` {"a":1}`, string(calls[0].Body))
}

func TestDispatch_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		spec    entities.RequestSpec
		reason  entities.RejectReason
		message string
	}{
		{
			name:    "post without data",
			spec:    entities.NewRequestSpec(target, entities.WithMethod("POST")),
			reason:  entities.RejectMissingData,
			message: "No data provided for POST request.",
		},
		{
			name:    "unsupported method",
			spec:    entities.NewRequestSpec(target, entities.WithMethod("PUT"), entities.WithFormData("a=1")),
			reason:  entities.RejectUnsupportedMethod,
			message: "Unsupported HTTP method.",
		},
		{
			name:    "method names are case sensitive",
			spec:    entities.NewRequestSpec(target, entities.WithMethod("get")),
			reason:  entities.RejectUnsupportedMethod,
			message: "Unsupported HTTP method.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &testutil.MockHTTPClient{}

			outcome, err := New(client).Dispatch(context.Background(), tt.spec)
			require.NoError(t, err)
			assert.Equal(t, entities.Rejected{Reason: tt.reason}, outcome)
			assert.Equal(t, tt.message, domainErrors.FromOutcome(outcome).Error())
			assert.Empty(t, client.Calls())
		})
	}
}

func TestDispatch_TransportFailures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantKind    entities.TransportKind
		wantMessage string
	}{
		{
			name:        "adapter connect error",
			err:         &domainErrors.NetworkError{Operation: domainErrors.OpConnect, Err: errors.New("connection refused")},
			wantKind:    entities.TransportConnect,
			wantMessage: "connection refused",
		},
		{
			name:        "dns error",
			err:         fmt.Errorf("Get %q: %w", target, &net.DNSError{Err: "no such host", Name: "example.rs", IsNotFound: true}),
			wantKind:    entities.TransportConnect,
			wantMessage: `Get "https://jsonplaceholder.typicode.com/posts": lookup example.rs: no such host`,
		},
		{
			name:        "dial error",
			err:         &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
			wantKind:    entities.TransportConnect,
			wantMessage: "dial tcp: connection refused",
		},
		{
			name:        "adapter request error",
			err:         &domainErrors.NetworkError{Operation: domainErrors.OpRequest, Err: errors.New("stopped after 10 redirects")},
			wantKind:    entities.TransportOther,
			wantMessage: "stopped after 10 redirects",
		},
		{
			name:        "plain error",
			err:         errors.New("tls: handshake failure"),
			wantKind:    entities.TransportOther,
			wantMessage: "tls: handshake failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &testutil.MockHTTPClient{
				GetFunc: func(ctx context.Context, url string) (*ports.HTTPResponse, error) {
					return nil, tt.err
				},
			}

			outcome, err := New(client).Dispatch(context.Background(), entities.NewRequestSpec(target))
			require.NoError(t, err)
			assert.Equal(t, entities.TransportFailure{Kind: tt.wantKind, Message: tt.wantMessage}, outcome)
		})
	}
}

func TestDispatch_ConnectFailureMessage(t *testing.T) {
	client := &testutil.MockHTTPClient{
		PostFunc: func(ctx context.Context, url string, headers map[string]string, body []byte) (*ports.HTTPResponse, error) {
			return nil, &domainErrors.NetworkError{Operation: domainErrors.OpConnect, Err: errors.New("no such host")}
		},
	}

	spec := entities.NewRequestSpec("https://example.rs", entities.WithJSONData(`{}`))
	outcome, err := New(client).Dispatch(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, domainErrors.ConnectFailureMessage, domainErrors.FromOutcome(outcome).Error())
}

func TestDispatch_BodyReadFailure(t *testing.T) {
	readErr := &domainErrors.NetworkError{Operation: domainErrors.OpReadBody, Err: errors.New("unexpected EOF")}

	t.Run("2xx becomes transport failure", func(t *testing.T) {
		client := &testutil.MockHTTPClient{
			GetFunc: func(ctx context.Context, url string) (*ports.HTTPResponse, error) {
				return &ports.HTTPResponse{StatusCode: 200}, readErr
			},
		}

		outcome, err := New(client).Dispatch(context.Background(), entities.NewRequestSpec(target))
		require.NoError(t, err)
		assert.Equal(t, entities.TransportFailure{Kind: entities.TransportReadBody, Message: "unexpected EOF"}, outcome)
	})

	t.Run("non-2xx status wins", func(t *testing.T) {
		client := &testutil.MockHTTPClient{
			GetFunc: func(ctx context.Context, url string) (*ports.HTTPResponse, error) {
				return &ports.HTTPResponse{StatusCode: 502}, readErr
			},
		}

		outcome, err := New(client).Dispatch(context.Background(), entities.NewRequestSpec(target))
		require.NoError(t, err)
		assert.Equal(t, entities.HTTPFailure{StatusCode: 502}, outcome)
	})
}

func TestDispatch_NilResponse(t *testing.T) {
	client := &testutil.MockHTTPClient{
		GetFunc: func(ctx context.Context, url string) (*ports.HTTPResponse, error) {
			return nil, nil
		},
	}

	outcome, err := New(client).Dispatch(context.Background(), entities.NewRequestSpec(target))
	require.NoError(t, err)
	assert.False(t, outcome.Succeeded())
}

func TestDispatch_LogsTruncation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client := &testutil.MockHTTPClient{
		GetFunc: func(ctx context.Context, url string) (*ports.HTTPResponse, error) {
			return &ports.HTTPResponse{StatusCode: 200, Body: []byte("abc"), BodyTruncated: true}, nil
		},
	}

	outcome, err := New(client, WithLogger(logger)).Dispatch(context.Background(), entities.NewRequestSpec(target))
	require.NoError(t, err)
	assert.Equal(t, entities.Success{Body: "abc", StatusCode: 200}, outcome)
	assert.Contains(t, buf.String(), "response body truncated")
	assert.Contains(t, buf.String(), "request completed")
}

func TestNew_NilLoggerIgnored(t *testing.T) {
	d := New(&testutil.MockHTTPClient{}, WithLogger(nil))
	assert.NotNil(t, d.logger)
}
