package bridge

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft"
	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
	"github.com/custodia-labs/outlook-services/internal/core/ports/driven"
)

type recorded struct {
	method   string
	path     string
	rawQuery string
	header   http.Header
	body     string
}

func newTestBridge(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*HTTPBridge, *httptest.Server, *[]recorded) {
	t.Helper()
	var requests []recorded
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recorded{
			method:   r.Method,
			path:     r.URL.Path,
			rawQuery: r.URL.RawQuery,
			header:   r.Header.Clone(),
			body:     string(body),
		})
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	b := New(Options{
		Client:      server.Client(),
		RateLimiter: microsoft.NewRateLimiter(microsoft.RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 100}),
	})
	return b, server, &requests
}

func respondJSON(status int, body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestExecute_Read(t *testing.T) {
	b, server, requests := newTestBridge(t, respondJSON(http.StatusOK, `{"Id":"me"}`))

	body, err := b.Execute(context.Background(), driven.Call{
		Token:       "tok",
		ServiceRoot: server.URL + "/api/v1.0/",
		Path:        "/Me",
		Operation:   "getUser",
		Payload:     []string{"me"},
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"Id":"me"}`, string(body))
	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodGet, req.method)
	assert.Equal(t, "/api/v1.0/Me", req.path)
	assert.Equal(t, "Bearer tok", req.header.Get("Authorization"))
	assert.Equal(t, epochDate, req.header.Get("If-Modified-Since"))
	assert.NotEmpty(t, req.header.Get("client-request-id"))
	assert.Equal(t, DefaultUserAgent, req.header.Get("User-Agent"))
}

func TestExecute_ListQuery(t *testing.T) {
	tests := []struct {
		name  string
		query func(b *outlook.QueryBuilder)
		want  string
	}{
		{
			name:  "no options",
			query: func(*outlook.QueryBuilder) {},
			want:  "",
		},
		{
			name: "filter and top",
			query: func(q *outlook.QueryBuilder) {
				q.Filter("Subject eq 'A B'").Top(5)
			},
			want: "$top=5&$filter=Subject%20eq%20%27A%20B%27",
		},
		{
			name: "explicit zero values are sent",
			query: func(q *outlook.QueryBuilder) {
				q.Top(0).Skip(0)
			},
			want: "$top=0&$skip=0",
		},
		{
			name: "filter text is sent as given",
			query: func(q *outlook.QueryBuilder) {
				q.Top(0).Filter("null")
			},
			want: "$top=0&$filter=null",
		},
		{
			name: "empty select is sent",
			query: func(q *outlook.QueryBuilder) {
				q.Select("")
			},
			want: "$select=",
		},
		{
			name: "every option",
			query: func(q *outlook.QueryBuilder) {
				q.Top(10).Skip(20).Select("Subject,From").Expand("Attachments").Filter("IsRead eq false")
			},
			want: "$top=10&$skip=20&$select=Subject%2CFrom&$expand=Attachments&$filter=IsRead%20eq%20false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, server, requests := newTestBridge(t, respondJSON(http.StatusOK, `{"value":[]}`))
			q := outlook.NewQueryBuilder()
			tt.query(q)

			_, err := b.Execute(context.Background(), driven.Call{
				Token:       "tok",
				ServiceRoot: server.URL,
				Path:        "/Me/Messages",
				Operation:   "getMessages",
				Payload:     []string{q.Serialize().BridgePayload()},
			})

			require.NoError(t, err)
			require.Len(t, *requests, 1)
			assert.Equal(t, tt.want, (*requests)[0].rawQuery)
		})
	}
}

func TestExecute_WriteMethods(t *testing.T) {
	tests := []struct {
		name       string
		op         string
		payload    []string
		status     int
		wantMethod string
		wantPath   string
		wantBody   string
		wantResult bool
	}{
		{"create", "addFolder", []string{`{"DisplayName":"x"}`}, http.StatusCreated, http.MethodPost, "/Me/Folders", `{"DisplayName":"x"}`, true},
		{"update", "updateFolder", []string{`{"DisplayName":"y"}`}, http.StatusOK, http.MethodPatch, "/Me/Folders", `{"DisplayName":"y"}`, true},
		{"delete", "deleteFolder", nil, http.StatusNoContent, http.MethodDelete, "/Me/Folders", "", false},
		{"move", "moveFolder", []string{"Inbox"}, http.StatusCreated, http.MethodPost, "/Me/Folders/move", `{"DestinationId":"Inbox"}`, true},
		{"send", "send", nil, http.StatusAccepted, http.MethodPost, "/Me/Folders/send", "", false},
		{"accept", "accept", []string{"ok"}, http.StatusAccepted, http.MethodPost, "/Me/Folders/accept", `{"Comment":"ok"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, server, requests := newTestBridge(t, respondJSON(tt.status, `{"Id":"f1"}`))

			result, err := b.Execute(context.Background(), driven.Call{
				Token:       "tok",
				ServiceRoot: server.URL,
				Path:        "/Me/Folders",
				Operation:   tt.op,
				Payload:     tt.payload,
			})

			require.NoError(t, err)
			require.Len(t, *requests, 1)
			req := (*requests)[0]
			assert.Equal(t, tt.wantMethod, req.method)
			assert.Equal(t, tt.wantPath, req.path)
			assert.Empty(t, req.header.Get("If-Modified-Since"))
			if tt.wantBody == "" {
				assert.Empty(t, req.body)
			} else {
				assert.JSONEq(t, tt.wantBody, req.body)
				assert.Equal(t, "application/json", req.header.Get("Content-Type"))
			}
			if tt.wantResult {
				assert.JSONEq(t, `{"Id":"f1"}`, string(result))
			} else {
				assert.Nil(t, result)
			}
		})
	}
}

func TestExecute_ServiceError(t *testing.T) {
	b, server, _ := newTestBridge(t, respondJSON(http.StatusNotFound,
		`{"error":{"code":"ErrorItemNotFound","message":"The specified object was not found in the store."}}`))

	_, err := b.Execute(context.Background(), driven.Call{
		Token:       "tok",
		ServiceRoot: server.URL,
		Path:        "/Me/Messages/missing",
		Operation:   "getMessage",
	})

	var svcErr *microsoft.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "ErrorItemNotFound", svcErr.Code)
	assert.Equal(t, server.URL+"/Me/Messages/missing", svcErr.URL)
	assert.Contains(t, svcErr.Details, "Content-Type: application/json")
	assert.ErrorIs(t, err, microsoft.ErrNotFound)
}

func TestExecute_PlainTextError(t *testing.T) {
	b, server, _ := newTestBridge(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	})

	_, err := b.Execute(context.Background(), driven.Call{
		Token: "tok", ServiceRoot: server.URL, Path: "/Me", Operation: "getUser",
	})

	var svcErr *microsoft.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "upstream unavailable", svcErr.Message)
	assert.ErrorIs(t, err, microsoft.ErrServerError)
}

func TestExecute_RateLimited(t *testing.T) {
	b, server, _ := newTestBridge(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := b.Execute(context.Background(), driven.Call{
		Token: "tok", ServiceRoot: server.URL, Path: "/Me", Operation: "getUser",
	})

	assert.ErrorIs(t, err, microsoft.ErrRateLimited)
}

func TestExecute_UnknownOperation(t *testing.T) {
	b, server, requests := newTestBridge(t, respondJSON(http.StatusOK, `{}`))

	_, err := b.Execute(context.Background(), driven.Call{
		Token: "tok", ServiceRoot: server.URL, Path: "/Me", Operation: "launch",
	})

	assert.Error(t, err)
	assert.Empty(t, *requests)
}

func TestExecute_ForwardBody(t *testing.T) {
	b, server, requests := newTestBridge(t, respondJSON(http.StatusAccepted, ``))
	to, err := json.Marshal([]outlook.Recipient{outlook.NewRecipient("", "a@example.com")})
	require.NoError(t, err)

	_, err = b.Execute(context.Background(), driven.Call{
		Token:       "tok",
		ServiceRoot: server.URL,
		Path:        "/Me/Messages/m1",
		Operation:   "forward",
		Payload:     []string{"FYI", string(to)},
	})

	require.NoError(t, err)
	require.Len(t, *requests, 1)
	assert.Equal(t, "/Me/Messages/m1/forward", (*requests)[0].path)
	assert.JSONEq(t, `{"Comment":"FYI","ToRecipients":[{"EmailAddress":{"Address":"a@example.com"}}]}`, (*requests)[0].body)
}

func TestExecute_CancelledContext(t *testing.T) {
	b, server, requests := newTestBridge(t, respondJSON(http.StatusOK, `{}`))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Execute(ctx, driven.Call{
		Token: "tok", ServiceRoot: server.URL, Path: "/Me", Operation: "getUser",
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, *requests)
}
