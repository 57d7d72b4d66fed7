package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	Authorization string
	Header        http.Header
	Body          struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
}

type fakeAPI struct {
	mu     sync.Mutex
	calls  []recordedCall
	status int
	reply  string
}

func newFakeAPI(t *testing.T, status int, reply string) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{status: status, reply: reply}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var call recordedCall
		call.Authorization = r.Header.Get("Authorization")
		call.Header = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&call.Body)

		f.mu.Lock()
		f.calls = append(f.calls, call)
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.reply))
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) last() recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

const toursQuery = `query Tours($limit: Int) { tours(limit: $limit) { id title } }`

func TestClient_Request_DecodesData(t *testing.T) {
	api, srv := newFakeAPI(t, http.StatusOK, `{"data":{"tours":[{"id":"t1","title":"Kyoto Autumn"}]}}`)
	client := New(srv.URL)

	var out struct {
		Tours []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"tours"`
	}
	err := client.Request(context.Background(), toursQuery, map[string]any{"limit": 2}, nil, &out)

	require.NoError(t, err)
	require.Len(t, out.Tours, 1)
	assert.Equal(t, "Kyoto Autumn", out.Tours[0].Title)
	assert.Equal(t, float64(2), api.last().Body.Variables["limit"])
	assert.Contains(t, api.last().Body.Query, "tours(limit")
}

func TestClient_SetAuthToken_AddsBearer(t *testing.T) {
	api, srv := newFakeAPI(t, http.StatusOK, `{"data":{}}`)
	client := New(srv.URL)

	client.SetAuthToken("tok-123")
	require.NoError(t, client.Request(context.Background(), toursQuery, nil, nil, nil))

	assert.Equal(t, "Bearer tok-123", api.last().Authorization)
	assert.Equal(t, "tok-123", client.Token())
}

func TestClient_ClearAuthToken_RemovesHeader(t *testing.T) {
	api, srv := newFakeAPI(t, http.StatusOK, `{"data":{}}`)
	client := New(srv.URL)

	client.SetAuthToken("tok-123")
	client.ClearAuthToken()
	require.NoError(t, client.Request(context.Background(), toursQuery, nil, nil, nil))

	assert.Empty(t, api.last().Authorization)
	assert.NotContains(t, api.last().Header.Values("Authorization"), "Bearer ")
	assert.Empty(t, client.Token())
}

func TestClient_WithToken_DoesNotLeak(t *testing.T) {
	api, srv := newFakeAPI(t, http.StatusOK, `{"data":{}}`)
	shared := New(srv.URL)

	scoped := shared.WithToken("admin-tok")
	require.NoError(t, scoped.Request(context.Background(), toursQuery, nil, nil, nil))
	assert.Equal(t, "Bearer admin-tok", api.last().Authorization)

	require.NoError(t, shared.Request(context.Background(), toursQuery, nil, nil, nil))
	assert.Empty(t, api.last().Authorization)
}

func TestClient_PerCallHeaders(t *testing.T) {
	api, srv := newFakeAPI(t, http.StatusOK, `{"data":{}}`)
	client := New(srv.URL)

	h := http.Header{}
	h.Set("X-Request-ID", "req-9")
	require.NoError(t, client.Request(context.Background(), toursQuery, nil, h, nil))

	assert.Equal(t, "req-9", api.last().Header.Get("X-Request-ID"))
}

func TestClient_ContextToken_OverridesClientToken(t *testing.T) {
	api, srv := newFakeAPI(t, http.StatusOK, `{"data":{}}`)
	client := New(srv.URL)
	client.SetAuthToken("service-tok")

	ctx := ContextWithToken(context.Background(), "admin-tok")
	require.NoError(t, client.Request(ctx, toursQuery, nil, nil, nil))
	assert.Equal(t, "Bearer admin-tok", api.last().Authorization)
	assert.Len(t, api.last().Header.Values("Authorization"), 1)

	require.NoError(t, client.Request(context.Background(), toursQuery, nil, nil, nil))
	assert.Equal(t, "Bearer service-tok", api.last().Authorization)
}

func TestClient_HTTP401_IsUnauthorized(t *testing.T) {
	_, srv := newFakeAPI(t, http.StatusUnauthorized, `{"errors":[{"message":"jwt expired"}]}`)
	client := New(srv.URL)

	err := client.Request(context.Background(), toursQuery, nil, nil, nil)

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, http.StatusUnauthorized, gerr.StatusCode)
	assert.Equal(t, "Tours", gerr.Operation)
}

func TestClient_GraphQLUnauthenticatedExtension(t *testing.T) {
	_, srv := newFakeAPI(t, http.StatusOK,
		`{"data":null,"errors":[{"message":"Not allowed","extensions":{"code":"UNAUTHENTICATED"}}]}`)
	client := New(srv.URL)

	err := client.Request(context.Background(), toursQuery, nil, nil, nil)

	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestClient_MessageMentioningUnauthorizedIsNotLogout(t *testing.T) {
	_, srv := newFakeAPI(t, http.StatusOK,
		`{"data":null,"errors":[{"message":"Unauthorized tour operators cannot be listed"}]}`)
	client := New(srv.URL)

	err := client.Request(context.Background(), toursQuery, nil, nil, nil)

	require.Error(t, err)
	assert.Equal(t, KindGraphQL, KindOf(err))
	assert.False(t, IsUnauthorized(err))
}

func TestClient_ValidationExtension(t *testing.T) {
	_, srv := newFakeAPI(t, http.StatusOK,
		`{"data":null,"errors":[{"message":"limit must be positive","extensions":{"code":"BAD_USER_INPUT"}}]}`)
	client := New(srv.URL)

	err := client.Request(context.Background(), toursQuery, nil, nil, nil)

	assert.Equal(t, KindValidation, KindOf(err))
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "limit must be positive", gerr.Message)
}

func TestClient_ServerDown_IsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url).Request(context.Background(), toursQuery, nil, nil, nil)

	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestClient_BadGateway_IsNetwork(t *testing.T) {
	_, srv := newFakeAPI(t, http.StatusBadGateway, `upstream down`)

	err := New(srv.URL).Request(context.Background(), toursQuery, nil, nil, nil)

	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, "Tours", operationName(toursQuery))
	assert.Equal(t, "UpdateBookingStatus", operationName("\n  mutation UpdateBookingStatus($id: ID!) { x }"))
	assert.Equal(t, "anonymous", operationName("{ tours { id } }"))
}

type countingTransport struct {
	mu    sync.Mutex
	calls int
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	return http.DefaultTransport.RoundTrip(req)
}

func TestNew_CallerHTTPClientIsCopied(t *testing.T) {
	_, srv := newFakeAPI(t, http.StatusOK, `{"data":{}}`)
	transport := &countingTransport{}
	caller := &http.Client{Transport: transport}

	client := New(srv.URL, WithHTTPClient(caller))
	require.NoError(t, client.Request(context.Background(), toursQuery, nil, nil, nil))

	assert.Same(t, transport, caller.Transport)
	assert.Zero(t, caller.Timeout)
	assert.Equal(t, 1, transport.calls)
}

func TestNew_TimeoutAppliesInAnyOrder(t *testing.T) {
	caller := &http.Client{}

	before := New("http://localhost", WithTimeout(3*time.Second), WithHTTPClient(caller))
	after := New("http://localhost", WithHTTPClient(caller), WithTimeout(3*time.Second))

	assert.Equal(t, 3*time.Second, before.httpClient.Timeout)
	assert.Equal(t, 3*time.Second, after.httpClient.Timeout)
	assert.Zero(t, caller.Timeout)
	assert.Nil(t, caller.Transport)
}

func TestNew_DefaultClientUntouched(t *testing.T) {
	New("http://localhost", WithHTTPClient(http.DefaultClient), WithTimeout(time.Second))

	assert.Nil(t, http.DefaultClient.Transport)
	assert.Zero(t, http.DefaultClient.Timeout)
}
