package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"traveladdicts/internal/graphql"
	"traveladdicts/internal/graphql/queries"
	"traveladdicts/internal/pkg/jwt"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Request(ctx context.Context, query string, variables map[string]any, headers http.Header, out any) error {
	args := m.Called(ctx, query, variables, headers, out)
	return args.Error(0)
}

func respondWith(payload string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		if err := json.Unmarshal([]byte(payload), args.Get(4)); err != nil {
			panic(err)
		}
	}
}

func loginPayload(token string) string {
	b, _ := json.Marshal(map[string]any{
		"adminLogin": map[string]any{
			"token": token,
			"user":  map[string]any{"id": "admin-1", "email": "ops@traveladdicts.test", "name": "Ops", "role": "ADMIN"},
		},
	})
	return string(b)
}

func TestService_Login(t *testing.T) {
	jwtSvc := jwt.New("secret", time.Hour)
	token, err := jwtSvc.GenerateToken("admin-1", "ADMIN")
	require.NoError(t, err)

	runner := new(MockRunner)
	runner.On("Request", mock.Anything, queries.AdminLogin, map[string]any{"email": "ops@traveladdicts.test", "password": "hunter22"}, mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(loginPayload(token)))
	svc := NewService(runner, jwtSvc)

	sess, err := svc.Login(context.Background(), LoginRequest{Email: " OPS@traveladdicts.test", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, token, sess.Token)
	assert.Equal(t, "admin-1", sess.User.ID)
	require.NotNil(t, sess.ExpiresAt)
	assert.Greater(t, *sess.ExpiresAt, time.Now().Unix())
}

func TestService_Login_OpaqueTokenStillReturned(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Request", mock.Anything, queries.AdminLogin, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(loginPayload("opaque-session-token")))
	svc := NewService(runner, jwt.New("", time.Hour))

	sess, err := svc.Login(context.Background(), LoginRequest{Email: "ops@traveladdicts.test", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "opaque-session-token", sess.Token)
	assert.Nil(t, sess.ExpiresAt)
}

func TestService_Login_Rejected(t *testing.T) {
	cases := map[string]struct {
		err     error
		payload string
		want    error
	}{
		"unauthorized": {err: &graphql.Error{Kind: graphql.KindUnauthorized, Message: "bad password"}, want: ErrInvalidCredentials},
		"null result":  {payload: `{"adminLogin":null}`, want: ErrInvalidCredentials},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			runner := new(MockRunner)
			call := runner.On("Request", mock.Anything, queries.AdminLogin, mock.Anything, mock.Anything, mock.Anything).Return(tc.err)
			if tc.payload != "" {
				call.Run(respondWith(tc.payload))
			}
			svc := NewService(runner, jwt.New("", time.Hour))

			_, err := svc.Login(context.Background(), LoginRequest{Email: "ops@traveladdicts.test", Password: "wrong!"})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestService_Login_NetworkErrorPassesThrough(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Request", mock.Anything, queries.AdminLogin, mock.Anything, mock.Anything, mock.Anything).
		Return(&graphql.Error{Kind: graphql.KindNetwork, Message: "connection refused"})
	svc := NewService(runner, jwt.New("", time.Hour))

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ops@traveladdicts.test", Password: "hunter22"})
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	var gqlErr *graphql.Error
	assert.ErrorAs(t, err, &gqlErr)
}

func TestService_Me(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Request", mock.Anything, queries.AdminMe, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(`{"me":{"id":"admin-1","email":"ops@traveladdicts.test","role":"ADMIN"}}`))
	svc := NewService(runner, jwt.New("", time.Hour))

	_, err := svc.Me(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)

	me, err := svc.Me(graphql.ContextWithToken(context.Background(), "tok"))
	require.NoError(t, err)
	assert.Equal(t, "admin-1", me.ID)
}

func TestService_CheckSession_ConfirmsOnceThenCaches(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Request", mock.MatchedBy(func(ctx context.Context) bool {
		return graphql.TokenFromContext(ctx) == "tok-1"
	}), queries.AdminMe, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(`{"me":{"id":"admin-1","email":"ops@traveladdicts.test","role":"ADMIN"}}`))
	svc := NewService(runner, jwt.New("", time.Hour))

	role, err := svc.CheckSession(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", role)

	role, err = svc.CheckSession(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", role)
	runner.AssertNumberOfCalls(t, "Request", 1)
}

func TestService_CheckSession_RejectedUpstream(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Request", mock.Anything, queries.AdminMe, mock.Anything, mock.Anything, mock.Anything).
		Return(&graphql.Error{Kind: graphql.KindUnauthorized, Message: "invalid signature"})
	svc := NewService(runner, jwt.New("", time.Hour))

	_, err := svc.CheckSession(context.Background(), "forged")
	assert.True(t, graphql.IsUnauthorized(err))

	// rejections are not remembered
	_, err = svc.CheckSession(context.Background(), "forged")
	assert.Error(t, err)
	runner.AssertNumberOfCalls(t, "Request", 2)
}

func TestService_CheckSession_EmptyToken(t *testing.T) {
	runner := new(MockRunner)
	svc := NewService(runner, jwt.New("", time.Hour))

	_, err := svc.CheckSession(context.Background(), " ")
	assert.ErrorIs(t, err, ErrNoToken)
	runner.AssertNumberOfCalls(t, "Request", 0)
}

func TestHandler_Login(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Request", mock.Anything, queries.AdminLogin, mock.Anything, mock.Anything, mock.Anything).
		Return(&graphql.Error{Kind: graphql.KindUnauthorized, Message: "bad password"})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(runner, jwt.New("", time.Hour))).RegisterPublicRoutes(r.Group("/api/v1"))

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"email":"not-an-email","password":"hunter22"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	runner.AssertNumberOfCalls(t, "Request", 0)

	w = post(`{"email":"ops@traveladdicts.test","password":"wrong-one"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
}
