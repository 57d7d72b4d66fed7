package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"traveladdicts/internal/graphql"
	"traveladdicts/internal/graphql/queries"
	"traveladdicts/internal/pkg/jwt"
)

// sessionTTL bounds how long a session confirmed by the travel API is trusted
// without asking again.
const sessionTTL = time.Minute

// Service signs admins in against the travel API. Credentials are never stored here.
type Service struct {
	gql      graphql.Runner
	jwt      *jwt.Service
	sessions *gocache.Cache
}

func NewService(gql graphql.Runner, jwtService *jwt.Service) *Service {
	return &Service{
		gql:      gql,
		jwt:      jwtService,
		sessions: gocache.New(sessionTTL, 2*sessionTTL),
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (Session, error) {
	var resp struct {
		AdminLogin *struct {
			Token string    `json:"token"`
			User  AdminUser `json:"user"`
		} `json:"adminLogin"`
	}
	vars := map[string]any{"email": strings.TrimSpace(strings.ToLower(req.Email)), "password": req.Password}
	if err := s.gql.Request(ctx, queries.AdminLogin, vars, nil, &resp); err != nil {
		var gqlErr *graphql.Error
		if errors.As(err, &gqlErr) && (gqlErr.Kind == graphql.KindUnauthorized || gqlErr.Kind == graphql.KindValidation) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if resp.AdminLogin == nil || resp.AdminLogin.Token == "" {
		return Session{}, ErrInvalidCredentials
	}

	sess := Session{Token: resp.AdminLogin.Token, User: resp.AdminLogin.User}
	if claims, err := s.jwt.ValidateToken(sess.Token); err == nil {
		if claims.ExpiresAt != nil {
			exp := claims.ExpiresAt.Unix()
			sess.ExpiresAt = &exp
		}
	} else {
		// The API is the authority; a token we can't read is still handed back.
		slog.Warn("admin token not readable locally", "error", err)
	}

	slog.Info("admin signed in", "admin_id", sess.User.ID, "role", sess.User.Role)
	return sess, nil
}

// Me resolves the admin behind the bearer token carried by ctx.
func (s *Service) Me(ctx context.Context) (AdminUser, error) {
	if graphql.TokenFromContext(ctx) == "" {
		return AdminUser{}, ErrNoToken
	}
	var resp struct {
		Me *AdminUser `json:"me"`
	}
	if err := s.gql.Request(ctx, queries.AdminMe, nil, nil, &resp); err != nil {
		return AdminUser{}, err
	}
	if resp.Me == nil {
		return AdminUser{}, ErrNoToken
	}
	return *resp.Me, nil
}

// CheckSession confirms token with the travel API and returns the admin's role.
// It backs AdminAuth when tokens cannot be verified locally. Confirmed tokens are
// remembered for sessionTTL, keyed by their hash.
func (s *Service) CheckSession(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrNoToken
	}
	sum := sha256.Sum256([]byte(token))
	key := hex.EncodeToString(sum[:])
	if role, ok := s.sessions.Get(key); ok {
		return role.(string), nil
	}

	user, err := s.Me(graphql.ContextWithToken(ctx, token))
	if err != nil {
		return "", err
	}
	s.sessions.Set(key, user.Role, gocache.DefaultExpiration)
	return user.Role, nil
}
