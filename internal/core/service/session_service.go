package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
	"github.com/hakwonhub/dashboard-gateway/internal/core/ports"
)

// SessionService implements the session gate on top of a SessionStore.
type SessionService struct {
	store ports.SessionStore
	log   zerolog.Logger
}

func NewSessionService(store ports.SessionStore, log zerolog.Logger) *SessionService {
	return &SessionService{store: store, log: log}
}

// DecodeRoleClaim splits the access token into its three segments and
// base64url-decodes the payload segment into claims. No signature
// verification happens here and none should: the upstream API validates the
// token on every proxied call, the gateway only reads claims for routing and
// display.
func DecodeRoleClaim(accessToken string) (domain.Claims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(accessToken, jwt.MapClaims{})
	if err != nil {
		return domain.Claims{}, domain.ErrMalformedToken
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Claims{}, domain.ErrMalformedToken
	}
	role, _ := mc["role"].(string)
	fullName, _ := mc["full_name"].(string)
	return domain.Claims{Role: role, FullName: fullName}, nil
}

// Establish validates the role claim against the known enumeration and
// persists a fresh session under a new id. The display name is read from the
// token best-effort; a token without a decodable name still yields a session.
func (s *SessionService) Establish(ctx context.Context, pair domain.TokenPair, roleClaim string) (*domain.Session, error) {
	role, err := domain.ParseRole(roleClaim)
	if err != nil {
		return nil, err
	}
	if pair.Access == "" {
		return nil, domain.ErrMalformedToken
	}

	claims, _ := DecodeRoleClaim(pair.Access)

	sess := &domain.Session{
		ID:           uuid.NewString(),
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
		Role:         role,
		FullName:     claims.FullName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.log.Info().Str("role", string(role)).Msg("session established")
	return sess, nil
}

// Current returns the stored session for the id, or nil when there is none.
// Store failures and invariant-violating records both read as "not logged
// in" rather than an error.
func (s *SessionService) Current(ctx context.Context, sessionID string) *domain.Session {
	if sessionID == "" {
		return nil
	}
	sess, err := s.store.Load(ctx, sessionID)
	if err != nil {
		s.log.Warn().Err(err).Msg("session load failed")
		return nil
	}
	if !sess.Valid() {
		return nil
	}
	return sess
}

// Authorize permits rendering iff the stored role equals the required one.
// A missing session and a wrong-role session produce the same answer, so an
// unauthenticated caller cannot probe which roles exist. A mismatch never
// tears the session down: wandering to the wrong dashboard URL must not sign
// the user out.
func (s *SessionService) Authorize(ctx context.Context, sessionID string, required domain.Role) ports.Decision {
	sess := s.Current(ctx, sessionID)
	if sess == nil || sess.Role != required {
		return ports.DecisionRedirectToLogin
	}
	return ports.DecisionAllow
}

// Teardown erases the session unconditionally. Deleting an absent session is
// not an error, so calling it twice is the same as once.
func (s *SessionService) Teardown(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.store.Delete(ctx, sessionID)
}
