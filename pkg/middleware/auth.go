package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidToken covers malformed, unknown, expired and revoked tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenVerifier turns a bearer token into the caller it belongs to.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*entity.Actor, error)
}

// ==================== SESSION ====================

// SessionVerifier accepts opaque session tokens stored in the sessions table.
type SessionVerifier struct {
	sessions repository.SessionRepository
	users    repository.UserRepository
}

func NewSessionVerifier(sessions repository.SessionRepository, users repository.UserRepository) *SessionVerifier {
	return &SessionVerifier{sessions: sessions, users: users}
}

func (v *SessionVerifier) Verify(ctx context.Context, token string) (*entity.Actor, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	session, err := v.sessions.FindValidSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("verify session: %w", err)
	}
	if session == nil {
		return nil, ErrInvalidToken
	}

	user, err := v.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("verify session user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidToken
	}

	return &entity.Actor{SubjectID: user.ID.String(), Role: user.Role}, nil
}

// ==================== JWT ====================

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTVerifier accepts HS256 tokens carrying sub and role claims.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &JWTVerifier{secret: []byte(secret)}, nil
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (*entity.Actor, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	role, err := entity.ParseUserRole(claims.Role)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &entity.Actor{SubjectID: claims.Subject, Role: role}, nil
}

// ==================== HTTP ====================

// Authenticate rejects requests without a valid bearer token.
func Authenticate(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			ctx, ok := authenticate(w, r, verifier, logger)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth lets anonymous requests through but still rejects a token
// that is present and invalid, so a client never silently loses its identity.
func OptionalAuth(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx, ok := authenticate(w, r, verifier, logger)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(w http.ResponseWriter, r *http.Request, verifier TokenVerifier, logger *zap.Logger) (context.Context, bool) {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	if !found || token == "" {
		utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
		return nil, false
	}

	actor, err := verifier.Verify(r.Context(), token)
	if errors.Is(err, ErrInvalidToken) {
		logger.Warn("Invalid or expired token", zap.String("path", r.URL.Path))
		utils.ResponseUnauthorized(w, "Invalid or expired token")
		return nil, false
	}
	if err != nil {
		logger.Error("Failed to verify token", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return nil, false
	}

	ctx := utils.SetActorContext(r.Context(), actor)
	ctx = utils.SetTokenContext(ctx, token)
	return ctx, true
}
