package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(role string) Claims {
	return Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestJWTVerifier(t *testing.T) {
	v, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		claims := validClaims("operator")
		actor, err := v.Verify(ctx, signToken(t, testSecret, claims))
		require.NoError(t, err)
		assert.Equal(t, claims.Subject, actor.SubjectID)
		assert.Equal(t, entity.RoleOperator, actor.Role)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := v.Verify(ctx, signToken(t, "other", validClaims("ADMIN")))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		claims := validClaims("ADMIN")
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		_, err := v.Verify(ctx, signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := v.Verify(ctx, signToken(t, testSecret, validClaims("ROOT")))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := validClaims("ADMIN")
		claims.Subject = ""
		_, err := v.Verify(ctx, signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	_, err = NewJWTVerifier("")
	assert.Error(t, err)
}

type fakeSessions struct {
	session *entity.Session
	err     error
}

func (f *fakeSessions) FindValidSession(context.Context, uuid.UUID) (*entity.Session, error) {
	return f.session, f.err
}

func (f *fakeSessions) CleanExpiredSessions(context.Context) error { return nil }

type fakeUsers struct {
	user *entity.User
}

func (f *fakeUsers) FindByID(context.Context, uuid.UUID) (*entity.User, error) {
	return f.user, nil
}

func TestSessionVerifier(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	session := &entity.Session{UserID: userID, Token: uuid.New()}
	active := &entity.User{Base: entity.Base{ID: userID}, Role: entity.RoleStaff, IsActive: true}

	actor, err := NewSessionVerifier(&fakeSessions{session: session}, &fakeUsers{user: active}).Verify(ctx, session.Token.String())
	require.NoError(t, err)
	assert.Equal(t, userID.String(), actor.SubjectID)
	assert.Equal(t, entity.RoleStaff, actor.Role)

	_, err = NewSessionVerifier(&fakeSessions{}, &fakeUsers{user: active}).Verify(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewSessionVerifier(&fakeSessions{session: session}, &fakeUsers{user: active}).Verify(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	inactive := *active
	inactive.IsActive = false
	_, err = NewSessionVerifier(&fakeSessions{session: session}, &fakeUsers{user: &inactive}).Verify(ctx, session.Token.String())
	assert.ErrorIs(t, err, ErrInvalidToken)

	boom := errors.New("db down")
	_, err = NewSessionVerifier(&fakeSessions{err: boom}, &fakeUsers{}).Verify(ctx, session.Token.String())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

type stubVerifier struct {
	actor *entity.Actor
	err   error
}

func (s stubVerifier) Verify(context.Context, string) (*entity.Actor, error) { return s.actor, s.err }

// echoActor replies 200 with the actor's role, or "anonymous".
var echoActor = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	role := "anonymous"
	if actor := utils.GetActorFromContext(r.Context()); actor != nil {
		role = string(actor.Role)
	}
	w.Write([]byte(role))
})

func serve(h http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	log := zap.NewNop()
	ok := stubVerifier{actor: &entity.Actor{SubjectID: "u1", Role: entity.RoleAdmin}}

	h := Authenticate(ok, log)(echoActor)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Bearer ").Code)

	rec := serve(h, "Bearer abc")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ADMIN", rec.Body.String())

	invalid := Authenticate(stubVerifier{err: ErrInvalidToken}, log)(echoActor)
	assert.Equal(t, http.StatusUnauthorized, serve(invalid, "Bearer abc").Code)

	broken := Authenticate(stubVerifier{err: errors.New("db down")}, log)(echoActor)
	assert.Equal(t, http.StatusInternalServerError, serve(broken, "Bearer abc").Code)
}

func TestOptionalAuth(t *testing.T) {
	log := zap.NewNop()

	h := OptionalAuth(stubVerifier{actor: &entity.Actor{SubjectID: "u1", Role: entity.RoleUser}}, log)(echoActor)
	assert.Equal(t, "anonymous", serve(h, "").Body.String())
	assert.Equal(t, "USER", serve(h, "Bearer abc").Body.String())

	rejecting := OptionalAuth(stubVerifier{err: ErrInvalidToken}, log)(echoActor)
	assert.Equal(t, http.StatusUnauthorized, serve(rejecting, "Bearer stale").Code)
}
