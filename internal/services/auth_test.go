package services

import (
	"context"
	"testing"
	"time"

	"github.com/venturecanvas/assessment-backend/internal/apierr"
	"github.com/venturecanvas/assessment-backend/internal/requestdata"
	"github.com/venturecanvas/assessment-backend/internal/types"
)

func newAuthService(t *testing.T, env *testEnv) AuthService {
	t.Helper()
	return NewAuthService(env.db, env.log, env.userRepo, env.userTokenRepo, "test-secret", 15*time.Minute, 24*time.Hour)
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	ctx := context.Background()

	user := &types.User{
		Email:     "  Login@Example.com ",
		Password:  "hunter22",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	if err := auth.RegisterUser(ctx, user); err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Password == "hunter22" {
		t.Fatalf("password stored in clear")
	}

	// Email is normalized on the way in, so the raw form still logs in.
	access, refresh, err := auth.LoginUser(ctx, "login@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("empty token pair")
	}

	authedCtx, err := auth.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("set context from token: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("request data not populated from token")
	}
	if rd.Role != types.UserRoleUser {
		t.Fatalf("role = %q, want %q", rd.Role, types.UserRoleUser)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	ctx := context.Background()

	first := &types.User{Email: "dup@example.com", Password: "pw123456", FirstName: "A", LastName: "B"}
	if err := auth.RegisterUser(ctx, first); err != nil {
		t.Fatalf("register: %v", err)
	}
	second := &types.User{Email: "dup@example.com", Password: "pw123456", FirstName: "C", LastName: "D"}
	err := auth.RegisterUser(ctx, second)
	if apierr.CodeOf(err) != apierr.CodeValidation {
		t.Fatalf("expected validation error for duplicate email, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	ctx := context.Background()

	user := &types.User{Email: "wrongpw@example.com", Password: "pw123456", FirstName: "A", LastName: "B"}
	if err := auth.RegisterUser(ctx, user); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := auth.LoginUser(ctx, "wrongpw@example.com", "nope"); err == nil {
		t.Fatalf("expected login failure for wrong password")
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	ctx := context.Background()

	user := &types.User{Email: "refresh@example.com", Password: "pw123456", FirstName: "A", LastName: "B"}
	if err := auth.RegisterUser(ctx, user); err != nil {
		t.Fatalf("register: %v", err)
	}
	access, refresh, err := auth.LoginUser(ctx, "refresh@example.com", "pw123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rdCtx := requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString:  access,
		RefreshToken: refresh,
		UserID:       user.ID,
	})
	newAccess, newRefresh, err := auth.RefreshUser(rdCtx)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if newRefresh == refresh {
		t.Fatalf("refresh token was not rotated")
	}
	if newAccess == "" {
		t.Fatalf("empty access token after refresh")
	}
	// Login and refresh land in the same second here, so this also
	// guards against the jti-less case where both JWTs came out identical
	// and the rotation insert hit the access_token unique index.
	if newAccess == access {
		t.Fatalf("access token was not rotated")
	}
	if _, err := auth.SetContextFromToken(ctx, newAccess); err != nil {
		t.Fatalf("rotated access token rejected: %v", err)
	}

	// The old refresh token is dead after rotation.
	if _, _, err := auth.RefreshUser(rdCtx); err == nil {
		t.Fatalf("expected stale refresh token to be rejected")
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	ctx := context.Background()

	user := &types.User{Email: "logout@example.com", Password: "pw123456", FirstName: "A", LastName: "B"}
	if err := auth.RegisterUser(ctx, user); err != nil {
		t.Fatalf("register: %v", err)
	}
	access, refresh, err := auth.LoginUser(ctx, "logout@example.com", "pw123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rdCtx := requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString:  access,
		RefreshToken: refresh,
		UserID:       user.ID,
	})
	if err := auth.LogoutUser(rdCtx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, _, err := auth.RefreshUser(rdCtx); err == nil {
		t.Fatalf("expected refresh to fail after logout")
	}
}
