package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"designvault/api/internal/apperr"
	"designvault/api/internal/config"
	"designvault/api/internal/mocks"
	"designvault/api/internal/models"
	"designvault/api/internal/security"
	"designvault/api/internal/service"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Environment: "development",
		Security: config.SecurityConfig{
			JWTSecret:  "test-secret",
			SessionTTL: 24 * time.Hour,
		},
	}
}

func newAuthService(users *mocks.MockUserRepository) *service.AuthService {
	return service.NewAuthService(users, testConfig(), zerolog.Nop())
}

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	users := mocks.NewMockUserRepository()
	auth := newAuthService(users)

	result, err := auth.Register(context.Background(), service.RegisterInput{
		Username: "ada",
		Email:    "Ada@Example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if result.Token == "" {
		t.Error("no session token issued")
	}
	if result.User.Role != models.UserRoleDesigner {
		t.Errorf("default role = %q, want designer", result.User.Role)
	}
	if result.User.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", result.User.Email)
	}

	stored := users.Users[result.User.ID]
	if string(stored.PasswordHash) == "s3cret-pass" {
		t.Error("password stored as plaintext")
	}
	ok, err := security.VerifyPassword("s3cret-pass", stored.PasswordHash)
	if err != nil || !ok {
		t.Errorf("stored hash does not verify: ok=%v err=%v", ok, err)
	}

	claims, err := security.ParseSessionToken(result.Token, "test-secret")
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != result.User.ID || claims.Username != "ada" || claims.Role != "designer" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	auth := newAuthService(mocks.NewMockUserRepository())

	for _, input := range []service.RegisterInput{
		{Email: "a@b.c", Password: "pw"},
		{Username: "ada", Password: "pw"},
		{Username: "ada", Email: "a@b.c"},
	} {
		_, err := auth.Register(context.Background(), input)
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("Register(%+v) kind = %v, want validation", input, apperr.KindOf(err))
		}
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	auth := newAuthService(mocks.NewMockUserRepository())

	_, err := auth.Register(context.Background(), service.RegisterInput{
		Username: "ada", Email: "a@b.c", Password: "pw", Role: "superuser",
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestRegisterDuplicateEmailOrUsernameConflicts(t *testing.T) {
	users := mocks.NewMockUserRepository()
	auth := newAuthService(users)

	first, err := auth.Register(context.Background(), service.RegisterInput{
		Username: "ada", Email: "ada@example.com", Password: "pw1",
	})
	if err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err = auth.Register(context.Background(), service.RegisterInput{
		Username: "other", Email: "ada@example.com", Password: "pw2",
	})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("duplicate email kind = %v, want conflict", apperr.KindOf(err))
	}

	_, err = auth.Register(context.Background(), service.RegisterInput{
		Username: "ada", Email: "new@example.com", Password: "pw2",
	})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("duplicate username kind = %v, want conflict", apperr.KindOf(err))
	}

	// the first registration is unaffected
	if _, ok := users.Users[first.User.ID]; !ok {
		t.Error("first user disappeared")
	}
	if len(users.Users) != 1 {
		t.Errorf("user count = %d, want 1", len(users.Users))
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	users := mocks.NewMockUserRepository()
	auth := newAuthService(users)

	if _, err := auth.Register(context.Background(), service.RegisterInput{
		Username: "ada", Email: "ada@example.com", Password: "right-password",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, unknownErr := auth.Login(context.Background(), service.LoginInput{
		Email: "nobody@example.com", Password: "whatever",
	})
	_, wrongErr := auth.Login(context.Background(), service.LoginInput{
		Email: "ada@example.com", Password: "wrong-password",
	})

	if apperr.KindOf(unknownErr) != apperr.KindAuth || apperr.KindOf(wrongErr) != apperr.KindAuth {
		t.Fatalf("kinds = %v / %v, want auth", apperr.KindOf(unknownErr), apperr.KindOf(wrongErr))
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("error texts differ: %q vs %q", unknownErr.Error(), wrongErr.Error())
	}
}

func TestLoginSucceedsWithCorrectCredentials(t *testing.T) {
	auth := newAuthService(mocks.NewMockUserRepository())

	registered, err := auth.Register(context.Background(), service.RegisterInput{
		Username: "ada", Email: "ada@example.com", Password: "right-password", Role: "admin",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	result, err := auth.Login(context.Background(), service.LoginInput{
		Email: "ada@example.com", Password: "right-password",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.User.ID != registered.User.ID {
		t.Errorf("logged-in user %q, want %q", result.User.ID, registered.User.ID)
	}
	if result.Token == "" {
		t.Error("no token issued")
	}
}

func TestCurrentUser(t *testing.T) {
	users := mocks.NewMockUserRepository()
	auth := newAuthService(users)

	registered, err := auth.Register(context.Background(), service.RegisterInput{
		Username: "ada", Email: "ada@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := auth.CurrentUser(context.Background(), registered.Token)
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if user.ID != registered.User.ID {
		t.Errorf("user %q, want %q", user.ID, registered.User.ID)
	}

	if _, err := auth.CurrentUser(context.Background(), ""); apperr.KindOf(err) != apperr.KindAuth {
		t.Errorf("empty token kind = %v, want auth", apperr.KindOf(err))
	}
	if _, err := auth.CurrentUser(context.Background(), "garbage"); apperr.KindOf(err) != apperr.KindAuth {
		t.Errorf("garbage token kind = %v, want auth", apperr.KindOf(err))
	}

	// user deleted after token issuance
	delete(users.Users, registered.User.ID)
	if _, err := auth.CurrentUser(context.Background(), registered.Token); apperr.KindOf(err) != apperr.KindAuth {
		t.Errorf("deleted user kind = %v, want auth", apperr.KindOf(err))
	}
}
