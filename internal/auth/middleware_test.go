package auth

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/repair-service/internal/domain"
)

func newAuthFixture(users ...*domain.User) (*Middleware, *TokenManager) {
	tokens := NewTokenManager("guard-test-secret", 60)
	return NewMiddleware(tokens, newFakeUserRepo(users...), zap.NewNop()), tokens
}

func TestAuthenticateMissingHeader(t *testing.T) {
	m, _ := newAuthFixture()
	app := newGuardApp()
	app.Get("/me", m.Authenticate, okHandler)

	status, _ := performRequest(t, app, newRequest(http.MethodGet, "/me"))
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	m, _ := newAuthFixture()
	app := newGuardApp()
	app.Get("/me", m.Authenticate, okHandler)

	req := newRequest(http.MethodGet, "/me")
	req.Header.Set("Authorization", "Token abc")
	status, _ := performRequest(t, app, req)
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	m, _ := newAuthFixture()
	other := NewTokenManager("a-different-secret", 60)
	token, _, err := other.GenerateToken("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	app := newGuardApp()
	app.Get("/me", m.Authenticate, okHandler)

	req := newRequest(http.MethodGet, "/me")
	req.Header.Set("Authorization", "Bearer "+token)
	status, _ := performRequest(t, app, req)
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestAuthenticateVanishedSubject(t *testing.T) {
	m, tokens := newAuthFixture()
	token, _, err := tokens.GenerateToken("user-gone", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	app := newGuardApp()
	app.Get("/me", m.Authenticate, okHandler)

	req := newRequest(http.MethodGet, "/me")
	req.Header.Set("Authorization", "Bearer "+token)
	status, body := performRequest(t, app, req)
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
	// A deleted account must look like any other bad token.
	if !strings.Contains(body, "invalid_token") {
		t.Errorf("body = %s, want the generic invalid_token message", body)
	}
}

func TestAuthenticateDisabledUser(t *testing.T) {
	m, tokens := newAuthFixture(&domain.User{
		ID:     "user-1",
		Email:  "gone@example.com",
		Role:   domain.RoleUser,
		Status: domain.UserStatusDisabled,
	})
	token, _, err := tokens.GenerateToken("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	app := newGuardApp()
	app.Get("/me", m.Authenticate, okHandler)

	req := newRequest(http.MethodGet, "/me")
	req.Header.Set("Authorization", "Bearer "+token)
	status, _ := performRequest(t, app, req)
	if status != http.StatusForbidden {
		t.Errorf("status = %d, want 403", status)
	}
}

func TestAuthenticateAttachesPrincipal(t *testing.T) {
	m, tokens := newAuthFixture(&domain.User{
		ID:     "user-1",
		Email:  "tech@example.com",
		Role:   domain.RoleUser,
		Status: domain.UserStatusActive,
	})
	token, _, err := tokens.GenerateToken("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	app := newGuardApp()
	app.Get("/me", m.Authenticate, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			t.Error("expected a principal in context")
			return okHandler(c)
		}
		return c.JSON(fiber.Map{"user_id": principal.UserID})
	})

	req := newRequest(http.MethodGet, "/me")
	req.Header.Set("Authorization", "Bearer "+token)
	status, body := performRequest(t, app, req)
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if !strings.Contains(body, "user-1") {
		t.Errorf("body = %s, want the resolved user id", body)
	}
}

func TestRequireSuperadmin(t *testing.T) {
	cases := []struct {
		name       string
		role       domain.GlobalRole
		wantStatus int
	}{
		{"superadmin passes", domain.RoleSuperadmin, http.StatusOK},
		{"ordinary user refused", domain.RoleUser, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newGuardApp()
			app.Get("/admin", func(c *fiber.Ctx) error {
				c.Locals(principalKey, &Principal{UserID: "user-1", Role: tc.role})
				return c.Next()
			}, RequireSuperadmin(), okHandler)

			status, _ := performRequest(t, app, newRequest(http.MethodGet, "/admin"))
			if status != tc.wantStatus {
				t.Errorf("status = %d, want %d", status, tc.wantStatus)
			}
		})
	}
}

func TestRequireSuperadminWithoutPrincipal(t *testing.T) {
	app := newGuardApp()
	app.Get("/admin", RequireSuperadmin(), okHandler)

	status, _ := performRequest(t, app, newRequest(http.MethodGet, "/admin"))
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestRequireBootstrapToken(t *testing.T) {
	cases := []struct {
		name       string
		expected   string
		provided   string
		wantStatus int
	}{
		{"matching token passes", "shared-secret", "shared-secret", http.StatusOK},
		{"wrong token refused", "shared-secret", "guess", http.StatusUnauthorized},
		{"missing token refused", "shared-secret", "", http.StatusUnauthorized},
		{"unconfigured guard fails closed", "", "anything", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newGuardApp()
			app.Post("/bootstrap", RequireBootstrapToken(tc.expected), okHandler)

			req := newRequest(http.MethodPost, "/bootstrap")
			if tc.provided != "" {
				req.Header.Set("X-Bootstrap-Token", tc.provided)
			}
			status, _ := performRequest(t, app, req)
			if status != tc.wantStatus {
				t.Errorf("status = %d, want %d", status, tc.wantStatus)
			}
		})
	}
}
