package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

var testSecret = []byte("test-secret")

func makeAuthedContext(t *testing.T, e *echo.Echo, token string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/pacientes", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	token, err := IssueToken(testSecret, "42", "Dra. Ana Ruiz", []string{RoleMedico}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	e := echo.New()
	c, _ := makeAuthedContext(t, e, token)

	var gotID string
	var gotRoles []string
	handler := JWTMiddleware(testSecret)(func(c echo.Context) error {
		ctx := c.Request().Context()
		gotID = UserIDFromContext(ctx)
		gotRoles = RolesFromContext(ctx)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if gotID != "42" {
		t.Errorf("user id = %q, want 42", gotID)
	}
	if len(gotRoles) != 1 || gotRoles[0] != RoleMedico {
		t.Errorf("roles = %v, want [medico]", gotRoles)
	}
}

func TestJWTMiddleware_Rejections(t *testing.T) {
	expired, err := IssueToken(testSecret, "1", "x", nil, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	wrongKey, err := IssueToken([]byte("other-secret"), "1", "x", nil, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"garbage token", "not.a.jwt"},
		{"expired token", expired},
		{"wrong signing key", wrongKey},
	}

	e := echo.New()
	mw := JWTMiddleware(testSecret)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := makeAuthedContext(t, e, tc.token)
			handler := mw(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			err := handler(c)
			httpErr, ok := err.(*echo.HTTPError)
			if !ok || httpErr.Code != http.StatusUnauthorized {
				t.Errorf("err = %v, want 401", err)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name      string
		userRoles []string
		required  []string
		allow     bool
	}{
		{"exact match", []string{RoleMedico}, []string{RoleMedico}, true},
		{"one of several", []string{RoleEnfermeria}, []string{RoleMedico, RoleEnfermeria}, true},
		{"admin override", []string{RoleAdmin}, []string{RoleMedico}, true},
		{"no match", []string{RoleRecepcion}, []string{RoleMedico}, false},
		{"no roles", nil, []string{RoleMedico}, false},
	}

	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := IssueToken(testSecret, "1", "u", tc.userRoles, time.Hour)
			if err != nil {
				t.Fatal(err)
			}
			c, _ := makeAuthedContext(t, e, token)

			chain := JWTMiddleware(testSecret)(RequireRole(tc.required...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}))
			err = chain(c)

			if tc.allow {
				if err != nil {
					t.Errorf("expected access, got %v", err)
				}
				return
			}
			httpErr, ok := err.(*echo.HTTPError)
			if !ok || httpErr.Code != http.StatusForbidden {
				t.Errorf("err = %v, want 403", err)
			}
		})
	}
}

func TestDevAuthMiddleware_DefaultsToAdmin(t *testing.T) {
	e := echo.New()
	c, _ := makeAuthedContext(t, e, "")

	handler := DevAuthMiddleware()(func(c echo.Context) error {
		roles := RolesFromContext(c.Request().Context())
		if len(roles) != 1 || roles[0] != RoleAdmin {
			t.Errorf("roles = %v, want [admin]", roles)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatal(err)
	}
}
