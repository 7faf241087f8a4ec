package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/erpfil/crm/internal/auth"
	"github.com/erpfil/crm/internal/db"
	"github.com/erpfil/crm/internal/store"
)

const testJWTSecret = "test-secret"

// setupWebServer starts the page router with one signed-in manager and
// returns the server plus a client carrying the session cookie.
func setupWebServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	database := db.NewTestDB(t)
	router, err := NewRouter(database, testJWTSecret)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	user, err := store.CreateUser(ctx, database, "manager", string(hash))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	token, err := auth.GenerateToken(testJWTSecret, user.ID, user.Username)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
		Transport: &cookieHeaderTransport{token: token, base: http.DefaultTransport},
	}

	return server, client
}

// cookieHeaderTransport attaches the session cookie to every request.
type cookieHeaderTransport struct {
	token string
	base  http.RoundTripper
}

func (ct *cookieHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.AddCookie(&http.Cookie{Name: "token", Value: ct.token})
	return ct.base.RoundTrip(req)
}

func TestPartnerCreateFormPrefillsWebsiteScheme(t *testing.T) {
	server, client := setupWebServer(t)

	resp, err := client.Get(server.URL + "/partners/new")
	if err != nil {
		t.Fatalf("GET /partners/new: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `name="website" value="http://"`) {
		t.Error("expected website field pre-filled with http://")
	}
}

func TestUnauthenticatedPageRedirectsToLogin(t *testing.T) {
	database := db.NewTestDB(t)
	router, err := NewRouter(database, testJWTSecret)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(server.URL + "/partners")
	if err != nil {
		t.Fatalf("GET /partners: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}