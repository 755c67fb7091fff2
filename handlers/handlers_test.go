package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"Userdeck/config"
	"Userdeck/database"
	"Userdeck/session"
	"Userdeck/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()

	users := store.NewMemory()
	cfg := &config.Config{SessionSecret: "test-secret", Environment: "test"}
	sessions := session.NewManager(cfg, users)

	h, err := New(users, sessions)
	require.NoError(t, err)

	ts := httptest.NewServer(h.Routes())
	t.Cleanup(ts.Close)
	return ts, users
}

// newClient returns an http.Client that carries cookies across requests
// like a browser.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func get(t *testing.T, c *http.Client, rawURL string) (*http.Response, string) {
	t.Helper()
	resp, err := c.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func postForm(t *testing.T, c *http.Client, rawURL string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := c.PostForm(rawURL, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func register(t *testing.T, c *http.Client, baseURL, email, password string) (*http.Response, string) {
	t.Helper()
	return postForm(t, c, baseURL+"/register", url.Values{
		"email":            {email},
		"password":         {password},
		"confirm_password": {password},
	})
}

func login(t *testing.T, c *http.Client, baseURL, email, password string) (*http.Response, string) {
	t.Helper()
	return postForm(t, c, baseURL+"/login", url.Values{
		"email":    {email},
		"password": {password},
	})
}

func TestRootRedirectsToLoginWhenAnonymous(t *testing.T) {
	ts, _ := newTestServer(t)
	client := newClient(t)

	resp, _ := get(t, client, ts.URL+"/")
	assert.Equal(t, "/login", resp.Request.URL.Path)
}

func TestRegisterThenLogin(t *testing.T) {
	ts, _ := newTestServer(t)
	client := newClient(t)

	resp, body := register(t, client, ts.URL, "a@x.com", "pw1")
	assert.Equal(t, "/login", resp.Request.URL.Path)
	assert.Contains(t, body, "Registration successful. Please log in.")

	resp, body = login(t, client, ts.URL, "a@x.com", "pw1")
	assert.Equal(t, "/dashboard", resp.Request.URL.Path)
	assert.Contains(t, body, "Welcome, a@x.com.")

	// The session persists across requests.
	resp, _ = get(t, client, ts.URL+"/dashboard")
	assert.Equal(t, "/dashboard", resp.Request.URL.Path)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts, users := newTestServer(t)

	register(t, newClient(t), ts.URL, "a@x.com", "pw1")

	resp, body := register(t, newClient(t), ts.URL, "a@x.com", "pw2")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "This email is already registered.")

	all, err := users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1, "exactly one row for the email after a duplicate attempt")
}

func TestRegisterValidationErrors(t *testing.T) {
	ts, users := newTestServer(t)
	client := newClient(t)

	_, body := postForm(t, client, ts.URL+"/register", url.Values{
		"email":            {"not-an-email"},
		"password":         {"pw1"},
		"confirm_password": {"pw2"},
	})
	assert.Contains(t, body, "Invalid email address.")
	assert.Contains(t, body, "Passwords must match")

	all, err := users.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "validation failure must not reach the store")
}

func TestLoginFailureDoesNotEnumerateAccounts(t *testing.T) {
	ts, _ := newTestServer(t)

	register(t, newClient(t), ts.URL, "a@x.com", "pw1")

	const generic = "Invalid email or password"

	wrongPassword := newClient(t)
	resp, body := login(t, wrongPassword, ts.URL, "a@x.com", "wrong")
	assert.Contains(t, body, generic)
	assert.Equal(t, "/login", resp.Request.URL.Path)

	unknownEmail := newClient(t)
	resp, body = login(t, unknownEmail, ts.URL, "nobody@x.com", "pw1")
	assert.Contains(t, body, generic)
	assert.Equal(t, "/login", resp.Request.URL.Path)

	// Neither failure established a session.
	resp, _ = get(t, wrongPassword, ts.URL+"/dashboard")
	assert.Equal(t, "/login", resp.Request.URL.Path)
	resp, _ = get(t, unknownEmail, ts.URL+"/dashboard")
	assert.Equal(t, "/login", resp.Request.URL.Path)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	ts, _ := newTestServer(t)
	client := newClient(t)

	register(t, client, ts.URL, "a@x.com", "pw1")
	login(t, client, ts.URL, "a@x.com", "pw1")

	resp, _ := get(t, client, ts.URL+"/logout")
	assert.Equal(t, "/login", resp.Request.URL.Path)

	resp, _ = get(t, client, ts.URL+"/dashboard")
	assert.Equal(t, "/login", resp.Request.URL.Path)
}

func TestAuthedUserRedirectedAwayFromAuthPages(t *testing.T) {
	ts, _ := newTestServer(t)
	client := newClient(t)

	register(t, client, ts.URL, "a@x.com", "pw1")
	login(t, client, ts.URL, "a@x.com", "pw1")

	resp, _ := get(t, client, ts.URL+"/login")
	assert.Equal(t, "/dashboard", resp.Request.URL.Path)

	resp, _ = get(t, client, ts.URL+"/register")
	assert.Equal(t, "/dashboard", resp.Request.URL.Path)
}

func TestAccountEdit(t *testing.T) {
	ts, _ := newTestServer(t)

	register(t, newClient(t), ts.URL, "b@x.com", "pw1")

	client := newClient(t)
	register(t, client, ts.URL, "a@x.com", "pw1")
	login(t, client, ts.URL, "a@x.com", "pw1")

	// GET prefills the current email.
	_, body := get(t, client, ts.URL+"/account")
	assert.Contains(t, body, `value="a@x.com"`)

	// Claiming another user's email fails validation.
	resp, body := postForm(t, client, ts.URL+"/account", url.Values{"email": {"b@x.com"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "This email is already registered.")

	// Re-submitting the unchanged email succeeds trivially.
	resp, body = postForm(t, client, ts.URL+"/account", url.Values{"email": {"a@x.com"}})
	assert.Equal(t, "/account", resp.Request.URL.Path)
	assert.Contains(t, body, "Your account has been updated.")

	// A genuinely new email is persisted and visible on the next GET.
	resp, body = postForm(t, client, ts.URL+"/account", url.Values{"email": {"a2@x.com"}})
	assert.Equal(t, "/account", resp.Request.URL.Path)
	assert.Contains(t, body, "Your account has been updated.")

	_, body = get(t, client, ts.URL+"/account")
	assert.Contains(t, body, `value="a2@x.com"`)
}

// TestUserListing walks the full scenario: two self-registered users, a
// soft-denied non-admin, then the seeded admin seeing every account.
func TestUserListing(t *testing.T) {
	ts, users := newTestServer(t)

	require.NoError(t, database.SeedDefaultUsers(context.Background(), users))

	register(t, newClient(t), ts.URL, "a@x.com", "pw1")
	register(t, newClient(t), ts.URL, "b@x.com", "pw1")

	// Non-admin: redirected to the dashboard with a notice, never sees
	// the listing.
	regular := newClient(t)
	login(t, regular, ts.URL, "a@x.com", "pw1")

	resp, body := get(t, regular, ts.URL+"/users")
	assert.Equal(t, "/dashboard", resp.Request.URL.Path)
	assert.Contains(t, body, "Access denied.")
	assert.NotContains(t, body, "b@x.com")

	// Admin: sees all four accounts.
	admin := newClient(t)
	resp, _ = login(t, admin, ts.URL, "admin@example.com", "admin123")
	assert.Equal(t, "/dashboard", resp.Request.URL.Path)

	resp, body = get(t, admin, ts.URL+"/users")
	assert.Equal(t, "/users", resp.Request.URL.Path)
	for _, email := range []string{"a@x.com", "b@x.com", "admin@example.com", "user@example.com"} {
		assert.Contains(t, body, email)
	}
}

func TestSeedingIsIdempotent(t *testing.T) {
	_, users := newTestServer(t)

	ctx := context.Background()
	require.NoError(t, database.SeedDefaultUsers(ctx, users))
	require.NoError(t, database.SeedDefaultUsers(ctx, users))

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	admin, err := users.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.True(t, store.VerifyPassword(admin, "admin123"))

	regular, err := users.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.False(t, regular.IsAdmin)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, path := range []string{"/dashboard", "/account", "/users", "/logout"} {
		resp, _ := get(t, newClient(t), ts.URL+path)
		assert.Equal(t, "/login", resp.Request.URL.Path, "path %s", path)
	}
}

func TestRegisterStripsSurroundingWhitespace(t *testing.T) {
	ts, users := newTestServer(t)
	client := newClient(t)

	register(t, client, ts.URL, "  a@x.com  ", "pw1")

	u, err := users.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
}
