package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

// newTokenServer stands in for the provider's token endpoint.
func newTokenServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "exchanged_token",
			"refresh_token": "refresh",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func newOAuthConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:3000/callback",
		Endpoint:     oauth2.Endpoint{AuthURL: "http://localhost/auth", TokenURL: tokenURL},
	}
}

func receiveResult(t *testing.T, h *OAuthHandler) OAuthResult {
	t.Helper()

	select {
	case result := <-h.Result():
		return result
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OAuth result")
		return OAuthResult{}
	}
}

func TestOAuthHandler(t *testing.T) {
	t.Run("Successful Callback", func(t *testing.T) {
		tokenServer := newTokenServer(t)
		h := NewOAuthHandler(newOAuthConfig(tokenServer.URL), "state123")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=state123&code=auth_code", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Authorization Successful") {
			t.Error("expected success page in response body")
		}

		result := receiveResult(t, h)
		if result.Error() != nil {
			t.Fatalf("expected no error, got %v", result.Error())
		}
		if result.Token == nil || result.Token.AccessToken != "exchanged_token" {
			t.Errorf("unexpected token %+v", result.Token)
		}
	})

	t.Run("Invalid State", func(t *testing.T) {
		h := NewOAuthHandler(newOAuthConfig("http://localhost/token"), "expected_state")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=wrong&code=auth_code", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}

		result := receiveResult(t, h)
		if result.Error() == nil {
			t.Error("expected state validation error")
		}
	})

	t.Run("Denied Consent", func(t *testing.T) {
		h := NewOAuthHandler(newOAuthConfig("http://localhost/token"), "state123")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=state123&error=access_denied&error_description=User+denied", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}

		result := receiveResult(t, h)
		if result.Error() == nil || !strings.Contains(result.Error().Error(), "access_denied") {
			t.Errorf("expected denial error, got %v", result.Error())
		}
	})

	t.Run("Second Callback Rejected", func(t *testing.T) {
		tokenServer := newTokenServer(t)
		h := NewOAuthHandler(newOAuthConfig(tokenServer.URL), "state123")

		first := httptest.NewRecorder()
		h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/callback?state=state123&code=c1", nil))
		if first.Code != http.StatusOK {
			t.Fatalf("expected first callback to succeed, got %d", first.Code)
		}

		second := httptest.NewRecorder()
		h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/callback?state=state123&code=c2", nil))
		if second.Code != http.StatusBadRequest {
			t.Errorf("expected second callback rejected with 400, got %d", second.Code)
		}
	})

	t.Run("Routes", func(t *testing.T) {
		h := NewOAuthHandler(newOAuthConfig("http://localhost/token"), "s")
		routes := h.Routes()
		if len(routes) != 1 || routes[0] != "/callback" {
			t.Errorf("unexpected routes %v", routes)
		}
	})
}

func TestRouter(t *testing.T) {
	tokenServer := newTokenServer(t)
	h := NewOAuthHandler(newOAuthConfig(tokenServer.URL), "state123")

	router := NewRouter()
	router.Handler(h)

	t.Run("Dispatches Registered Route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=state123&code=c", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("Unknown Route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
	})
}
