package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkeke/spotify-library-grabber/internal/shared"
)

func TestRootlistClient(t *testing.T) {
	t.Run("NewRootlistClient Defaults", func(t *testing.T) {
		client := NewRootlistClient("", "tok", nil)
		if client.baseURL != defaultRootlistURL {
			t.Errorf("expected default endpoint, got %s", client.baseURL)
		}
		if client.httpClient != http.DefaultClient {
			t.Error("expected http.DefaultClient to be used")
		}
	})

	t.Run("Rootlist", func(t *testing.T) {
		t.Run("Fetches Tree", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer rootlist_token" {
					t.Errorf("expected bearer header, got %q", got)
				}

				json.NewEncoder(w).Encode(map[string]any{
					"type": "root",
					"children": []map[string]any{
						{"type": "folder", "name": "Mixes", "children": []map[string]any{
							{"type": "playlist", "uri": "spotify:playlist:1"},
						}},
					},
				})
			}))
			defer server.Close()

			client := NewRootlistClient(server.URL, "rootlist_token", nil)
			root, err := client.Rootlist(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !root.IsFolder() {
				t.Error("expected root node to be a folder")
			}
			if len(root.Children) != 1 || root.Children[0].Name != "Mixes" {
				t.Errorf("unexpected children %+v", root.Children)
			}
			if root.Children[0].Children[0].URI != "spotify:playlist:1" {
				t.Errorf("unexpected leaf %+v", root.Children[0].Children[0])
			}
		})

		t.Run("Missing Token", func(t *testing.T) {
			client := NewRootlistClient("http://example.com", "", nil)
			_, err := client.Rootlist(context.Background())
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("401 Maps To Rootlist Auth Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer server.Close()

			client := NewRootlistClient(server.URL, "stale", nil)
			_, err := client.Rootlist(context.Background())
			if !errors.Is(err, shared.ErrRootlistAuth) {
				t.Errorf("expected ErrRootlistAuth, got %v", err)
			}
		})

		t.Run("403 Maps To Rootlist Auth Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			}))
			defer server.Close()

			client := NewRootlistClient(server.URL, "stale", nil)
			_, err := client.Rootlist(context.Background())
			if !errors.Is(err, shared.ErrRootlistAuth) {
				t.Errorf("expected ErrRootlistAuth, got %v", err)
			}
		})

		t.Run("500 Maps To API Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			client := NewRootlistClient(server.URL, "tok", nil)
			_, err := client.Rootlist(context.Background())
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Malformed Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			}))
			defer server.Close()

			client := NewRootlistClient(server.URL, "tok", nil)
			if _, err := client.Rootlist(context.Background()); err == nil {
				t.Error("expected decode error")
			}
		})
	})

	t.Run("FolderSource Interface", func(t *testing.T) {
		var _ FolderSource = NewRootlistClient("", "tok", nil)
	})
}
