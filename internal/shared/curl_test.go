package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseCurlCommand(t *testing.T) {
	tt := []struct {
		name       string
		curlCmd    string
		wantBearer string
		wantClient string
		wantErr    bool
	}{
		{
			name:       "bearer with single quotes",
			curlCmd:    `curl -H 'Authorization: Bearer token123' https://spclient.wg.spotify.com/playlist/v2/me/rootlist`,
			wantBearer: "token123",
		},
		{
			name:       "bearer with double quotes",
			curlCmd:    `curl -H "Authorization: Bearer token123" https://api.example.com`,
			wantBearer: "token123",
		},
		{
			name: "multiline command with escaped newlines",
			curlCmd: `curl 'https://api.example.com' \
  -H 'accept: application/json' \
  -H 'authorization: Bearer abc.def.ghi' \
  -H 'client-token: ct-1'`,
			wantBearer: "abc.def.ghi",
			wantClient: "ct-1",
		},
		{
			name:       "header name case is normalized",
			curlCmd:    `curl -H 'AUTHORIZATION: Bearer tok' https://api.example.com`,
			wantBearer: "tok",
		},
		{
			name:    "no authorization header",
			curlCmd: `curl -H 'accept: application/json' https://api.example.com`,
			wantErr: true,
		},
		{
			name:    "empty command",
			curlCmd: ``,
			wantErr: true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			auth, err := ParseCurlCommand([]byte(tc.curlCmd))

			if tc.wantErr {
				if !errors.Is(err, ErrMissingCredentials) {
					t.Errorf("expected ErrMissingCredentials, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if auth.Bearer != tc.wantBearer {
				t.Errorf("expected bearer %q, got %q", tc.wantBearer, auth.Bearer)
			}
			if auth.Client != tc.wantClient {
				t.Errorf("expected client token %q, got %q", tc.wantClient, auth.Client)
			}
		})
	}
}

func TestParseCurlFile(t *testing.T) {
	t.Run("Reads Command From File", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "rootlist.curl")

		cmd := `curl -H 'Authorization: Bearer from_file' https://api.example.com`
		if err := os.WriteFile(path, []byte(cmd), 0644); err != nil {
			t.Fatalf("failed to write curl file: %v", err)
		}

		auth, err := ParseCurlFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if auth.Bearer != "from_file" {
			t.Errorf("expected bearer from_file, got %q", auth.Bearer)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := ParseCurlFile("/nonexistent/rootlist.curl"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
