// Client for the internal rootlist endpoint exposing the playlist folder tree.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mkeke/spotify-library-grabber/internal/shared"
)

const defaultRootlistURL = "https://spclient.wg.spotify.com/playlist/v2/me/rootlist"

// FolderNode is one node of the rootlist tree: a folder with children, or a
// playlist reference leaf. The response root is an unnamed folder.
type FolderNode struct {
	Type     string       `json:"type"` // "folder" or "playlist"
	Name     string       `json:"name,omitempty"`
	URI      string       `json:"uri,omitempty"`
	Children []FolderNode `json:"children,omitempty"`
}

// IsFolder reports whether the node is a folder rather than a playlist leaf.
func (n FolderNode) IsFolder() bool {
	return n.Type == "folder" || n.Type == "root"
}

// RootlistClient fetches the playlist folder hierarchy from the internal
// rootlist endpoint.
//
// The endpoint is not part of the public Web API: it needs a short-lived
// bearer token obtained out of band (see `slg rootlist token`), distinct from
// the OAuth token used by [SpotifyClient].
type RootlistClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewRootlistClient creates a rootlist client for the given bearer token.
// An empty baseURL selects the default endpoint.
func NewRootlistClient(baseURL, token string, client *http.Client) *RootlistClient {
	if baseURL == "" {
		baseURL = defaultRootlistURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &RootlistClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: client,
	}
}

// Rootlist fetches the root folder node of the user's playlist tree.
func (r *RootlistClient) Rootlist(ctx context.Context) (*FolderNode, error) {
	if r.token == "" {
		return nil, fmt.Errorf("%w: no rootlist token configured", shared.ErrMissingCredentials)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", shared.ErrRootlistAuth, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: rootlist status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var root FolderNode
	if err := json.NewDecoder(resp.Body).Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to decode rootlist: %w", err)
	}

	return &root, nil
}
