// Spotify Web API client.
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mkeke/spotify-library-grabber/internal/paging"
	"github.com/mkeke/spotify-library-grabber/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	defaultRateLimit = 5.0 // requests per second
)

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Artist represents a Spotify artist.
type Artist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres,omitempty"`
	Images []Image  `json:"images,omitempty"`
	URI    string   `json:"uri"`
}

// SimpleAlbum is the album reference embedded in a track object.
type SimpleAlbum struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// Track represents a Spotify track.
type Track struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Artists     []Artist    `json:"artists"`
	Album       SimpleAlbum `json:"album"`
	DurationMS  int         `json:"duration_ms"`
	TrackNumber int         `json:"track_number"`
	DiscNumber  int         `json:"disc_number"`
	URI         string      `json:"uri"`
}

// SavedTrack wraps a track saved in the user's library.
//
// Track is a pointer: removed or unavailable tracks come back as null.
type SavedTrack struct {
	AddedAt string `json:"added_at"`
	Track   *Track `json:"track"`
}

// PlaylistTrack wraps a track within a playlist context. Shares SavedTrack's
// shape, including a null track for removed entries.
type PlaylistTrack = SavedTrack

// AlbumTrack is the simplified track object embedded in an album's track listing.
type AlbumTrack struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Artists     []Artist `json:"artists"`
	DurationMS  int      `json:"duration_ms"`
	TrackNumber int      `json:"track_number"`
	DiscNumber  int      `json:"disc_number"`
	URI         string   `json:"uri"`
}

// Album represents a full Spotify album, including its embedded track listing.
type Album struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Artists     []Artist                `json:"artists"`
	ReleaseDate string                  `json:"release_date"`
	TotalTracks int                     `json:"total_tracks"`
	Images      []Image                 `json:"images,omitempty"`
	Tracks      paging.Page[AlbumTrack] `json:"tracks"`
	URI         string                  `json:"uri"`
}

// SavedAlbum wraps an album saved in the user's library.
type SavedAlbum struct {
	AddedAt string `json:"added_at"`
	Album   Album  `json:"album"`
}

// Show represents a Spotify podcast show.
type Show struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Publisher     string `json:"publisher"`
	Description   string `json:"description"`
	TotalEpisodes int    `json:"total_episodes"`
	URI           string `json:"uri"`
}

// SavedShow wraps a show saved in the user's library.
type SavedShow struct {
	AddedAt string `json:"added_at"`
	Show    Show   `json:"show"`
}

// Owner represents a playlist owner reference.
type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type playlistTracksRef struct {
	Href  string `json:"href"`
	Total int    `json:"total"`
}

// Playlist represents a simplified playlist object as returned by /me/playlists.
type Playlist struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Owner       Owner             `json:"owner"`
	Public      bool              `json:"public"`
	Tracks      playlistTracksRef `json:"tracks"`
	URI         string            `json:"uri"`
}

// User represents the authenticated user's profile.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Country     string `json:"country"`
	Product     string `json:"product"`
}

// followedArtistsResponse wraps the cursor page under an "artists" key.
type followedArtistsResponse struct {
	Artists paging.CursorPage[Artist] `json:"artists"`
}

// SpotifyClient is a token-authenticated JSON client for the Spotify Web API.
//
// Credentials are explicit constructor/Authenticate arguments; the client
// holds no process-global state. Requests are paced by a [rate.Limiter] to
// stay inside the service's rate limits during long drains.
type SpotifyClient struct {
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// NewSpotifyClient creates a new Spotify client with the given OAuth2 credentials.
func NewSpotifyClient(credentials map[string]string) (*SpotifyClient, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:3000/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"user-library-read",
			"user-follow-read",
			"playlist-read-private",
			"playlist-read-collaborative",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyClient{
		config:     config,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), 1),
		baseURL:    spotifyBaseURL,
	}, nil
}

// SetRateLimit adjusts the client-side request pacing in requests per second.
func (s *SpotifyClient) SetRateLimit(rps float64) {
	if rps > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// GetOAuthConfig returns the underlying OAuth2 configuration.
func (s *SpotifyClient) GetOAuthConfig() *oauth2.Config {
	return s.config
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyClient) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Authenticate installs a token on the client. Expects either an
// "access_token" (with optional "refresh_token") or an "auth_code" to exchange.
//
// When a refresh token is present the underlying [oauth2.Config.Client]
// refreshes expired access tokens transparently.
func (s *SpotifyClient) Authenticate(ctx context.Context, credentials map[string]string) error {
	if accessToken, ok := credentials["access_token"]; ok && accessToken != "" {
		s.token = &oauth2.Token{
			AccessToken:  accessToken,
			RefreshToken: credentials["refresh_token"],
		}
		if s.token.RefreshToken != "" {
			s.httpClient = s.config.Client(ctx, s.token)
		}
		return nil
	}

	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := s.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("%w: failed to exchange auth code: %v", shared.ErrAuthFailed, err)
		}
		s.token = token
		s.httpClient = s.config.Client(ctx, s.token)
		return nil
	}

	return fmt.Errorf("%w: missing access_token or auth_code", shared.ErrMissingCredentials)
}

// AuthenticateToken installs an existing [oauth2.Token] on the client.
func (s *SpotifyClient) AuthenticateToken(ctx context.Context, token *oauth2.Token) error {
	if token == nil || (token.AccessToken == "" && token.RefreshToken == "") {
		return fmt.Errorf("%w: empty token", shared.ErrMissingCredentials)
	}
	s.token = token
	s.httpClient = s.config.Client(ctx, token)
	return nil
}

// doRequest performs a rate-limited, authenticated GET against the API and
// decodes the JSON response into result.
func (s *SpotifyClient) doRequest(ctx context.Context, endpoint string, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: status 401 for %s", shared.ErrTokenExpired, endpoint)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: retry after %s", shared.ErrRateLimited, retryAfter(resp))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d for %s", shared.ErrAPIRequest, resp.StatusCode, endpoint)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// retryAfter extracts the Retry-After hint from a 429 response for logging.
func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return 0
}

// UserProfile retrieves the current authenticated user's profile.
func (s *SpotifyClient) UserProfile(ctx context.Context) (*User, error) {
	var user User
	if err := s.doRequest(ctx, "/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SavedTracks retrieves one page of the user's liked songs.
func (s *SpotifyClient) SavedTracks(ctx context.Context, limit, offset int) (*paging.Page[SavedTrack], error) {
	var page paging.Page[SavedTrack]
	endpoint := fmt.Sprintf("/me/tracks?limit=%d&offset=%d", clampLimit(limit), offset)
	if err := s.doRequest(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SavedAlbums retrieves one page of the user's saved albums.
func (s *SpotifyClient) SavedAlbums(ctx context.Context, limit, offset int) (*paging.Page[SavedAlbum], error) {
	var page paging.Page[SavedAlbum]
	endpoint := fmt.Sprintf("/me/albums?limit=%d&offset=%d", clampLimit(limit), offset)
	if err := s.doRequest(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AlbumTracks retrieves one page of an album's track listing.
func (s *SpotifyClient) AlbumTracks(ctx context.Context, albumID string, limit, offset int) (*paging.Page[AlbumTrack], error) {
	var page paging.Page[AlbumTrack]
	endpoint := fmt.Sprintf("/albums/%s/tracks?limit=%d&offset=%d", url.PathEscape(albumID), clampLimit(limit), offset)
	if err := s.doRequest(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SavedShows retrieves one page of the user's saved podcast shows.
func (s *SpotifyClient) SavedShows(ctx context.Context, limit, offset int) (*paging.Page[SavedShow], error) {
	var page paging.Page[SavedShow]
	endpoint := fmt.Sprintf("/me/shows?limit=%d&offset=%d", clampLimit(limit), offset)
	if err := s.doRequest(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UserPlaylists retrieves one page of the current user's playlists.
func (s *SpotifyClient) UserPlaylists(ctx context.Context, limit, offset int) (*paging.Page[Playlist], error) {
	var page paging.Page[Playlist]
	endpoint := fmt.Sprintf("/me/playlists?limit=%d&offset=%d", clampLimit(limit), offset)
	if err := s.doRequest(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PlaylistTracks retrieves one page of a playlist's tracks.
func (s *SpotifyClient) PlaylistTracks(ctx context.Context, playlistID string, limit, offset int) (*paging.Page[PlaylistTrack], error) {
	var page paging.Page[PlaylistTrack]
	endpoint := fmt.Sprintf("/playlists/%s/tracks?limit=%d&offset=%d", url.PathEscape(playlistID), clampLimit(limit), offset)
	if err := s.doRequest(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FollowedArtists retrieves one cursor page of the user's followed artists.
func (s *SpotifyClient) FollowedArtists(ctx context.Context, limit int, after string) (*paging.CursorPage[Artist], error) {
	endpoint := fmt.Sprintf("/me/following?type=artist&limit=%d", clampLimit(limit))
	if after != "" {
		endpoint += "&after=" + url.QueryEscape(after)
	}

	var response followedArtistsResponse
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}
	return &response.Artists, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > paging.MaxPageSize {
		return paging.MaxPageSize
	}
	return limit
}
