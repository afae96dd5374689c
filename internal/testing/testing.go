// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/mkeke/spotify-library-grabber/internal/paging"
	"github.com/mkeke/spotify-library-grabber/internal/services"
)

// StubLibrary is an in-memory [services.Library] that serves its fixtures in
// real pages, so drains exercise pagination end to end.
type StubLibrary struct {
	Tracks        []services.SavedTrack
	Albums        []services.SavedAlbum
	AlbumItems    map[string][]services.AlbumTrack
	Shows         []services.SavedShow
	Playlists     []services.Playlist
	PlaylistItems map[string][]services.PlaylistTrack
	Artists       []services.Artist
	Err           error // returned by every method when set
	FetchCount    int   // total page fetches across all endpoints
}

func page[T any](items []T, limit, offset int) *paging.Page[T] {
	p := &paging.Page[T]{Limit: limit, Offset: offset, Total: len(items)}
	if offset >= len(items) {
		return p
	}

	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	p.Items = items[offset:end]
	if end < len(items) {
		next := "stub://next?offset=" + strconv.Itoa(end)
		p.Next = &next
	}
	return p
}

func (s *StubLibrary) SavedTracks(ctx context.Context, limit, offset int) (*paging.Page[services.SavedTrack], error) {
	s.FetchCount++
	if s.Err != nil {
		return nil, s.Err
	}
	return page(s.Tracks, limit, offset), nil
}

func (s *StubLibrary) SavedAlbums(ctx context.Context, limit, offset int) (*paging.Page[services.SavedAlbum], error) {
	s.FetchCount++
	if s.Err != nil {
		return nil, s.Err
	}
	return page(s.Albums, limit, offset), nil
}

func (s *StubLibrary) AlbumTracks(ctx context.Context, albumID string, limit, offset int) (*paging.Page[services.AlbumTrack], error) {
	s.FetchCount++
	if s.Err != nil {
		return nil, s.Err
	}
	return page(s.AlbumItems[albumID], limit, offset), nil
}

func (s *StubLibrary) SavedShows(ctx context.Context, limit, offset int) (*paging.Page[services.SavedShow], error) {
	s.FetchCount++
	if s.Err != nil {
		return nil, s.Err
	}
	return page(s.Shows, limit, offset), nil
}

func (s *StubLibrary) UserPlaylists(ctx context.Context, limit, offset int) (*paging.Page[services.Playlist], error) {
	s.FetchCount++
	if s.Err != nil {
		return nil, s.Err
	}
	return page(s.Playlists, limit, offset), nil
}

func (s *StubLibrary) PlaylistTracks(ctx context.Context, playlistID string, limit, offset int) (*paging.Page[services.PlaylistTrack], error) {
	s.FetchCount++
	if s.Err != nil {
		return nil, s.Err
	}
	return page(s.PlaylistItems[playlistID], limit, offset), nil
}

func (s *StubLibrary) FollowedArtists(ctx context.Context, limit int, after string) (*paging.CursorPage[services.Artist], error) {
	s.FetchCount++
	if s.Err != nil {
		return nil, s.Err
	}

	offset := 0
	if after != "" {
		var err error
		if offset, err = strconv.Atoi(after); err != nil {
			return nil, errors.New("bad cursor: " + after)
		}
	}

	p := &paging.CursorPage[services.Artist]{Limit: limit, Total: len(s.Artists)}
	if offset >= len(s.Artists) {
		return p, nil
	}

	end := offset + limit
	if end > len(s.Artists) {
		end = len(s.Artists)
	}
	p.Items = s.Artists[offset:end]
	if end < len(s.Artists) {
		cursor := strconv.Itoa(end)
		p.Cursors.After = &cursor
	}
	return p, nil
}

// StubFolders is an in-memory [services.FolderSource].
type StubFolders struct {
	Root *services.FolderNode
	Err  error
}

func (s *StubFolders) Rootlist(ctx context.Context) (*services.FolderNode, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Root, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}
