package export

import (
	"fmt"
	"strings"

	"github.com/mkeke/spotify-library-grabber/internal/shared"
)

// Collection identifies one exportable library category.
type Collection string

const (
	LikedSongs      Collection = "liked"
	Podcasts        Collection = "podcasts"
	FollowedArtists Collection = "artists"
	Albums          Collection = "albums"
	Playlists       Collection = "playlists"
)

// StageOrder is the fixed execution order of export stages.
var StageOrder = []Collection{LikedSongs, Podcasts, FollowedArtists, Albums, Playlists}

// CollectionSet is the set of collections enabled for a run.
type CollectionSet map[Collection]bool

// AllCollections returns a set with every collection enabled.
func AllCollections() CollectionSet {
	set := make(CollectionSet, len(StageOrder))
	for _, c := range StageOrder {
		set[c] = true
	}
	return set
}

// ParseCollections builds a CollectionSet from user-supplied names.
// An empty input enables everything.
func ParseCollections(names []string) (CollectionSet, error) {
	if len(names) == 0 {
		return AllCollections(), nil
	}

	set := make(CollectionSet, len(names))
	for _, name := range names {
		switch c := Collection(strings.ToLower(strings.TrimSpace(name))); c {
		case LikedSongs, Podcasts, FollowedArtists, Albums, Playlists:
			set[c] = true
		default:
			return nil, fmt.Errorf("%w: unknown collection %q", shared.ErrInvalidArgument, name)
		}
	}
	return set, nil
}
