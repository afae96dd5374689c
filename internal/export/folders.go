package export

import (
	"github.com/mkeke/spotify-library-grabber/internal/services"
)

// FolderMap looks up a playlist's folder path (ordered sanitized folder
// names, possibly empty) by playlist URI. Built once per run, read-only
// afterward. Playlists absent from the map belong at the root of Playlists/.
type FolderMap map[string][]string

// Path returns the folder path for a playlist URI, or nil for root placement.
func (m FolderMap) Path(uri string) []string {
	if m == nil {
		return nil
	}
	return m[uri]
}

// BuildFolderMap walks the rootlist tree in pre-order, carrying the
// accumulated sanitized folder path, and records every playlist leaf.
//
// The root node is the implicit top-level folder: its own name contributes
// nothing to the path. Duplicate playlist URIs should not occur; if they do,
// the last visit wins.
func BuildFolderMap(root *services.FolderNode) FolderMap {
	m := make(FolderMap)
	if root == nil {
		return m
	}
	walkFolder(root.Children, nil, m)
	return m
}

func walkFolder(children []services.FolderNode, path []string, m FolderMap) {
	for _, child := range children {
		if child.IsFolder() {
			sub := make([]string, len(path), len(path)+1)
			copy(sub, path)
			sub = append(sub, Sanitize(child.Name))
			walkFolder(child.Children, sub, m)
			continue
		}

		if child.URI != "" {
			m[child.URI] = path
		}
	}
}
