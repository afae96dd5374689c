package export

import (
	"reflect"
	"testing"

	"github.com/mkeke/spotify-library-grabber/internal/services"
)

func folder(name string, children ...services.FolderNode) services.FolderNode {
	return services.FolderNode{Type: "folder", Name: name, Children: children}
}

func playlistRef(uri string) services.FolderNode {
	return services.FolderNode{Type: "playlist", URI: uri}
}

func TestBuildFolderMap(t *testing.T) {
	t.Run("Nested Folders", func(t *testing.T) {
		root := &services.FolderNode{
			Type: "root",
			Children: []services.FolderNode{
				playlistRef("spotify:playlist:top"),
				folder("Rock",
					playlistRef("spotify:playlist:a"),
					folder("Classic",
						playlistRef("spotify:playlist:b"),
					),
				),
				folder("Jazz",
					playlistRef("spotify:playlist:c"),
				),
			},
		}

		m := BuildFolderMap(root)

		if got := m.Path("spotify:playlist:top"); len(got) != 0 {
			t.Errorf("expected root playlist to have no folder path, got %v", got)
		}
		if got, want := m.Path("spotify:playlist:a"), []string{"Rock"}; !reflect.DeepEqual(got, want) {
			t.Errorf("expected path %v, got %v", want, got)
		}
		if got, want := m.Path("spotify:playlist:b"), []string{"Rock", "Classic"}; !reflect.DeepEqual(got, want) {
			t.Errorf("expected path %v, got %v", want, got)
		}
		if got, want := m.Path("spotify:playlist:c"), []string{"Jazz"}; !reflect.DeepEqual(got, want) {
			t.Errorf("expected path %v, got %v", want, got)
		}
	})

	t.Run("Root Name Contributes Nothing", func(t *testing.T) {
		root := &services.FolderNode{
			Type: "root",
			Name: "Your Library",
			Children: []services.FolderNode{
				playlistRef("spotify:playlist:x"),
			},
		}

		m := BuildFolderMap(root)
		if got := m.Path("spotify:playlist:x"); len(got) != 0 {
			t.Errorf("expected empty path under named root, got %v", got)
		}
	})

	t.Run("Folder Names Are Sanitized", func(t *testing.T) {
		root := &services.FolderNode{
			Type: "root",
			Children: []services.FolderNode{
				folder("Mixes: 2024/2025",
					playlistRef("spotify:playlist:m"),
				),
			},
		}

		m := BuildFolderMap(root)
		if got, want := m.Path("spotify:playlist:m"), []string{"Mixes_ 2024_2025"}; !reflect.DeepEqual(got, want) {
			t.Errorf("expected sanitized path %v, got %v", want, got)
		}
	})

	t.Run("Duplicate URI Last Visit Wins", func(t *testing.T) {
		root := &services.FolderNode{
			Type: "root",
			Children: []services.FolderNode{
				folder("First", playlistRef("spotify:playlist:dup")),
				folder("Second", playlistRef("spotify:playlist:dup")),
			},
		}

		m := BuildFolderMap(root)
		if got, want := m.Path("spotify:playlist:dup"), []string{"Second"}; !reflect.DeepEqual(got, want) {
			t.Errorf("expected last visit to win with %v, got %v", want, got)
		}
	})

	t.Run("Sibling Paths Do Not Alias", func(t *testing.T) {
		root := &services.FolderNode{
			Type: "root",
			Children: []services.FolderNode{
				folder("Parent",
					folder("Left", playlistRef("spotify:playlist:l")),
					folder("Right", playlistRef("spotify:playlist:r")),
				),
			},
		}

		m := BuildFolderMap(root)
		left := m.Path("spotify:playlist:l")
		right := m.Path("spotify:playlist:r")
		if !reflect.DeepEqual(left, []string{"Parent", "Left"}) {
			t.Errorf("unexpected left path %v", left)
		}
		if !reflect.DeepEqual(right, []string{"Parent", "Right"}) {
			t.Errorf("unexpected right path %v", right)
		}
	})

	t.Run("Nil Root", func(t *testing.T) {
		m := BuildFolderMap(nil)
		if m == nil {
			t.Fatal("expected non-nil empty map")
		}
		if len(m) != 0 {
			t.Errorf("expected empty map, got %v", m)
		}
	})

	t.Run("Nil Map Lookup", func(t *testing.T) {
		var m FolderMap
		if got := m.Path("spotify:playlist:any"); got != nil {
			t.Errorf("expected nil path from nil map, got %v", got)
		}
	})

	t.Run("Ignores Empty Leaf URIs", func(t *testing.T) {
		root := &services.FolderNode{
			Type: "root",
			Children: []services.FolderNode{
				{Type: "playlist"},
			},
		}

		m := BuildFolderMap(root)
		if len(m) != 0 {
			t.Errorf("expected empty map, got %v", m)
		}
	})
}
