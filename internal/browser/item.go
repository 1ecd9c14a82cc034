package browser

import "github.com/discstack/discstack/internal/mpd"

// ItemKind discriminates the two shapes a browsable entry can take.
type ItemKind int

const (
	// KindDir is a collapsible album directory carrying only its name.
	KindDir ItemKind = iota
	// KindSong is a terminal entry carrying full song metadata.
	KindSong
)

// Item is a single entry of a browse level: either an album directory or a
// song. Items are immutable once fetched; a level's contents are only ever
// replaced wholesale.
type Item struct {
	Kind ItemKind
	Name string
	Song mpd.Song
}

// Dir builds a directory item for an album name.
func Dir(name string) Item {
	return Item{Kind: KindDir, Name: name}
}

// SongItem builds a terminal item for a song.
func SongItem(s mpd.Song) Item {
	return Item{Kind: KindSong, Song: s}
}

// Label returns the text shown in the item list.
func (i Item) Label() string {
	switch i.Kind {
	case KindSong:
		return i.Song.DisplayTitle()
	default:
		return i.Name
	}
}

// EntryName returns the identifier used in find filters and path segments:
// the directory name for albums, the file path for songs.
func (i Item) EntryName() string {
	switch i.Kind {
	case KindSong:
		return i.Song.File
	default:
		return i.Name
	}
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}

// DirsFromNames converts album names to directory items.
func DirsFromNames(names []string) []Item {
	items := make([]Item, 0, len(names))
	for _, name := range names {
		items = append(items, Dir(name))
	}
	return items
}

// ItemsFromSongs converts songs to terminal items, preserving order.
func ItemsFromSongs(songs []mpd.Song) []Item {
	items := make([]Item, 0, len(songs))
	for _, s := range songs {
		items = append(items, SongItem(s))
	}
	return items
}
