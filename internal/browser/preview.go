package browser

import "github.com/discstack/discstack/internal/mpd"

// Preview is the secondary content describing what lies one level deeper than
// the current selection. Exactly one of List and Song is set: List is the
// flat song listing shown while hovering an album, Song is the rich metadata
// view shown while hovering a single song.
//
// Origin is the navigation path the preview was computed for. A preview whose
// origin no longer matches the live path is discarded, never displayed.
type Preview struct {
	Origin []string
	Title  string
	List   []string
	Song   *mpd.Song
}

// ListPreview builds a flat-list preview for an album's songs.
func ListPreview(origin []string, title string, lines []string) *Preview {
	return &Preview{Origin: clonePath(origin), Title: title, List: lines}
}

// SongPreview builds a rich metadata preview for a single song.
func SongPreview(origin []string, song mpd.Song) *Preview {
	return &Preview{Origin: clonePath(origin), Title: song.DisplayTitle(), Song: &song}
}

func clonePath(path []string) []string {
	if path == nil {
		return nil
	}
	dup := make([]string, len(path))
	copy(dup, path)
	return dup
}
