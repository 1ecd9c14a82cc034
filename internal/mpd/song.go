package mpd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	gompd "github.com/fhs/gompd/v2/mpd"
)

// Song carries the metadata of a single playable catalog entry.
type Song struct {
	File        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string
	Date        string
	Track       int
	Disc        int
	Duration    time.Duration
}

// DisplayTitle returns the song title, falling back to the file name when the
// catalog carries no title tag.
func (s Song) DisplayTitle() string {
	if strings.TrimSpace(s.Title) != "" {
		return s.Title
	}
	if idx := strings.LastIndex(s.File, "/"); idx >= 0 {
		return s.File[idx+1:]
	}
	return s.File
}

// Metadata returns label/value pairs for the rich single-song preview, in
// display order. Empty values are omitted.
func (s Song) Metadata() [][2]string {
	pairs := [][2]string{
		{"Title", s.Title},
		{"Artist", s.Artist},
		{"Album Artist", s.AlbumArtist},
		{"Album", s.Album},
		{"Genre", s.Genre},
		{"Date", s.Date},
		{"File", s.File},
	}
	if s.Track > 0 {
		pairs = append(pairs, [2]string{"Track", strconv.Itoa(s.Track)})
	}
	if s.Disc > 0 {
		pairs = append(pairs, [2]string{"Disc", strconv.Itoa(s.Disc)})
	}
	if s.Duration > 0 {
		pairs = append(pairs, [2]string{"Duration", formatDuration(s.Duration)})
	}
	out := make([][2]string, 0, len(pairs))
	for _, p := range pairs {
		if strings.TrimSpace(p[1]) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func songFromAttrs(attrs gompd.Attrs) Song {
	s := Song{
		File:        attrs["file"],
		Title:       attrs["Title"],
		Artist:      attrs["Artist"],
		AlbumArtist: attrs["AlbumArtist"],
		Album:       attrs["Album"],
		Genre:       attrs["Genre"],
		Date:        attrs["Date"],
		Track:       attrInt(attrs, "Track"),
		Disc:        attrInt(attrs, "Disc"),
	}
	if v := attrs["duration"]; v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil {
			s.Duration = time.Duration(secs * float64(time.Second))
		}
	} else if v := attrs["Time"]; v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			s.Duration = time.Duration(secs) * time.Second
		}
	}
	return s
}

// attrInt parses numeric tags that may carry "N/M" style values (e.g. track
// 3 of 12 encoded as "3/12").
func attrInt(attrs gompd.Attrs, key string) int {
	v := attrs[key]
	if v == "" {
		return 0
	}
	if idx := strings.Index(v, "/"); idx >= 0 {
		v = v[:idx]
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

// SortMode selects the comparator used to order songs for display.
type SortMode int

const (
	// SortByTrack orders by disc, then track number, then title. The default.
	SortByTrack SortMode = iota
	// SortByTitle orders by title, case-insensitively.
	SortByTitle
	// SortByFile orders by file path.
	SortByFile
)

// ParseSortMode maps a configuration string to a SortMode.
func ParseSortMode(value string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "track":
		return SortByTrack, nil
	case "title":
		return SortByTitle, nil
	case "file":
		return SortByFile, nil
	default:
		return SortByTrack, fmt.Errorf("unknown sort mode %q (want track, title, or file)", value)
	}
}

func (m SortMode) String() string {
	switch m {
	case SortByTitle:
		return "title"
	case SortByFile:
		return "file"
	default:
		return "track"
	}
}

// SortSongs orders songs in place according to the configured mode. The sort
// is stable so catalog order breaks remaining ties.
func SortSongs(songs []Song, mode SortMode) {
	sort.SliceStable(songs, func(i, j int) bool {
		return lessSong(songs[i], songs[j], mode)
	})
}

func lessSong(a, b Song, mode SortMode) bool {
	switch mode {
	case SortByTitle:
		return strings.ToLower(a.DisplayTitle()) < strings.ToLower(b.DisplayTitle())
	case SortByFile:
		return a.File < b.File
	default:
		if a.Disc != b.Disc {
			return a.Disc < b.Disc
		}
		if a.Track != b.Track {
			return a.Track < b.Track
		}
		return strings.ToLower(a.DisplayTitle()) < strings.ToLower(b.DisplayTitle())
	}
}
