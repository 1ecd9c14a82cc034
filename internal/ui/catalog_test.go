package ui

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/discstack/discstack/internal/mpd"
)

var errBoom = errors.New("boom")

// fakeCatalog is an in-memory Catalog recording every queue mutation.
type fakeCatalog struct {
	albums []string
	songs  map[string][]mpd.Song

	// albumsQueue, when non-empty, overrides albums one listing at a time so
	// tests can give successive init queries distinct results.
	albumsQueue [][]string

	// missingFiles makes file-scoped finds come back empty for those files.
	missingFiles map[string]bool

	queueLen int

	listErr error
	findErr error
	addErr  error
	playErr error

	findAdds    [][]mpd.Filter
	findAddPos  []*int
	addAllCalls int
	played      []int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		albums: []string{"Harvest", "Kind of Blue"},
		songs: map[string][]mpd.Song{
			"Harvest": {
				{File: "harvest/01.flac", Title: "Out on the Weekend", Album: "Harvest", Artist: "Neil Young", Track: 1, Duration: 274 * time.Second},
				{File: "harvest/02.flac", Title: "Harvest", Album: "Harvest", Artist: "Neil Young", Track: 2, Duration: 191 * time.Second},
				{File: "harvest/03.flac", Title: "A Man Needs a Maid", Album: "Harvest", Artist: "Neil Young", Track: 3, Duration: 245 * time.Second},
			},
			"Kind of Blue": {
				{File: "kob/01.flac", Title: "So What", Album: "Kind of Blue", Artist: "Miles Davis", Track: 1, Duration: 562 * time.Second},
				{File: "kob/02.flac", Title: "Freddie Freeloader", Album: "Kind of Blue", Artist: "Miles Davis", Track: 2, Duration: 586 * time.Second},
			},
		},
	}
}

func (f *fakeCatalog) ListAlbums() ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.albumsQueue) > 0 {
		next := f.albumsQueue[0]
		f.albumsQueue = f.albumsQueue[1:]
		return append([]string(nil), next...), nil
	}
	names := append([]string(nil), f.albums...)
	sort.Strings(names)
	return names, nil
}

func (f *fakeCatalog) Find(filters ...mpd.Filter) ([]mpd.Song, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var album, file string
	for _, flt := range filters {
		switch flt.Tag {
		case mpd.TagAlbum:
			album = flt.Value
		case mpd.TagFile:
			file = flt.Value
		}
	}
	songs := f.songs[album]
	if file == "" {
		return append([]mpd.Song(nil), songs...), nil
	}
	if f.missingFiles[file] {
		return nil, nil
	}
	for _, s := range songs {
		if s.File == file {
			return []mpd.Song{s}, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) FindAdd(position *int, filters ...mpd.Filter) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.findAdds = append(f.findAdds, append([]mpd.Filter(nil), filters...))
	f.findAddPos = append(f.findAddPos, position)
	return nil
}

func (f *fakeCatalog) AddAll() error {
	if f.addErr != nil {
		return f.addErr
	}
	f.addAllCalls++
	return nil
}

func (f *fakeCatalog) Play(index int) error {
	if f.playErr != nil {
		return f.playErr
	}
	f.played = append(f.played, index)
	return nil
}

func (f *fakeCatalog) QueueLen() (int, error) {
	return f.queueLen, nil
}

// lastFindAdd returns the filters of the most recent findadd, formatted for
// failure messages.
func (f *fakeCatalog) lastFindAdd() []mpd.Filter {
	if len(f.findAdds) == 0 {
		return nil
	}
	return f.findAdds[len(f.findAdds)-1]
}

func filterString(filters []mpd.Filter) string {
	return fmt.Sprintf("%v", filters)
}

// startedModel builds a model over the fake catalog and runs Init so the root
// album listing is loaded.
func startedModel(f *fakeCatalog) (*Model, *Harness) {
	m := NewModel(f, mpd.SortByTrack, 100, 30, false, false, nil)
	h := NewHarness(m)
	h.Start()
	return h.Model(), h
}
