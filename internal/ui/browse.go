package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/discstack/discstack/internal/browser"
	"github.com/discstack/discstack/internal/logging"
	"github.com/discstack/discstack/internal/logging/events"
	"github.com/discstack/discstack/internal/mpd"
	"github.com/discstack/discstack/internal/query"
)

// Catalog is the subset of the MPD client the pane depends on.
type Catalog interface {
	ListAlbums() ([]string, error)
	Find(filters ...mpd.Filter) ([]mpd.Song, error)
	FindAdd(position *int, filters ...mpd.Filter) error
	AddAll() error
	Play(index int) error
	QueueLen() (int, error)
}

const paneOwner = "albums"

const (
	queryInit       query.ID = "init"
	queryOpenOrPlay query.ID = "open_or_play"
	queryPreview    query.ID = "preview"
	queryQueueLen   query.ID = "queue_len"
)

const (
	slotInit     query.Slot = "init"
	slotOpen     query.Slot = "open"
	slotPreview  query.Slot = "preview"
	slotQueueLen query.Slot = "queue_len"
)

// actionResult carries the outcome of a queue mutation back to Update.
type actionResult struct {
	info string
	err  error
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(actionResult)
	if !ok {
		return nil
	}
	if result.err != nil {
		m.errMsg = result.err.Error()
		logging.Error(result.err)
		return nil
	}
	m.errMsg = ""
	if result.info != "" {
		m.setInfo(result.info)
	}
	return nil
}

// submitInit fetches the album listing that forms the root level.
func (m *Model) submitInit() tea.Cmd {
	catalog := m.catalog
	m.loading = true
	return m.correlator.Submit(query.Query{
		ID:   queryInit,
		Slot: slotInit,
		Work: func() (interface{}, error) {
			names, err := catalog.ListAlbums()
			if err != nil {
				return nil, fmt.Errorf("list albums: %w", err)
			}
			return rootLoaded{names: names}, nil
		},
	})
}

// submitQueueLen refreshes the cached queue length. The cache is what the
// autoplay path reads when computing the index to start playback at.
func (m *Model) submitQueueLen() tea.Cmd {
	catalog := m.catalog
	return m.correlator.Submit(query.Query{
		ID:   queryQueueLen,
		Slot: slotQueueLen,
		Work: func() (interface{}, error) {
			n, err := catalog.QueueLen()
			if err != nil {
				return nil, fmt.Errorf("read queue length: %w", err)
			}
			return queueLenLoaded{length: n}, nil
		},
	})
}

// openOrPlay drills into the selected album, or enqueues the selected song.
// With autoplay set the enqueue is followed by a play command targeting the
// queue length cached before the enqueue was dispatched.
func (m *Model) openOrPlay(autoplay bool) tea.Cmd {
	current, ok := m.currentLevel().Selected()
	if !ok {
		return nil
	}
	switch path := m.stack.Path(); len(path) {
	case 0:
		album := current.Name
		origin, ok := m.stack.NextPath()
		if !ok {
			logging.Error(fmt.Errorf("open %q: no selection to descend into", album))
			return nil
		}
		catalog, sortMode := m.catalog, m.sort
		cmd := m.correlator.Submit(query.Query{
			ID:     queryOpenOrPlay,
			Slot:   slotOpen,
			Origin: origin,
			Work: func() (interface{}, error) {
				songs, err := fetchAlbumSongs(catalog, album, sortMode)
				if err != nil {
					return nil, err
				}
				return levelLoaded{items: browser.ItemsFromSongs(songs)}, nil
			},
		})
		m.stack.Push(browser.NewLevel(album, nil))
		m.stack.ClearPreview()
		m.loading = true
		events.UI.Open(origin, album)
		return cmd
	case 1:
		var playIndex *int
		if autoplay {
			// The queue length is read from the cache, not the server, at the
			// moment the key is pressed. A concurrent external queue change
			// between the enqueue and the play can make this index point at a
			// different song.
			index := m.queueLen
			playIndex = &index
		}
		return m.enqueueItem(current, nil, playIndex)
	default:
		logging.Error(fmt.Errorf("open: unexpected browse depth %d", len(path)))
		return nil
	}
}

// enqueueItem appends the selection to the play queue. Position nil means
// append. When playIndex is non-nil playback is started at that queue index
// after a successful enqueue.
func (m *Model) enqueueItem(item browser.Item, position, playIndex *int) tea.Cmd {
	catalog := m.catalog
	switch path := m.stack.Path(); len(path) {
	case 0:
		album := item.EntryName()
		events.UI.Enqueue(album, "")
		return func() tea.Msg {
			if err := catalog.FindAdd(position, mpd.Filter{Tag: mpd.TagAlbum, Value: album}); err != nil {
				return actionResult{err: fmt.Errorf("add album %q to queue: %w", album, err)}
			}
			return actionResult{info: fmt.Sprintf("Album %q added to queue", album)}
		}
	case 1:
		album := path[0]
		file := item.EntryName()
		label := item.Label()
		events.UI.Enqueue(album, file)
		return func() tea.Msg {
			err := catalog.FindAdd(position,
				mpd.Filter{Tag: mpd.TagFile, Value: file},
				mpd.Filter{Tag: mpd.TagAlbum, Value: album},
			)
			if err != nil {
				return actionResult{err: fmt.Errorf("add %q from album %q to queue: %w", label, album, err)}
			}
			if playIndex != nil {
				if err := catalog.Play(*playIndex); err != nil {
					return actionResult{err: fmt.Errorf("start playback at %d: %w", *playIndex, err)}
				}
				events.UI.Play(*playIndex)
			}
			return actionResult{info: fmt.Sprintf("%q added to queue", label)}
		}
	default:
		logging.Error(fmt.Errorf("enqueue: unexpected browse depth %d", len(path)))
		return nil
	}
}

// enqueueSelected is the plain add binding.
func (m *Model) enqueueSelected() tea.Cmd {
	current, ok := m.currentLevel().Selected()
	if !ok {
		return nil
	}
	return m.enqueueItem(current, nil, nil)
}

// enqueueAll adds everything under the current browse position: the whole
// catalog at the root, the whole album inside one.
func (m *Model) enqueueAll() tea.Cmd {
	catalog := m.catalog
	switch path := m.stack.Path(); len(path) {
	case 0:
		return func() tea.Msg {
			if err := catalog.AddAll(); err != nil {
				return actionResult{err: fmt.Errorf("add all albums to queue: %w", err)}
			}
			return actionResult{info: "All albums added to queue"}
		}
	case 1:
		album := path[0]
		return func() tea.Msg {
			if err := catalog.FindAdd(nil, mpd.Filter{Tag: mpd.TagAlbum, Value: album}); err != nil {
				return actionResult{err: fmt.Errorf("add album %q to queue: %w", album, err)}
			}
			return actionResult{info: fmt.Sprintf("Album %q added to queue", album)}
		}
	default:
		logging.Error(fmt.Errorf("enqueue all: unexpected browse depth %d", len(path)))
		return nil
	}
}

// preparePreview schedules a fresh preview for the current selection and
// discards whatever preview was on display.
func (m *Model) preparePreview() tea.Cmd {
	m.stack.ClearPreview()
	m.previewScroll = 0
	current, ok := m.currentLevel().Selected()
	if !ok {
		return nil
	}
	origin := m.stack.Path()
	catalog, sortMode := m.catalog, m.sort
	switch len(origin) {
	case 0:
		album := current.EntryName()
		return m.correlator.Submit(query.Query{
			ID:     queryPreview,
			Slot:   slotPreview,
			Origin: origin,
			Work: func() (interface{}, error) {
				songs, err := fetchAlbumSongs(catalog, album, sortMode)
				if err != nil {
					return nil, err
				}
				lines := make([]string, 0, len(songs))
				for _, song := range songs {
					lines = append(lines, song.DisplayTitle())
				}
				return previewLoaded{preview: browser.ListPreview(origin, album, lines)}, nil
			},
		})
	case 1:
		album := origin[0]
		file := current.EntryName()
		return m.correlator.Submit(query.Query{
			ID:     queryPreview,
			Slot:   slotPreview,
			Origin: origin,
			Work: func() (interface{}, error) {
				song, err := findSong(catalog, album, file, sortMode)
				if err != nil {
					return nil, err
				}
				return previewLoaded{preview: browser.SongPreview(origin, song)}, nil
			},
		})
	default:
		logging.Error(fmt.Errorf("preview: unexpected browse depth %d", len(origin)))
		return nil
	}
}

func fetchAlbumSongs(catalog Catalog, album string, mode mpd.SortMode) ([]mpd.Song, error) {
	songs, err := catalog.Find(mpd.Filter{Tag: mpd.TagAlbum, Value: album})
	if err != nil {
		return nil, fmt.Errorf("list songs of album %q: %w", album, err)
	}
	mpd.SortSongs(songs, mode)
	return songs, nil
}

func findSong(catalog Catalog, album, file string, mode mpd.SortMode) (mpd.Song, error) {
	songs, err := catalog.Find(
		mpd.Filter{Tag: mpd.TagFile, Value: file},
		mpd.Filter{Tag: mpd.TagAlbum, Value: album},
	)
	if err != nil {
		return mpd.Song{}, fmt.Errorf("find song %q in album %q: %w", file, album, err)
	}
	if len(songs) == 0 {
		return mpd.Song{}, fmt.Errorf("expected to find exactly one song: album %q, file %q", album, file)
	}
	mpd.SortSongs(songs, mode)
	return songs[0], nil
}
