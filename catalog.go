package driftgrid

import (
	"encoding/json"
	"fmt"
	"log"
)

// MediaKind distinguishes how a tile's content is presented.
type MediaKind uint8

const (
	MediaImage MediaKind = iota // still image
	MediaVideo                  // video with a poster frame shown until playback
)

// MediaID uniquely identifies a catalog entry.
type MediaID string

// MediaItem describes one piece of media the grid can display. Value type;
// the engine hands copies to the sink and never mutates an item after load.
type MediaItem struct {
	ID MediaID
	// Kind selects image or video presentation.
	Kind MediaKind
	// Sources are candidate URLs in preference order. The first entry is
	// used; later ones are fallbacks for the host to try on failure.
	Sources []string
	// Poster is the still shown before video playback. When empty for a
	// video, PosterURL derives a frame reference from the source.
	Poster string
	// Title and Year are passthrough display metadata.
	Title string
	Year  int
}

// posterFrameOffset is the timestamp used when deriving a poster frame
// reference from a video source that has no explicit poster.
const posterFrameOffset = 1.2

// Source returns the preferred source URL, or "" when none exist.
func (m MediaItem) Source() string {
	if len(m.Sources) == 0 {
		return ""
	}
	return m.Sources[0]
}

// PosterURL returns the still-frame surrogate for this item. Videos without
// an explicit poster get a media-fragment reference into their source so a
// host can show a frame without starting playback.
func (m MediaItem) PosterURL() string {
	if m.Poster != "" {
		return m.Poster
	}
	src := m.Source()
	if src == "" {
		return ""
	}
	if m.Kind == MediaVideo {
		return fmt.Sprintf("%s#t=%.1f", src, posterFrameOffset)
	}
	return src
}

// Catalog is the fixed set of media the grid draws from. Entries keep their
// index for the catalog's lifetime; failed entries are marked unusable rather
// than removed, so coordinate hashing stays stable.
type Catalog struct {
	items    []MediaItem
	byID     map[MediaID]int
	unusable []bool
	usable   int
}

// NewCatalog builds a catalog from the given items. Entries with a duplicate
// ID keep the first occurrence; later ones are dropped with a debug warning.
func NewCatalog(items []MediaItem) *Catalog {
	c := &Catalog{
		items: make([]MediaItem, 0, len(items)),
		byID:  make(map[MediaID]int, len(items)),
	}
	for _, item := range items {
		if _, dup := c.byID[item.ID]; dup {
			if globalDebug {
				log.Printf("driftgrid: duplicate media id %q dropped", item.ID)
			}
			continue
		}
		c.byID[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}
	c.unusable = make([]bool, len(c.items))
	c.usable = len(c.items)
	return c
}

// LoadCatalog parses catalog JSON of the form
//
//	{"items": [{"id": "...", "kind": "video", "sources": ["..."],
//	            "poster": "...", "title": "...", "year": 2004}, ...]}
//
// Unknown kinds are an error so a typo cannot silently demote videos.
func LoadCatalog(jsonData []byte) (*Catalog, error) {
	var doc struct {
		Items []struct {
			ID      string   `json:"id"`
			Kind    string   `json:"kind"`
			Sources []string `json:"sources"`
			Poster  string   `json:"poster"`
			Title   string   `json:"title"`
			Year    int      `json:"year"`
		} `json:"items"`
	}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("driftgrid: failed to parse catalog JSON: %w", err)
	}
	items := make([]MediaItem, 0, len(doc.Items))
	for i, e := range doc.Items {
		if e.ID == "" {
			return nil, fmt.Errorf("driftgrid: catalog item %d has no id", i)
		}
		var kind MediaKind
		switch e.Kind {
		case "image", "":
			kind = MediaImage
		case "video":
			kind = MediaVideo
		default:
			return nil, fmt.Errorf("driftgrid: catalog item %q has unknown kind %q", e.ID, e.Kind)
		}
		items = append(items, MediaItem{
			ID:      MediaID(e.ID),
			Kind:    kind,
			Sources: e.Sources,
			Poster:  e.Poster,
			Title:   e.Title,
			Year:    e.Year,
		})
	}
	return NewCatalog(items), nil
}

// Len returns the total number of entries, including unusable ones.
func (c *Catalog) Len() int {
	return len(c.items)
}

// UsableLen returns the number of entries not marked unusable.
func (c *Catalog) UsableLen() int {
	return c.usable
}

// Item returns the entry at index i.
func (c *Catalog) Item(i int) MediaItem {
	return c.items[i]
}

// ByID returns the entry with the given ID.
func (c *Catalog) ByID(id MediaID) (MediaItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return MediaItem{}, false
	}
	return c.items[i], true
}

// IndexOf returns the index of the entry with the given ID, or -1.
func (c *Catalog) IndexOf(id MediaID) int {
	i, ok := c.byID[id]
	if !ok {
		return -1
	}
	return i
}

// MarkUnusable flags an entry so the picker stops selecting it. The entry
// keeps its index; tiles already showing it are the engine's concern.
func (c *Catalog) MarkUnusable(id MediaID) {
	i, ok := c.byID[id]
	if !ok || c.unusable[i] {
		return
	}
	c.unusable[i] = true
	c.usable--
	if globalDebug {
		log.Printf("driftgrid: media %q marked unusable (%d/%d remain)", id, c.usable, len(c.items))
	}
}

// Usable reports whether the entry at index i may still be assigned.
func (c *Catalog) Usable(i int) bool {
	return i >= 0 && i < len(c.unusable) && !c.unusable[i]
}
