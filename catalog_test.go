package driftgrid

import (
	"strings"
	"testing"
)

func testItems(n int) []MediaItem {
	items := make([]MediaItem, n)
	for i := range items {
		kind := MediaImage
		if i%3 == 0 {
			kind = MediaVideo
		}
		items[i] = MediaItem{
			ID:      MediaID(rune('a' + i)),
			Kind:    kind,
			Sources: []string{"https://cdn.test/m" + string(rune('a'+i)) + ".mp4"},
			Title:   "Item " + string(rune('A'+i)),
			Year:    2000 + i,
		}
	}
	return items
}

func TestNewCatalogDedupes(t *testing.T) {
	items := []MediaItem{
		{ID: "x", Title: "first"},
		{ID: "y"},
		{ID: "x", Title: "second"},
	}
	c := NewCatalog(items)
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	got, ok := c.ByID("x")
	if !ok || got.Title != "first" {
		t.Errorf("ByID(x) = %+v, want first occurrence kept", got)
	}
}

func TestCatalogMarkUnusable(t *testing.T) {
	c := NewCatalog(testItems(5))
	if c.UsableLen() != 5 {
		t.Fatalf("UsableLen = %d, want 5", c.UsableLen())
	}
	c.MarkUnusable("b")
	if c.UsableLen() != 4 {
		t.Errorf("UsableLen after mark = %d, want 4", c.UsableLen())
	}
	if c.Usable(c.IndexOf("b")) {
		t.Error("entry b still usable after MarkUnusable")
	}
	// Marking twice must not double-decrement.
	c.MarkUnusable("b")
	if c.UsableLen() != 4 {
		t.Errorf("UsableLen after double mark = %d, want 4", c.UsableLen())
	}
	// Unknown IDs are ignored.
	c.MarkUnusable("nope")
	if c.UsableLen() != 4 {
		t.Errorf("UsableLen after unknown mark = %d, want 4", c.UsableLen())
	}
}

func TestCatalogIndexOf(t *testing.T) {
	c := NewCatalog(testItems(3))
	if got := c.IndexOf("a"); got != 0 {
		t.Errorf("IndexOf(a) = %d, want 0", got)
	}
	if got := c.IndexOf("missing"); got != -1 {
		t.Errorf("IndexOf(missing) = %d, want -1", got)
	}
}

func TestPosterURL(t *testing.T) {
	tests := []struct {
		name string
		item MediaItem
		want string
	}{
		{
			"explicit poster wins",
			MediaItem{Kind: MediaVideo, Sources: []string{"v.mp4"}, Poster: "p.jpg"},
			"p.jpg",
		},
		{
			"video derives frame reference",
			MediaItem{Kind: MediaVideo, Sources: []string{"v.mp4"}},
			"v.mp4#t=1.2",
		},
		{
			"image uses its source",
			MediaItem{Kind: MediaImage, Sources: []string{"i.jpg"}},
			"i.jpg",
		},
		{
			"no sources",
			MediaItem{Kind: MediaVideo},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.PosterURL(); got != tt.want {
				t.Errorf("PosterURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	data := []byte(`{
		"items": [
			{"id": "m1", "kind": "video", "sources": ["a.mp4", "b.mp4"], "title": "One", "year": 1999},
			{"id": "m2", "sources": ["c.jpg"]},
			{"id": "m3", "kind": "image", "poster": "d.png"}
		]
	}`)
	c, err := LoadCatalog(data)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	m1, _ := c.ByID("m1")
	if m1.Kind != MediaVideo || m1.Source() != "a.mp4" || m1.Year != 1999 {
		t.Errorf("m1 = %+v", m1)
	}
	// Missing kind defaults to image.
	m2, _ := c.ByID("m2")
	if m2.Kind != MediaImage {
		t.Errorf("m2.Kind = %v, want MediaImage", m2.Kind)
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	if _, err := LoadCatalog([]byte("{")); err == nil {
		t.Error("malformed JSON: want error")
	}
	if _, err := LoadCatalog([]byte(`{"items":[{"id":"x","kind":"hologram"}]}`)); err == nil {
		t.Error("unknown kind: want error")
	} else if !strings.Contains(err.Error(), "hologram") {
		t.Errorf("error %q does not name the bad kind", err)
	}
	if _, err := LoadCatalog([]byte(`{"items":[{"kind":"image"}]}`)); err == nil {
		t.Error("missing id: want error")
	}
}
