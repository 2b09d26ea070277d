package driftgrid

import "testing"

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-drag", "after-drag"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	h := &host{}
	h.queueScreenshot("a")
	h.queueScreenshot("b")
	h.queueScreenshot("c")
	if len(h.shots) != 3 {
		t.Fatalf("queue len = %d, want 3", len(h.shots))
	}
	if h.shots[0] != "a" || h.shots[1] != "b" || h.shots[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", h.shots)
	}
}
