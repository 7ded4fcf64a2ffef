package service

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestGenerateRoomFormat(t *testing.T) {
	namer := NewRoomNamer()
	room, err := namer.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(room, "gs-sess-") {
		t.Fatalf("room %q missing prefix", room)
	}

	rest := strings.TrimPrefix(room, "gs-sess-")
	sep := strings.IndexByte(rest, '-')
	if sep != 32 {
		t.Fatalf("room %q: entropy segment is %d chars, want 32", room, sep)
	}
	if _, err := hex.DecodeString(rest[:sep]); err != nil {
		t.Fatalf("room %q: entropy segment not hex: %v", room, err)
	}
	if rest[sep+1:] == "" {
		t.Fatalf("room %q: missing tick segment", room)
	}
}

func TestGenerateRoomUniqueness(t *testing.T) {
	namer := NewRoomNamer()
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		room, err := namer.Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if _, dup := seen[room]; dup {
			t.Fatalf("duplicate room %q after %d generations", room, i)
		}
		seen[room] = struct{}{}
	}
}
