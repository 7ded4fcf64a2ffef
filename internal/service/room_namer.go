package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

const roomPrefix = "gs-sess-"

// RoomNamer produces globally unique, unguessable room identifiers: a fixed
// prefix, 128 bits from crypto/rand and a unix-nano tick so two calls in the
// same instant still differ. Collisions are not checked against the store;
// the unique constraint on sessions.room surfaces them as a conflict.
type RoomNamer struct{}

// NewRoomNamer constructs the namer.
func NewRoomNamer() *RoomNamer {
	return &RoomNamer{}
}

// Generate returns a fresh room identifier.
func (n *RoomNamer) Generate() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("room entropy: %w", err)
	}
	tick := strconv.FormatInt(time.Now().UnixNano(), 36)
	return roomPrefix + hex.EncodeToString(buf[:]) + "-" + tick, nil
}
