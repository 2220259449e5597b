package model

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// NewID generates a best-effort unique record identifier from a random
// UUID, truncated to 63 bits so it stays a positive int64. Collision
// odds are negligible for a single ledger; a server-assigned sequence
// should replace it once records live in shared storage.
func NewID() int64 {
	u := uuid.New()
	return int64(binary.BigEndian.Uint64(u[:8]) >> 1)
}
