package match

import (
	"math/rand/v2"
	"strings"
)

const roomIdLength = 4

const roomIdCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newRoomId generates a short human-typed room code.
func newRoomId() string {
	var b [roomIdLength]byte
	for i := range b {
		b[i] = roomIdCharset[rand.IntN(len(roomIdCharset))]
	}
	return string(b[:])
}

// NormalizeRoomId maps user input onto the stored key form; room codes
// are matched case-insensitively.
func NormalizeRoomId(roomId string) string {
	return strings.ToUpper(strings.TrimSpace(roomId))
}
