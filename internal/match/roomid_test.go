package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRoomIdShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := newRoomId()
		assert.Regexp(t, `^[A-Z0-9]{4}$`, id)
	}
}

func TestNormalizeRoomId(t *testing.T) {
	assert.Equal(t, "AB12", NormalizeRoomId("ab12"))
	assert.Equal(t, "AB12", NormalizeRoomId("  Ab12 "))
	assert.Equal(t, "AB12", NormalizeRoomId("AB12"))
}
