package match

import "errors"

var (
	// ErrNotFound surfaces to the user; joining again with another id
	// is fine.
	ErrNotFound = errors.New("room not found")

	// ErrColorConflict means the joining color is already the host's.
	ErrColorConflict = errors.New("color already taken by host")

	// ErrRoomFull rejects a second distinct guest.
	ErrRoomFull = errors.New("room already has a guest")

	// ErrCreation wraps store-write failures at creation; retryable.
	ErrCreation = errors.New("failed to create match")

	ErrInvalidGameType = errors.New("invalid game type")
	ErrInvalidColor    = errors.New("invalid color")

	// ErrInvalidConfig rejects variant options outside the allowed
	// domain (round count, grid dimensions).
	ErrInvalidConfig = errors.New("invalid match config")

	// ErrContention reports an exhausted conditional-write retry loop;
	// the client may simply try again.
	ErrContention = errors.New("too much write contention")
)
