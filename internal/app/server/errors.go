package server

var (
	ErrStatusRoomNotFound   string = "ROOM_NOT_FOUND"
	ErrStatusColorConflict  string = "COLOR_CONFLICT"
	ErrStatusRoomFull       string = "ROOM_FULL"
	ErrStatusCreationFailed string = "CREATION_FAILED"
	ErrStatusInvalidPayload string = "INVALID_PAYLOAD"
)
