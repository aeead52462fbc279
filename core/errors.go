package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrNetwork rpc or http failure, including non-2xx responses
	ErrNetwork ErrorCode = 100001
	// ErrDecode response, call result or log could not be decoded
	ErrDecode ErrorCode = 100002
	// ErrUnknownEvent log topic0 matches no known event
	ErrUnknownEvent ErrorCode = 100003
	// ErrInvalidArgument bad id, address or flag
	ErrInvalidArgument ErrorCode = 100004
	// ErrNotFound market or contract does not exist
	ErrNotFound ErrorCode = 100005
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:         "unknown error",
	ErrNetwork:         "network error",
	ErrDecode:          "decode error",
	ErrUnknownEvent:    "unknown event",
	ErrInvalidArgument: "invalid argument",
	ErrNotFound:        "not found",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}
