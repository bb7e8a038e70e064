package errors

// Message tokens carried by failure bodies. Existing clients match on these
// strings, so they must not change.
const (
	MsgBadRequest    = "bad request"
	MsgNotFound      = "resource not found"
	MsgUnauthorized  = "unauthorized"
	MsgForbidden     = "forbidden"
	MsgInternalError = "internal server error"
)
