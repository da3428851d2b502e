package response

// 规范化的错误消息
const (
	MsgInvalidParam = "invalid request parameters"
	MsgUnauthorized = "authentication required"
	MsgForbidden    = "permission denied"
	MsgNotFound     = "resource not found"
	MsgServerError  = "internal server error"
	MsgTooMany      = "too many requests"
)
