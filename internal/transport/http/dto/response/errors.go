package response

const (
	MsgServerError     = "Server error"
	MsgUnsupportedFile = "Unsupported file"
	MsgInvalidBody     = "Invalid request body"
	MsgStatsFailed     = "Failed to fetch stats"
	MsgNotification    = "Failed to send notification"
)

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Message: MsgInvalidBody,
	}

	ErrStats = ErrorResponse{
		Message: MsgStatsFailed,
	}
)
