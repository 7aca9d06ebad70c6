package response

// Response тело успешного create/update/delete.
type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse тело ошибки: сообщение для пользователя и текст причины.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func Success(message string, data interface{}) Response {
	return Response{
		Message: message,
		Data:    data,
	}
}

func Error(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
