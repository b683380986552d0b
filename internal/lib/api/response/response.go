package response

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Detail  string      `json:"error,omitempty"`
}

// Ok wraps data into a success envelope.
func Ok(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// OkMessage reports success without a data payload.
func OkMessage(message string) Response {
	return Response{
		Success: true,
		Message: message,
	}
}

// Error builds a failure envelope with a client-facing message.
func Error(message string) Response {
	return Response{
		Success: false,
		Message: message,
	}
}

// ErrorDetail attaches the underlying error text for internal tooling.
func ErrorDetail(message string, err error) Response {
	resp := Error(message)
	if err != nil {
		resp.Detail = err.Error()
	}
	return resp
}
