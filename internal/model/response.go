package model

// Response is the envelope every API endpoint returns: a data payload,
// a human-readable message, and a success flag.
type Response struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// OK builds a successful response envelope.
func OK(data any, message string) Response {
	return Response{Data: data, Message: message, Success: true}
}

// Fail builds a failed response envelope with an empty data payload.
func Fail(message string) Response {
	return Response{Data: map[string]any{}, Message: message, Success: false}
}

// GatewayError is the uniform envelope the gateway synthesizes when the
// upstream backend fails or is unreachable.
type GatewayError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}
