package handlers

import "github.com/danielgtaylor/huma/v2"

// ErrorBody is the JSON error shape of every non-2xx response: {"error": "..."}.
type ErrorBody struct {
	Message string `doc:"Human readable error message" example:"invalid url" json:"error"`

	status int
}

func (e *ErrorBody) Error() string {
	return e.Message
}

func (e *ErrorBody) GetStatus() int {
	return e.status
}

// NewError builds an ErrorBody. It replaces huma's default problem+json model
// so framework errors share the API's error shape.
func NewError(status int, msg string, _ ...error) huma.StatusError {
	return &ErrorBody{Message: msg, status: status}
}

func init() {
	huma.NewError = NewError
}
