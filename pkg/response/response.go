package response

import "errors"

type Response struct {
	ResponseError `json:"error,omitzero"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error Codes
type ErrCode string

var (
	FAILED_REQUEST   ErrCode = "REQUEST_FAILED"
	BAD_REQUEST      ErrCode = "FAILED_TO_DECODE"
	NOT_FOUND        ErrCode = "NOT_FOUND"
	UNAUTHORIZED     ErrCode = "UNAUTHORIZED"
	VALIDATION       ErrCode = "VALIDATION_FAILED"
	EMPTY_SELECTION  ErrCode = "EMPTY_SELECTION"
	BOOKING_REJECTED ErrCode = "BOOKING_REJECTED"
)

var (
	ErrBadRequest     = errors.New("bad request")
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("missing or invalid credentials")
	ErrEmptySelection = errors.New("no slots selected")
)

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}
