// Package apperr описывает ошибки API: HTTP-статус, код приложения и сообщение.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code — машиночитаемый код ошибки приложения
type Code int

const (
	Unknown           Code = 1000
	EmptyList         Code = 1001
	NotFound          Code = 1002
	ValidationError   Code = 1003
	InvalidTG         Code = 1004
	Unauthorized      Code = 1005
	Forbidden         Code = 1006
	BadCredentials    Code = 1007
	UserAlreadyExists Code = 1008
	BadToken          Code = 1009
	AlreadyVerified   Code = 1010
	UploadFailed      Code = 1011
)

// Error — ошибка, которая отдаётся клиенту как {"error": {"code", "message"}}
type Error struct {
	Status  int
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is сравнивает ошибки по коду
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func New(status int, code Code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func Wrap(status int, code Code, message string, cause error) *Error {
	return &Error{Status: status, Code: code, Message: message, Cause: cause}
}

func NotFoundf(format string, args ...any) *Error {
	return New(http.StatusNotFound, NotFound, fmt.Sprintf(format, args...))
}

func Validation(message string) *Error {
	return New(http.StatusBadRequest, ValidationError, message)
}

func Internal(cause error) *Error {
	return Wrap(http.StatusInternalServerError, Unknown, "internal error", cause)
}

// From приводит произвольную ошибку к *Error; неизвестные ошибки становятся Unknown/500
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// Body — тело ответа с ошибкой
type Body struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Response — JSON-представление ошибки
type Response struct {
	Error Body `json:"error"`
}

// Response возвращает тело ответа; причина наружу не отдаётся
func (e *Error) Response() Response {
	return Response{Error: Body{Code: e.Code, Message: e.Message}}
}
