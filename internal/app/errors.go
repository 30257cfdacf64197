package app

import "errors"

// Domain outcomes. Handlers map each to a status code and message; anything
// else returned by a service is an infrastructure failure.
var (
	ErrUserExists        = errors.New("user already exists")
	ErrBadCredentials    = errors.New("email or password does not meet requirements")
	ErrEmailNotFound     = errors.New("email not found")
	ErrLoginFailed       = errors.New("password does not match")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrTooManyRequests   = errors.New("too many reset requests")
	ErrBadPasswordFormat = errors.New("password does not meet requirements")
	ErrInvalidResetToken = errors.New("invalid reset token")
	ErrBlogNotFound      = errors.New("blog not found")
)
