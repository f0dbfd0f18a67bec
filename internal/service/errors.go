package service

import "fmt"

var (
	ErrInvalidLevel    = fmt.Errorf("invalid log level")
	ErrEmptyMessage    = fmt.Errorf("message must not be empty")
	ErrCannotCreateLog = fmt.Errorf("cannot create log")

	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidToken       = fmt.Errorf("invalid or expired token")

	ErrUserNotFound     = fmt.Errorf("user not found")
	ErrEmailTaken       = fmt.Errorf("email is already in use")
	ErrEmailRequired    = fmt.Errorf("email is required")
	ErrPasswordRequired = fmt.Errorf("password is required")
	ErrPasswordTooShort = fmt.Errorf("password must be at least 6 characters")
	ErrWrongPassword    = fmt.Errorf("current password is incorrect")
	ErrSelfAction       = fmt.Errorf("cannot modify your own account")

	ErrTestUsersExist = fmt.Errorf("test users already exist")
	ErrDemoDisabled   = fmt.Errorf("demo mode is disabled")
)
