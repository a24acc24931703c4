package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrCategoryNameTaken  = errors.New("category with this name already exists")
	ErrCategoryNotEmpty   = errors.New("category still has quizzes")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
)
