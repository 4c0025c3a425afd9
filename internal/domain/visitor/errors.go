package visitor

import "errors"

var (
	ErrVisitorNotFound = errors.New("visitor not found")
	ErrEmailTaken      = errors.New("a visitor with this email already exists")
)
