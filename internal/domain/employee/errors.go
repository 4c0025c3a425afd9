package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailCollision   = errors.New("derived company email is already in use by another employee")
)
