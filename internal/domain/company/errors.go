package company

import "errors"

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrNameTaken       = errors.New("a company with this name already exists")
)
