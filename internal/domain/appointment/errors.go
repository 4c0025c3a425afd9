package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrEmployeeConflict    = errors.New("the employee has another appointment during this time")
	ErrVisitorConflict     = errors.New("the visitor has another appointment during this time")
	ErrScheduledInPast     = errors.New("appointment start date cannot be in the past")
	ErrEndNotAfterStart    = errors.New("appointment end date must be later than start date")
)
