// models/errors.go
package models

import "errors"

// Business-rule rejections raised by the repayment ledger. These are
// expected failures: controllers surface the message verbatim to the
// caller and never log them as system errors.
var (
	ErrInvalidState        = errors.New("obligation is not in a repayable state")
	ErrScheduleNotApproved = errors.New("repayment schedule has not been approved")
	ErrAlreadySettled      = errors.New("obligation is already fully settled")
	ErrAllocationMismatch  = errors.New("principal and interest do not add up to the amount")
	ErrExceedsBalance      = errors.New("amount exceeds the remaining balance")
	ErrExceedsPrincipal    = errors.New("principal portion exceeds the remaining principal")
	ErrDuplicateReference  = errors.New("a repayment with this reference already exists")
	ErrNotFound            = errors.New("record not found")
)
