package domain

import (
	"errors"
	"fmt"
)

// Status is the lifecycle state of a single product.
type Status string

const (
	// StatusManufactured and StatusInStock are transient bulk states that
	// apply before field deployment.
	StatusManufactured Status = "manufactured"
	StatusInStock      Status = "in_stock"
	StatusInstalled    Status = "installed"
	StatusInCondition  Status = "in_condition"
	StatusFailure      Status = "failure"
	// StatusNeedsReplacement is terminal. It is reached only by explicit
	// operator escalation from failure, never derived from an inspection.
	StatusNeedsReplacement Status = "needs_replacement"
)

func (s Status) Valid() bool {
	switch s {
	case StatusManufactured, StatusInStock, StatusInstalled,
		StatusInCondition, StatusFailure, StatusNeedsReplacement:
		return true
	default:
		return false
	}
}

var (
	ErrNotFound           = errors.New("product_not_found")
	ErrPreconditionFailed = errors.New("precondition_failed")
)

// PreconditionError rejects a lifecycle event arriving out of order. Required
// names the prior event that has not happened yet, so callers can render a
// specific message.
type PreconditionError struct {
	Current  Status
	Required string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition_failed: product is %s, requires %s first", e.Current, e.Required)
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPreconditionFailed
}

// CanInstall reports whether an installation event is admissible. Products
// must have been received at a depot first; a product already in the field
// cannot be re-installed.
func CanInstall(s Status) error {
	switch s {
	case StatusInStock:
		return nil
	case StatusManufactured:
		return &PreconditionError{Current: s, Required: "depot receipt"}
	default:
		return &PreconditionError{Current: s, Required: "product in stock"}
	}
}

// CanInspect reports whether an inspection may be recorded. Inspections
// require a prior installation; the terminal needs_replacement state still
// accepts inspection records, it just never transitions again.
func CanInspect(s Status) error {
	switch s {
	case StatusInstalled, StatusInCondition, StatusFailure, StatusNeedsReplacement:
		return nil
	default:
		return &PreconditionError{Current: s, Required: "installation"}
	}
}

// NextAfterInspection maps the classifier verdict onto the lifecycle.
// in_condition and failure reclassify each other on later inspections;
// needs_replacement is never left.
func NextAfterInspection(s Status, failed bool) Status {
	if s == StatusNeedsReplacement {
		return StatusNeedsReplacement
	}
	if failed {
		return StatusFailure
	}
	return StatusInCondition
}

// CanEscalate reports whether the operator may mark the product for
// replacement. Escalation is only defined from failure.
func CanEscalate(s Status) error {
	if s == StatusFailure {
		return nil
	}
	return &PreconditionError{Current: s, Required: "failed inspection"}
}
