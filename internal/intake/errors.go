package intake

import (
	"fmt"
	"strings"
)

// Reason categorizes why a batch was rejected
type Reason string

const (
	// ReasonMediaType indicates at least one candidate had a media type outside the accepted set
	ReasonMediaType Reason = "media_type"

	// ReasonCapacity indicates the batch would push the slot over its maximum
	ReasonCapacity Reason = "capacity"
)

// ValidationError describes a rejected drop on a single slot
type ValidationError struct {
	Slot     string   `json:"slot"`
	Reason   Reason   `json:"reason"`
	Rejected []string `json:"rejected,omitempty"`
	Message  string   `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Slot == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Slot, e.Message)
}

func newMediaTypeError(slot string, accepted, rejected []string) *ValidationError {
	return &ValidationError{
		Slot:     slot,
		Reason:   ReasonMediaType,
		Rejected: rejected,
		Message:  fmt.Sprintf("Some files were rejected. Please upload only %s files.", strings.Join(accepted, ", ")),
	}
}

func newCapacityError(slot string, maxCount int) *ValidationError {
	return &ValidationError{
		Slot:    slot,
		Reason:  ReasonCapacity,
		Message: fmt.Sprintf("You can only upload up to %d files.", maxCount),
	}
}
