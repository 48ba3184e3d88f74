package submission

import (
	"errors"
	"fmt"
	"strings"
)

// MissingDocumentsMessage is shown when a submit is attempted without both files
const MissingDocumentsMessage = "Please upload both RFP and Proposal documents."

// ErrSubmissionPending is returned when a request is already in flight
var ErrSubmissionPending = errors.New("submission already pending")

// ErrSubmissionComplete is returned after a success until Reset is called
var ErrSubmissionComplete = errors.New("submission already succeeded")

// PreconditionError is returned when a submit is attempted before both slots
// hold a document. No request is issued.
type PreconditionError struct {
	Missing []string
}

func (e *PreconditionError) Error() string {
	if len(e.Missing) == 0 {
		return MissingDocumentsMessage
	}
	return fmt.Sprintf("%s (missing: %s)", MissingDocumentsMessage, strings.Join(e.Missing, ", "))
}

// IsPrecondition checks if an error is a missing-document precondition
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
