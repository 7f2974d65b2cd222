/**
 * @description
 * Typed errors for the membership lifecycle. Handlers map these to HTTP
 * statuses; the batch job uses them to decide what is fatal to a run and
 * what is only fatal to one item.
 */
package domain

import (
	"fmt"
	"strings"
)

// DefaultRejectionReason is recorded when an admin rejects an application
// without supplying a reason.
const DefaultRejectionReason = "Application did not meet membership criteria"

// FieldError describes one invalid or missing application field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full set of field-level problems found in an
// application draft. Nothing is persisted when one is returned.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// InvalidStateTransitionError reports an operation attempted from a status
// that does not permit it. The record is left unchanged.
type InvalidStateTransitionError struct {
	Current   Status
	Attempted Status
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.Current, e.Attempted)
}

// PreconditionError reports a document requested for a member that is missing
// a required derived input, e.g. no activation timestamp. In batch contexts
// the item is skipped, not fatal.
type PreconditionError struct {
	MemberID int64
	Missing  string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("member %d: missing %s", e.MemberID, e.Missing)
}

// ExternalServiceError wraps a failure from a collaborator such as the mail
// provider or the payment gateway.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
