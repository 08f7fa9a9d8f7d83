// Package common defines sentinel errors shared by the storage, store,
// service and CLI layers of PromptKeeper. Callers should use errors.Is to
// match these values; producers wrap them with fmt.Errorf("%w: ...").
package common

import "errors"

var (
	// ErrValidation reports bad input shape or range (empty title or content,
	// invalid model name, oversized note text, non-text estimator input).
	// It is surfaced to the user.
	ErrValidation = errors.New("validation error")

	// ErrStorage reports a serialize, deserialize or write failure at the
	// persisted store boundary. It is logged and degrades gracefully.
	ErrStorage = errors.New("storage error")

	// ErrImport reports a malformed import payload. The whole import is
	// aborted; nothing is merged.
	ErrImport = errors.New("import error")

	// ErrNotFound is returned by lookups that have no silent no-op policy.
	ErrNotFound = errors.New("not found")
)
