package stats

import "fmt"

// StorageTimeoutError means the store did not answer within the
// per-request timeout.
type StorageTimeoutError struct {
	Err error
}

func (e *StorageTimeoutError) Error() string { return fmt.Sprintf("storage timeout: %v", e.Err) }
func (e *StorageTimeoutError) Unwrap() error { return e.Err }

// StorageUnavailableError means the store refused or failed the query for
// a reason other than the timeout.
type StorageUnavailableError struct {
	Err error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable: %v", e.Err)
}
func (e *StorageUnavailableError) Unwrap() error { return e.Err }

// SchemaMismatchError means a produced row does not match what the registry
// declares for its table. This is an internal-consistency fault, never a
// user-facing condition, and is never silently defaulted.
type SchemaMismatchError struct {
	Table  string
	Column string
	Detail string
}

func (e *SchemaMismatchError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("schema mismatch on %s.%s: %s", e.Table, e.Column, e.Detail)
	}
	return fmt.Sprintf("schema mismatch: table %s is missing column %s", e.Table, e.Column)
}
