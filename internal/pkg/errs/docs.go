// Package errs holds the typed errors shared by the domain, the use cases and
// the HTTP adapter.
//
// Every type unwraps to one sentinel so callers classify with errors.Is:
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange: bad input (see IsValidation)
//   - ErrObjectNotFound: a referenced entity does not exist
//   - ErrStateConflict: the entity's current status forbids the operation
//   - ErrAccessDenied: the caller is known but not permitted
//
// Messages never contain line breaks, since they end up in logs and in
// HTTP error bodies.
package errs
