// Package errs provides the standardized error types used across the
// application: a sentinel error per failure class plus a typed error carrying
// details and an optional cause.
//
// Every type follows the same pattern: a sentinel variable (e.g.
// ErrObjectNotFound), a struct with the failure details, constructors with and
// without cause, Error() formatting, and Unwrap() so errors.Is matches the
// sentinel. VersionIsInvalidError doubles as the optimistic-concurrency
// conflict signal returned by conditional repository updates.
package errs
