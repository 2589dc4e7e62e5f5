// Package guard implements the constructor-guard pattern used by commands,
// queries and value objects to reject zero-value instances that bypassed
// their designated constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error was supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes properly constructed objects from zero
// values. Embed one in a struct and set it via NewConstructorGuard inside the
// constructor; Validate then fails for any instance created without it.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the embedding object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed objects. For zero values it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
