// Package guard detects domain objects that bypassed their constructor.
package guard

import "errors"

var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in value objects, aggregates and commands.
// Only constructors call NewConstructorGuard, so a zero-value struct fails Validate.
//
//	type SplitConfig struct {
//	    organizer Percentage
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c SplitConfig) Validate() error {
//	    return c.guard.Validate(ErrSplitConfigNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
