package services

import "errors"

// User-facing failures. The lifecycle errors wrap an internal cause that is
// logged and still reachable through errors.Unwrap, but their messages stay
// generic so storage details never leak to callers.
var (
	ErrProfileCreationFailed = errors.New("we were unable to generate your profile, please try again later")
	ErrProfileUpdateFailed   = errors.New("we were unable to update your profile")
	ErrProfileDeletionFailed = errors.New("we were unable to delete this profile")
	ErrTermsNotAccepted      = errors.New("you must agree to the terms and conditions")
)

// profileError pairs a user-safe sentinel with the internal cause.
// errors.Is matches the sentinel; errors.Unwrap walks to the cause.
type profileError struct {
	sentinel error
	cause    error
}

func (e *profileError) Error() string { return e.sentinel.Error() }

func (e *profileError) Is(target error) bool { return target == e.sentinel }

func (e *profileError) Unwrap() error { return e.cause }
