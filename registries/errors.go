package registries

import (
	"fmt"
)

// This error type is returned when a registry is sought but not configured.
type NotConfiguredError struct {
	Registry string
}

func (e NotConfiguredError) Error() string {
	return fmt.Sprintf("The registry '%s' is not configured", e.Registry)
}

// indicates that a DOI could not be resolved by the registry
type DOINotFoundError struct {
	DOI string
}

func (e DOINotFoundError) Error() string {
	return fmt.Sprintf("The DOI '%s' was not found", e.DOI)
}

// indicates that a given identifier is not a DOI at all
type InvalidDOIError struct {
	Identifier string
}

func (e InvalidDOIError) Error() string {
	return fmt.Sprintf("'%s' is not a valid DOI", e.Identifier)
}

// indicates that a registry exists but is currently unavailable
type UnavailableError struct {
	Registry, Message string
}

func (e UnavailableError) Error() string {
	return fmt.Sprintf("Cannot reach registry '%s': %s", e.Registry, e.Message)
}

// this error type is returned when a registry redirects a secure request to
// an insecure endpoint
type DowngradedRedirectError struct {
	Endpoint string
}

func (e DowngradedRedirectError) Error() string {
	return fmt.Sprintf("Refusing insecure redirect to '%s'", e.Endpoint)
}
