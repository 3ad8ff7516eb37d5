package service

import "errors"

// Sentinel errors for user-visible outcomes. Handlers match these with
// errors.Is and turn them into ephemeral replies; everything else is an
// infrastructure failure wrapped with fmt.Errorf("...: %w", err).
var (
	// ErrNotConfigured is returned when a guild is missing the log or update
	// channel required to accept requests.
	ErrNotConfigured = errors.New("game update system is not fully configured")

	// ErrPermissionDenied is returned when the acting member is neither an
	// administrator nor a holder of a management role. It carries no detail
	// about which check failed.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrRequestNotFound is returned when a request id is not in the registry.
	// This covers both "already resolved by someone else" and "never existed
	// or lost to a restart"; callers cannot distinguish the two.
	ErrRequestNotFound = errors.New("request not found")
)
