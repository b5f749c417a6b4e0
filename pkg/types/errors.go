// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Sentinel errors for the pipeline. Stages wrap them with context using
// fmt.Errorf("...: %w", ...); callers test with errors.Is. Errors coming
// back from the catalog adapter are not wrapped in any of these.
var (
	// ErrMissingQuery is returned when no artist, song, or filter is given.
	ErrMissingQuery = errors.New("missing query: provide an artist (-a), a song (-s), or a filter")

	// ErrNotFound is returned for zero search matches or an empty preset slot.
	ErrNotFound = errors.New("not found")

	// ErrParse is returned for a malformed numeric or range criterion.
	ErrParse = errors.New("invalid criterion")

	// ErrRange is returned for a criterion bound outside the feature's domain.
	ErrRange = errors.New("criterion out of range")

	// ErrInconsistentResponse is returned when the catalog's track and feature
	// lists are not index-aligned.
	ErrInconsistentResponse = errors.New("inconsistent catalog response")
)
