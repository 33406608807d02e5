package driven

import "errors"

// Sentinel errors returned by single-starter lookups.
var (
	// ErrStarterNotFound indicates no listed starter has the requested slug.
	ErrStarterNotFound = errors.New("starter not found")

	// ErrReadmeNotFound indicates the repository has no README.
	ErrReadmeNotFound = errors.New("readme not found")
)
