package model

import "time"

// VisibilityPublic is the only visibility value the catalog lists.
const VisibilityPublic = "public"

// Repository is one entry from the organization repository listing.
// It is a read-only snapshot for a single fetch cycle.
type Repository struct {
	ID          int64
	Name        string
	FullName    string
	Owner       string
	Description string
	HTMLURL     string
	CloneURL    string
	Language    string
	Topics      []string
	Stars       int
	Forks       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PushedAt    time.Time
	Private     bool
	Visibility  string
}

// IsPublic reports whether the repository may be listed. A set private flag
// or any explicit visibility other than "public" excludes it.
func (r Repository) IsPublic() bool {
	if r.Private {
		return false
	}
	return r.Visibility == "" || r.Visibility == VisibilityPublic
}

// FileContent is a file payload returned by the contents API.
type FileContent struct {
	Path     string
	Content  string
	Encoding string
}
