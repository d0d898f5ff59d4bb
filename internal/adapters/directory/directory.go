// Package directory resolves people: username to email, display names,
// and the manager to direct-reports graph.
package directory

import (
	"context"
	"errors"

	"github.com/cadencehq/cadence/internal/domain/entry"
)

// Person is one directory record. Emails are stored normalized.
type Person struct {
	Username     string
	Email        string
	FirstName    string
	ManagerEmail string
}

// Directory resolves people by username or email and walks the manager
// graph.
type Directory interface {
	// Lookup resolves a username to a person. Unknown usernames return
	// ErrNotFound.
	Lookup(ctx context.Context, username string) (Person, error)

	// ByEmail resolves an email to a person. Unknown emails return
	// ErrNotFound.
	ByEmail(ctx context.Context, email string) (Person, error)

	// Reports returns the manager's direct reports.
	Reports(ctx context.Context, managerEmail string) ([]Person, error)

	// Managers returns every person with at least one direct report.
	Managers(ctx context.Context) ([]Person, error)
}

// Sentinel kinds for directory errors.
var (
	ErrNotFound    = errors.New("person not found in directory")
	ErrUnavailable = errors.New("directory source unavailable")
)

// normalize canonicalizes a Person's emails in place.
func normalize(p Person) Person {
	p.Email = entry.NormalizeIdentity(p.Email)
	p.ManagerEmail = entry.NormalizeIdentity(p.ManagerEmail)
	return p
}
