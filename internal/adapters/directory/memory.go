package directory

import (
	"context"

	"github.com/cadencehq/cadence/internal/domain/entry"
)

// MemoryDirectory serves a fixed set of people. Used by tests and as the
// dev backend when no upstream directory is configured.
type MemoryDirectory struct {
	people []Person
}

// NewMemoryDirectory builds a directory over the given people.
func NewMemoryDirectory(people []Person) *MemoryDirectory {
	normalized := make([]Person, 0, len(people))
	for _, p := range people {
		normalized = append(normalized, normalize(p))
	}
	return &MemoryDirectory{people: normalized}
}

// Lookup resolves a username.
func (d *MemoryDirectory) Lookup(_ context.Context, username string) (Person, error) {
	for _, p := range d.people {
		if p.Username == username {
			return p, nil
		}
	}
	return Person{}, ErrNotFound
}

// ByEmail resolves an email address.
func (d *MemoryDirectory) ByEmail(_ context.Context, email string) (Person, error) {
	email = entry.NormalizeIdentity(email)
	for _, p := range d.people {
		if p.Email == email {
			return p, nil
		}
	}
	return Person{}, ErrNotFound
}

// Reports returns the manager's direct reports.
func (d *MemoryDirectory) Reports(_ context.Context, managerEmail string) ([]Person, error) {
	managerEmail = entry.NormalizeIdentity(managerEmail)
	var reports []Person
	for _, p := range d.people {
		if p.ManagerEmail == managerEmail {
			reports = append(reports, p)
		}
	}
	return reports, nil
}

// Managers returns every person with at least one direct report.
func (d *MemoryDirectory) Managers(_ context.Context) ([]Person, error) {
	managed := make(map[string]bool)
	for _, p := range d.people {
		if p.ManagerEmail != "" {
			managed[p.ManagerEmail] = true
		}
	}
	var managers []Person
	for _, p := range d.people {
		if managed[p.Email] {
			managers = append(managers, p)
		}
	}
	return managers, nil
}
