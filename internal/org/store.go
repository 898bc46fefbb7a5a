package org

import "context"

// Storage collaborator interfaces. Each store is an id-keyed lookup with
// persist-on-write semantics; lookups return (nil, nil) when no row matches.
// Cross-record consistency is the caller's responsibility: reciprocal link
// updates are two ordered writes, not one transaction.

// UserStore persists users.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*User, error)
	// FindByUsername looks a user up by the system-wide unique username.
	FindByUsername(ctx context.Context, username string) (*User, error)
	// FindByIDs returns the users whose ids are in ids, in any order.
	// Unknown ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) ([]*User, error)
	Save(ctx context.Context, u *User) error
	SaveAll(ctx context.Context, us []*User) error
	Delete(ctx context.Context, id string) error
}

// CompanyStore persists companies.
type CompanyStore interface {
	FindByID(ctx context.Context, id string) (*Company, error)
	Save(ctx context.Context, c *Company) error
	SaveAll(ctx context.Context, cs []*Company) error
}

// TeamStore persists teams.
type TeamStore interface {
	FindByID(ctx context.Context, id string) (*Team, error)
	FindByCompanyID(ctx context.Context, companyID string) ([]*Team, error)
	Save(ctx context.Context, t *Team) error
	SaveAll(ctx context.Context, ts []*Team) error
	Delete(ctx context.Context, id string) error
}

// ProjectStore persists projects.
type ProjectStore interface {
	FindByID(ctx context.Context, id string) (*Project, error)
	FindByTeamID(ctx context.Context, teamID string) ([]*Project, error)
	Save(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
}

// AnnouncementStore persists announcements.
type AnnouncementStore interface {
	FindByID(ctx context.Context, id string) (*Announcement, error)
	// FindByCompanyID returns a company's announcements, newest first.
	FindByCompanyID(ctx context.Context, companyID string) ([]*Announcement, error)
	Save(ctx context.Context, a *Announcement) error
	Delete(ctx context.Context, id string) error
}

// Stores bundles the five storage collaborators for wiring.
type Stores struct {
	Users         UserStore
	Companies     CompanyStore
	Teams         TeamStore
	Projects      ProjectStore
	Announcements AnnouncementStore
}
