// Package org implements the organizational-management core: companies that
// contain users, teams, projects and announcements, with credential-based
// authorization and reciprocal relationship maintenance between entities.
package org

import (
	"time"

	"github.com/google/uuid"
)

// newID mints an opaque, stable entity id.
func newID() string { return uuid.NewString() }

// Status is a user's membership lifecycle state.
type Status string

const (
	// StatusPending marks a user who has been added to a company but has
	// never logged in.
	StatusPending Status = "PENDING"
	// StatusJoined marks a user who has logged in at least once. JOINED is
	// required (together with Admin) for administrative actions.
	StatusJoined Status = "JOINED"
)

// Credentials is a username/password pair. The username is unique across the
// whole system.
type Credentials struct {
	Username string
	Password string
}

// Profile holds a user's contact details.
type Profile struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// User is an employee of one or more companies. Relationship links are
// stored redundantly on both sides (user ids on the parent, parent ids
// here); the Links helpers are the only code allowed to mutate them.
type User struct {
	ID          string
	Profile     Profile
	Credentials Credentials
	Active      bool
	Admin       bool
	Status      Status
	CompanyIDs  []string
	TeamIDs     []string
	// AnnouncementIDs lists announcements authored by this user.
	AnnouncementIDs []string
	CreatedAt       time.Time
}

// Company is a tenant. Employees and announcements are reciprocal links;
// a company's teams are found by filtered lookup instead.
type Company struct {
	ID              string
	Name            string
	EmployeeIDs     []string
	AnnouncementIDs []string
	CreatedAt       time.Time
}

// Team belongs to exactly one company; its members are always a subset of
// that company's employees.
type Team struct {
	ID          string
	Name        string
	Description string
	CompanyID   string
	MemberIDs   []string
	CreatedAt   time.Time
}

// Project belongs to exactly one team. Reassigning it to another team never
// crosses a company boundary.
type Project struct {
	ID          string
	Name        string
	Description string
	Active      bool
	TeamID      string
	CreatedAt   time.Time
}

// Announcement is authored by a user and owned by a company.
type Announcement struct {
	ID        string
	Title     string
	Message   string
	AuthorID  string
	CompanyID string
	CreatedAt time.Time
}

// containsID reports whether ids contains id.
func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// addID appends id unless it is already present.
func addID(ids []string, id string) []string {
	if containsID(ids, id) {
		return ids
	}
	return append(ids, id)
}

// removeID deletes id from ids, preserving order. Removing an absent id is a
// no-op.
func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
