package org_test

import (
	"context"
	"testing"

	"github.com/acourt/roster/internal/org"
)

func TestAttachUserToCompanyIdempotent(t *testing.T) {
	f := newFixture()
	f.seedCompany("c1", "Acme")
	f.seedUser("u1", "sam", "pw", false, org.StatusJoined)

	u := f.mem.User("u1")
	c := f.mem.Company("c1")

	for i := 0; i < 2; i++ {
		if err := f.links.AttachUserToCompany(context.Background(), u, c); err != nil {
			t.Fatalf("AttachUserToCompany failed: %v", err)
		}
	}

	if got := f.mem.User("u1").CompanyIDs; len(got) != 1 {
		t.Errorf("repeated attach must not duplicate, got %v", got)
	}
	if got := f.mem.Company("c1").EmployeeIDs; len(got) != 1 {
		t.Errorf("repeated attach must not duplicate, got %v", got)
	}
}

func TestAttachAnnouncementNoOpSkipsWrites(t *testing.T) {
	f := newFixture()
	f.seedCompany("c1", "Acme", "u1")
	f.seedUser("u1", "sam", "pw", true, org.StatusJoined, "c1")
	f.mem.PutAnnouncement(&org.Announcement{ID: "a1", CompanyID: "c1", AuthorID: "u1"})

	a := f.mem.Announcement("a1")
	u := f.mem.User("u1")
	c := f.mem.Company("c1")

	if err := f.links.AttachAnnouncement(context.Background(), a, c, u); err != nil {
		t.Fatalf("AttachAnnouncement failed: %v", err)
	}
	// Second attach with the already-linked in-memory copies is a no-op.
	if err := f.links.AttachAnnouncement(context.Background(), a, c, u); err != nil {
		t.Fatalf("second AttachAnnouncement failed: %v", err)
	}

	if got := f.mem.User("u1").AnnouncementIDs; len(got) != 1 {
		t.Errorf("expected one author link, got %v", got)
	}
	if got := f.mem.Company("c1").AnnouncementIDs; len(got) != 1 {
		t.Errorf("expected one company link, got %v", got)
	}
}

func TestDetachUserFromEverythingSkipsDanglingIDs(t *testing.T) {
	f := newFixture()
	f.seedCompany("c1", "Acme", "u1")
	f.seedUser("u1", "sam", "pw", false, org.StatusJoined, "c1")

	u := f.mem.User("u1")
	u.TeamIDs = []string{"gone", "t1"}
	f.mem.PutTeam(&org.Team{ID: "t1", Name: "Core", CompanyID: "c1", MemberIDs: []string{"u1"}})

	if err := f.links.DetachUserFromEverything(context.Background(), u); err != nil {
		t.Fatalf("DetachUserFromEverything failed: %v", err)
	}

	if len(u.TeamIDs) != 0 || len(u.CompanyIDs) != 0 {
		t.Errorf("link sets should be cleared, got teams=%v companies=%v", u.TeamIDs, u.CompanyIDs)
	}
	if got := f.mem.Team("t1").MemberIDs; len(got) != 0 {
		t.Errorf("team should drop the member, got %v", got)
	}
	if got := f.mem.Company("c1").EmployeeIDs; len(got) != 0 {
		t.Errorf("company should drop the employee, got %v", got)
	}
}

func TestReassignAnnouncementAuthorSameUserIsNoOp(t *testing.T) {
	f := newFixture()
	f.seedUser("u1", "sam", "pw", true, org.StatusJoined)
	f.mem.PutAnnouncement(&org.Announcement{ID: "a1", AuthorID: "u1"})

	u := f.mem.User("u1")
	u.AnnouncementIDs = []string{"a1"}
	f.mem.PutUser(u)

	a := f.mem.Announcement("a1")
	same := f.mem.User("u1")
	if err := f.links.ReassignAnnouncementAuthor(context.Background(), a, same, same); err != nil {
		t.Fatalf("ReassignAnnouncementAuthor failed: %v", err)
	}
	if got := f.mem.User("u1").AnnouncementIDs; len(got) != 1 {
		t.Errorf("no-op reassignment must not change links, got %v", got)
	}
}
