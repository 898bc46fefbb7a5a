package org_test

import (
	"context"
	"testing"
	"time"

	"github.com/acourt/roster/internal/apperr"
	"github.com/acourt/roster/internal/org"
)

func TestGetUsersSkipsDanglingIDs(t *testing.T) {
	f := newFixture()
	f.seedCompany("c1", "Acme", "u1", "gone")
	f.seedUser("u1", "sam", "pw", false, org.StatusJoined, "c1")

	users, err := f.companies.GetUsers(context.Background(), "c1")
	if err != nil {
		t.Fatalf("GetUsers failed: %v", err)
	}
	if len(users) != 1 || users[0].ID != "u1" {
		t.Errorf("expected just u1, got %+v", users)
	}

	_, err = f.companies.GetUsers(context.Background(), "missing")
	wantKind(t, err, apperr.KindNotFound)
}

func TestGetAnnouncementsNewestFirst(t *testing.T) {
	f := newFixture()
	f.seedCompany("c1", "Acme", "u1")
	f.seedUser("u1", "sam", "pw", true, org.StatusJoined, "c1")

	base := time.Now().UTC()
	for i, id := range []string{"a0", "a1", "a2"} {
		f.mem.PutAnnouncement(&org.Announcement{
			ID:        id,
			Title:     id,
			AuthorID:  "u1",
			CompanyID: "c1",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	anns, err := f.companies.GetAnnouncements(context.Background(), "c1")
	if err != nil {
		t.Fatalf("GetAnnouncements failed: %v", err)
	}
	want := []string{"a2", "a1", "a0"}
	if len(anns) != len(want) {
		t.Fatalf("expected %d announcements, got %d", len(want), len(anns))
	}
	for i, w := range want {
		if anns[i].ID != w {
			t.Errorf("position %d: expected %s, got %s", i, w, anns[i].ID)
		}
	}
}

func TestGetProjectsChecksTeamScope(t *testing.T) {
	f := newFixture()
	f.seedCompany("c1", "Acme")
	f.seedCompany("c2", "Globex")
	f.mem.PutTeam(&org.Team{ID: "t1", Name: "Platform", CompanyID: "c1"})
	f.mem.PutTeam(&org.Team{ID: "t2", Name: "Foreign", CompanyID: "c2"})
	f.mem.PutProject(&org.Project{ID: "p1", Name: "P", TeamID: "t1"})

	projects, err := f.companies.GetProjects(context.Background(), "c1", "t1")
	if err != nil {
		t.Fatalf("GetProjects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != "p1" {
		t.Errorf("expected [p1], got %+v", projects)
	}

	_, err = f.companies.GetProjects(context.Background(), "c1", "t2")
	wantKind(t, err, apperr.KindBadRequest)

	_, err = f.companies.GetProjects(context.Background(), "c1", "missing")
	wantKind(t, err, apperr.KindNotFound)
}
