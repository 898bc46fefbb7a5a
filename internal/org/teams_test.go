package org_test

import (
	"context"
	"testing"

	"github.com/acourt/roster/internal/apperr"
	"github.com/acourt/roster/internal/org"
)

func seedTeamFixture() *fixture {
	f := newFixture()
	f.seedCompany("c1", "Acme", "u1", "u2", "u3")
	f.seedUser("u1", "ann", "pw", false, org.StatusJoined, "c1")
	f.seedUser("u2", "ben", "pw", false, org.StatusJoined, "c1")
	f.seedUser("u3", "cat", "pw", false, org.StatusJoined, "c1")
	return f
}

func TestCreateTeamLinksBothSides(t *testing.T) {
	f := seedTeamFixture()

	view, err := f.teams.Create(context.Background(), "c1", org.TeamInput{
		Name:        strPtr("Platform"),
		Description: strPtr("infra"),
		TeammateIDs: &[]string{"u1", "u2"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(view.Members) != 2 {
		t.Fatalf("expected 2 members in view, got %d", len(view.Members))
	}
	if view.Company.ID != "c1" {
		t.Errorf("expected company c1 in view, got %s", view.Company.ID)
	}

	team := f.mem.Team(view.ID)
	if len(team.MemberIDs) != 2 {
		t.Fatalf("expected 2 persisted members, got %v", team.MemberIDs)
	}
	for _, uid := range []string{"u1", "u2"} {
		u := f.mem.User(uid)
		if len(u.TeamIDs) != 1 || u.TeamIDs[0] != view.ID {
			t.Errorf("user %s should carry the team id, got %v", uid, u.TeamIDs)
		}
	}
	if len(f.mem.User("u3").TeamIDs) != 0 {
		t.Error("non-members must not be touched")
	}
}

func TestCreateTeamEmptyMemberSet(t *testing.T) {
	f := seedTeamFixture()

	view, err := f.teams.Create(context.Background(), "c1", org.TeamInput{
		Name:        strPtr("Empty"),
		Description: strPtr("d"),
		TeammateIDs: &[]string{},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(view.Members) != 0 {
		t.Errorf("expected no members, got %d", len(view.Members))
	}
	if f.mem.Team(view.ID) == nil {
		t.Fatal("team should be persisted")
	}
}

func TestCreateTeamValidation(t *testing.T) {
	f := seedTeamFixture()
	f.mem.PutUser(&org.User{
		ID:          "inactive",
		Credentials: org.Credentials{Username: "ina", Password: "pw"},
		Active:      false,
		Status:      org.StatusJoined,
		CompanyIDs:  []string{"c1"},
	})
	f.seedCompany("c2", "Globex", "stranger")
	f.seedUser("stranger", "str", "pw", false, org.StatusJoined, "c2")

	tests := []struct {
		name string
		in   org.TeamInput
		kind apperr.Kind
	}{
		{"missing name", org.TeamInput{Description: strPtr("d"), TeammateIDs: &[]string{}}, apperr.KindBadRequest},
		{"missing description", org.TeamInput{Name: strPtr("n"), TeammateIDs: &[]string{}}, apperr.KindBadRequest},
		{"missing member set", org.TeamInput{Name: strPtr("n"), Description: strPtr("d")}, apperr.KindBadRequest},
		{"unknown teammate", org.TeamInput{Name: strPtr("n"), Description: strPtr("d"), TeammateIDs: &[]string{"ghost"}}, apperr.KindBadRequest},
		{"inactive teammate", org.TeamInput{Name: strPtr("n"), Description: strPtr("d"), TeammateIDs: &[]string{"inactive"}}, apperr.KindBadRequest},
		{"cross-company teammate", org.TeamInput{Name: strPtr("n"), Description: strPtr("d"), TeammateIDs: &[]string{"stranger"}}, apperr.KindBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.teams.Create(context.Background(), "c1", tt.in)
			wantKind(t, err, tt.kind)
		})
	}

	_, err := f.teams.Create(context.Background(), "missing", org.TeamInput{
		Name: strPtr("n"), Description: strPtr("d"), TeammateIDs: &[]string{},
	})
	wantKind(t, err, apperr.KindNotFound)
}

func TestUpdateTeamReplacesMembership(t *testing.T) {
	f := seedTeamFixture()

	view, err := f.teams.Create(context.Background(), "c1", org.TeamInput{
		Name:        strPtr("Platform"),
		Description: strPtr("infra"),
		TeammateIDs: &[]string{"u1", "u2"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Replace with a set that drops u1 and adds u3.
	updated, err := f.teams.Update(context.Background(), "c1", view.ID, org.TeamInput{
		TeammateIDs: &[]string{"u2", "u3"},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(updated.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(updated.Members))
	}

	if len(f.mem.User("u1").TeamIDs) != 0 {
		t.Error("dropped member should lose the team id")
	}
	for _, uid := range []string{"u2", "u3"} {
		if len(f.mem.User(uid).TeamIDs) != 1 {
			t.Errorf("user %s should carry the team id", uid)
		}
	}

	team := f.mem.Team(view.ID)
	if len(team.MemberIDs) != 2 {
		t.Errorf("expected persisted members [u2 u3], got %v", team.MemberIDs)
	}
	if team.Name != "Platform" {
		t.Error("name should be preserved when not provided")
	}
}

func TestUpdateTeamNameOnly(t *testing.T) {
	f := seedTeamFixture()
	f.mem.PutTeam(&org.Team{ID: "t1", Name: "Old", Description: "d", CompanyID: "c1", MemberIDs: []string{"u1"}})
	u := f.mem.User("u1")
	u.TeamIDs = []string{"t1"}
	f.mem.PutUser(u)

	_, err := f.teams.Update(context.Background(), "c1", "t1", org.TeamInput{Name: strPtr("New")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	team := f.mem.Team("t1")
	if team.Name != "New" {
		t.Error("name should be updated")
	}
	if len(team.MemberIDs) != 1 {
		t.Error("membership must stay untouched when the set is absent")
	}
}

func TestUpdateTeamWrongCompany(t *testing.T) {
	f := seedTeamFixture()
	f.seedCompany("c2", "Globex")
	f.mem.PutTeam(&org.Team{ID: "t1", Name: "Ops", CompanyID: "c2"})

	_, err := f.teams.Update(context.Background(), "c1", "t1", org.TeamInput{Name: strPtr("x")})
	wantKind(t, err, apperr.KindBadRequest)

	_, err = f.teams.Update(context.Background(), "c1", "missing", org.TeamInput{Name: strPtr("x")})
	wantKind(t, err, apperr.KindNotFound)
}

func TestDeleteTeamDetachesMembers(t *testing.T) {
	f := seedTeamFixture()

	view, err := f.teams.Create(context.Background(), "c1", org.TeamInput{
		Name:        strPtr("Platform"),
		Description: strPtr("infra"),
		TeammateIDs: &[]string{"u1", "u2"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := f.teams.Delete(context.Background(), "c1", view.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if f.mem.Team(view.ID) != nil {
		t.Fatal("team should be removed")
	}
	for _, uid := range []string{"u1", "u2"} {
		if len(f.mem.User(uid).TeamIDs) != 0 {
			t.Errorf("user %s should no longer carry the team id", uid)
		}
	}
}
