package org_test

import (
	"context"
	"testing"
	"time"

	"github.com/acourt/roster/internal/apperr"
	"github.com/acourt/roster/internal/org"
	"github.com/acourt/roster/internal/org/orgtest"
)

// fixture bundles the services over a fresh set of in-memory stores.
type fixture struct {
	mem           *orgtest.MemStores
	users         *org.UserService
	teams         *org.TeamService
	projects      *org.ProjectService
	announcements *org.AnnouncementService
	companies     *org.CompanyService
	identity      *org.Identity
	links         *org.Links
}

func newFixture() *fixture {
	mem := orgtest.NewMemStores()
	stores := mem.Stores()
	verifier := org.PlaintextVerifier{}
	identity := org.NewIdentity(stores.Users, verifier)
	links := org.NewLinks(stores.Users, stores.Companies, stores.Teams)

	return &fixture{
		mem:           mem,
		users:         org.NewUserService(stores, identity, links, verifier),
		teams:         org.NewTeamService(stores, links),
		projects:      org.NewProjectService(stores),
		announcements: org.NewAnnouncementService(stores, identity, links),
		companies:     org.NewCompanyService(stores),
		identity:      identity,
		links:         links,
	}
}

func (f *fixture) seedCompany(id, name string, employeeIDs ...string) {
	f.mem.PutCompany(&org.Company{
		ID:          id,
		Name:        name,
		EmployeeIDs: employeeIDs,
		CreatedAt:   time.Now().UTC(),
	})
}

func (f *fixture) seedUser(id, username, password string, admin bool, status org.Status, companyIDs ...string) {
	f.mem.PutUser(&org.User{
		ID:          id,
		Profile:     org.Profile{Email: username + "@test"},
		Credentials: org.Credentials{Username: username, Password: password},
		Active:      true,
		Admin:       admin,
		Status:      status,
		CompanyIDs:  companyIDs,
		CreatedAt:   time.Now().UTC(),
	})
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func creds(username, password string) *org.CredentialsInput {
	return &org.CredentialsInput{Username: username, Password: password}
}

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("expected error kind %v, got %v (%v)", kind, got, err)
	}
}

func TestLoginTransitionsPendingToJoined(t *testing.T) {
	f := newFixture()
	f.seedCompany("c1", "Acme", "u1")
	f.seedUser("u1", "sam", "pw", false, org.StatusPending, "c1")

	view, err := f.users.Login(context.Background(), creds("sam", "pw"))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if view.Status != org.StatusJoined {
		t.Errorf("expected JOINED in response, got %s", view.Status)
	}
	if f.mem.User("u1").Status != org.StatusJoined {
		t.Error("transition should be persisted")
	}

	// A second login is a no-op on status.
	view, err = f.users.Login(context.Background(), creds("sam", "pw"))
	if err != nil {
		t.Fatalf("second Login failed: %v", err)
	}
	if view.Status != org.StatusJoined {
		t.Errorf("status should stay JOINED, got %s", view.Status)
	}
}

func TestLoginErrors(t *testing.T) {
	f := newFixture()
	f.seedUser("u1", "sam", "pw", false, org.StatusJoined)

	inactive := f.mem.User("u1")
	inactive.ID = "u2"
	inactive.Credentials.Username = "dormant"
	inactive.Active = false
	f.mem.PutUser(inactive)

	tests := []struct {
		name string
		in   *org.CredentialsInput
		kind apperr.Kind
	}{
		{"nil credentials", nil, apperr.KindBadRequest},
		{"empty username", creds("", "pw"), apperr.KindBadRequest},
		{"empty password", creds("sam", ""), apperr.KindBadRequest},
		{"unknown user", creds("ghost", "pw"), apperr.KindNotFound},
		{"inactive user", creds("dormant", "pw"), apperr.KindNotFound},
		{"wrong password", creds("sam", "nope"), apperr.KindNotAuthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.users.Login(context.Background(), tt.in)
			wantKind(t, err, tt.kind)
		})
	}
}

func TestAddUserCreatesPending(t *testing.T) {
	f := newFixture()
	f.seedCompany("c1", "Acme")

	view, err := f.users.Add(context.Background(), "c1", org.AddUserInput{
		Profile:     &org.ProfileInput{Email: strPtr("new@test")},
		Credentials: creds("newbie", "pw"),
		Admin:       true,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if view.Status != org.StatusPending {
		t.Errorf("new user should be PENDING, got %s", view.Status)
	}
	if !view.Admin {
		t.Error("admin flag from the request should be kept")
	}

	u := f.mem.User(view.ID)
	if u == nil {
		t.Fatal("user should be persisted")
	}
	if !u.Active {
		t.Error("new user should be active")
	}
	if len(u.CompanyIDs) != 1 || u.CompanyIDs[0] != "c1" {
		t.Errorf("expected company link [c1], got %v", u.CompanyIDs)
	}
	if got := f.mem.Company("c1").EmployeeIDs; len(got) != 1 || got[0] != view.ID {
		t.Errorf("company should link back, got %v", got)
	}
}

func TestAddUserReusesExistingAcrossCompanies(t *testing.T) {
	f := newFixture()
	f.seedCompany("c1", "Acme", "u1")
	f.seedCompany("c2", "Globex")
	f.seedUser("u1", "sam", "pw", false, org.StatusJoined, "c1")

	view, err := f.users.Add(context.Background(), "c2", org.AddUserInput{
		Profile:     &org.ProfileInput{Email: strPtr("other@test")},
		Credentials: creds("sam", "different"),
		Admin:       true,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if view.ID != "u1" {
		t.Fatalf("existing user should be reused, got id %s", view.ID)
	}

	u := f.mem.User("u1")
	if u.Credentials.Password != "pw" {
		t.Error("existing record must stay untouched")
	}
	if u.Admin {
		t.Error("existing admin flag must stay untouched")
	}
	if u.Status != org.StatusJoined {
		t.Error("existing status must stay untouched")
	}
	if len(u.CompanyIDs) != 2 {
		t.Errorf("expected membership in both companies, got %v", u.CompanyIDs)
	}
}

func TestAddUserValidation(t *testing.T) {
	f := newFixture()
	f.seedCompany("c1", "Acme")

	tests := []struct {
		name string
		in   org.AddUserInput
	}{
		{"no profile", org.AddUserInput{Credentials: creds("a", "b")}},
		{"no credentials", org.AddUserInput{Profile: &org.ProfileInput{Email: strPtr("e@test")}}},
		{"no email", org.AddUserInput{Profile: &org.ProfileInput{}, Credentials: creds("a", "b")}},
		{"empty username", org.AddUserInput{Profile: &org.ProfileInput{Email: strPtr("e@test")}, Credentials: creds("", "b")}},
		{"empty password", org.AddUserInput{Profile: &org.ProfileInput{Email: strPtr("e@test")}, Credentials: creds("a", "")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.users.Add(context.Background(), "c1", tt.in)
			wantKind(t, err, apperr.KindBadRequest)
		})
	}

	_, err := f.users.Add(context.Background(), "nope", org.AddUserInput{
		Profile:     &org.ProfileInput{Email: strPtr("e@test")},
		Credentials: creds("a", "b"),
	})
	wantKind(t, err, apperr.KindNotFound)
}

func TestUpdateUserPartial(t *testing.T) {
	f := newFixture()
	f.seedUser("u1", "sam", "pw", false, org.StatusJoined)

	_, err := f.users.Update(context.Background(), "u1", org.UpdateUserInput{
		Profile: &org.ProfileInput{Phone: strPtr("555-0100")},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	u := f.mem.User("u1")
	if u.Profile.Phone != "555-0100" {
		t.Error("phone should be updated")
	}
	if u.Profile.Email != "sam@test" {
		t.Error("unspecified profile fields should be preserved")
	}
	if u.Credentials.Password != "pw" {
		t.Error("credentials should be preserved")
	}

	// Credential-only update.
	_, err = f.users.Update(context.Background(), "u1", org.UpdateUserInput{
		Credentials: &org.CredentialsUpdate{Password: strPtr("next")},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	u = f.mem.User("u1")
	if u.Credentials.Password != "next" {
		t.Error("password should be updated")
	}
	if u.Credentials.Username != "sam" {
		t.Error("username should be preserved")
	}
}

func TestUpdateUserErrors(t *testing.T) {
	f := newFixture()
	f.seedUser("u1", "sam", "pw", false, org.StatusJoined)

	_, err := f.users.Update(context.Background(), "u1", org.UpdateUserInput{})
	wantKind(t, err, apperr.KindBadRequest)

	_, err = f.users.Update(context.Background(), "ghost", org.UpdateUserInput{
		Profile: &org.ProfileInput{Phone: strPtr("1")},
	})
	wantKind(t, err, apperr.KindNotFound)
}

func TestDeleteUserSoft(t *testing.T) {
	f := newFixture()
	f.seedCompany("c1", "Acme", "u1")
	f.seedUser("u1", "sam", "pw", false, org.StatusJoined, "c1")

	if err := f.users.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	u := f.mem.User("u1")
	if u == nil {
		t.Fatal("soft delete must keep the record")
	}
	if u.Active {
		t.Error("soft delete should clear Active")
	}
	if len(u.CompanyIDs) != 1 {
		t.Error("soft delete should keep links")
	}
}

func TestDeleteUserPermanentDetachesEverything(t *testing.T) {
	f := newFixture()
	f.seedCompany("c1", "Acme", "u1", "u2")
	f.seedUser("u1", "sam", "pw", false, org.StatusJoined, "c1")
	f.seedUser("u2", "kim", "pw", false, org.StatusJoined, "c1")

	u1 := f.mem.User("u1")
	u1.TeamIDs = []string{"t1"}
	f.mem.PutUser(u1)
	f.mem.PutTeam(&org.Team{ID: "t1", Name: "Core", CompanyID: "c1", MemberIDs: []string{"u1", "u2"}})

	if err := f.users.DeletePermanent(context.Background(), "u1"); err != nil {
		t.Fatalf("DeletePermanent failed: %v", err)
	}

	if f.mem.User("u1") != nil {
		t.Fatal("record should be gone")
	}
	for _, id := range f.mem.Company("c1").EmployeeIDs {
		if id == "u1" {
			t.Error("company should no longer reference the user")
		}
	}
	for _, id := range f.mem.Team("t1").MemberIDs {
		if id == "u1" {
			t.Error("team should no longer reference the user")
		}
	}
	if len(f.mem.Team("t1").MemberIDs) != 1 {
		t.Errorf("other members should survive, got %v", f.mem.Team("t1").MemberIDs)
	}
}

func TestReinstate(t *testing.T) {
	f := newFixture()
	f.seedCompany("c1", "Acme", "u1", "admin")
	f.seedUser("u1", "sam", "pw", false, org.StatusJoined, "c1")
	f.seedUser("admin", "boss", "pw", true, org.StatusJoined, "c1")

	if err := f.users.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	view, err := f.users.Reinstate(context.Background(), "u1", creds("boss", "pw"))
	if err != nil {
		t.Fatalf("Reinstate failed: %v", err)
	}
	if !view.Active {
		t.Error("response should show the user active")
	}
	if !f.mem.User("u1").Active {
		t.Error("reinstatement should be persisted")
	}
}

func TestReinstateGates(t *testing.T) {
	f := newFixture()
	f.seedCompany("c1", "Acme", "u1", "member", "pendingAdmin")
	f.seedUser("u1", "sam", "pw", false, org.StatusJoined, "c1")
	f.seedUser("member", "mel", "pw", false, org.StatusJoined, "c1")
	f.seedUser("pendingAdmin", "pat", "pw", true, org.StatusPending, "c1")

	// Non-admin actor.
	_, err := f.users.Reinstate(context.Background(), "u1", creds("mel", "pw"))
	wantKind(t, err, apperr.KindNotAuthorized)

	// Admin who has not joined.
	_, err = f.users.Reinstate(context.Background(), "u1", creds("pat", "pw"))
	wantKind(t, err, apperr.KindNotAuthorized)

	// Admins of any company may reinstate: no company scope on this gate.
	f.seedCompany("c2", "Globex", "outsider")
	f.seedUser("outsider", "out", "pw", true, org.StatusJoined, "c2")
	if _, err := f.users.Reinstate(context.Background(), "u1", creds("out", "pw")); err != nil {
		t.Fatalf("admin of another company should be allowed: %v", err)
	}
}
