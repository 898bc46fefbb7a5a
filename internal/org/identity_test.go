package org_test

import (
	"context"
	"testing"

	"github.com/acourt/roster/internal/apperr"
	"github.com/acourt/roster/internal/org"
)

func TestResolveCompanyAdmin(t *testing.T) {
	f := newFixture()
	f.seedCompany("c1", "Acme", "admin1", "member")
	f.seedCompany("c2", "Globex", "admin2")
	f.seedUser("admin1", "ada", "pw", true, org.StatusJoined, "c1")
	f.seedUser("admin2", "bob", "pw", true, org.StatusJoined, "c2")
	f.seedUser("member", "mel", "pw", false, org.StatusJoined, "c1")

	company := f.mem.Company("c1")

	u, err := f.identity.ResolveCompanyAdmin(context.Background(), creds("ada", "pw"), company)
	if err != nil {
		t.Fatalf("ResolveCompanyAdmin failed: %v", err)
	}
	if u.ID != "admin1" {
		t.Errorf("expected admin1, got %s", u.ID)
	}

	// Membership is checked before the role, so a foreign admin fails on
	// scope and a local member fails on role; both are authorization errors.
	_, err = f.identity.ResolveCompanyAdmin(context.Background(), creds("bob", "pw"), company)
	wantKind(t, err, apperr.KindNotAuthorized)

	_, err = f.identity.ResolveCompanyAdmin(context.Background(), creds("mel", "pw"), company)
	wantKind(t, err, apperr.KindNotAuthorized)
}

func TestBcryptVerifierRoundTrip(t *testing.T) {
	v := org.BcryptVerifier{}

	hash, err := v.Hash("hunter2")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash should not equal the plaintext")
	}

	stored := org.Credentials{Username: "u", Password: hash}
	if !v.Verify(stored, "hunter2") {
		t.Error("correct password should verify")
	}
	if v.Verify(stored, "wrong") {
		t.Error("wrong password should not verify")
	}
}

func TestBcryptVerifierAgainstIdentity(t *testing.T) {
	mem := newFixture().mem
	stores := mem.Stores()
	verifier := org.BcryptVerifier{}
	identity := org.NewIdentity(stores.Users, verifier)

	hash, err := verifier.Hash("pw")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	mem.PutUser(&org.User{
		ID:          "u1",
		Credentials: org.Credentials{Username: "sam", Password: hash},
		Active:      true,
		Status:      org.StatusJoined,
	})

	if _, err := identity.Resolve(context.Background(), creds("sam", "pw")); err != nil {
		t.Fatalf("Resolve with bcrypt hash failed: %v", err)
	}
	_, err = identity.Resolve(context.Background(), creds("sam", "nope"))
	wantKind(t, err, apperr.KindNotAuthorized)
}
