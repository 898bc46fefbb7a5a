package org

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/acourt/roster/internal/apperr"
)

// CredentialVerifier is the single point where submitted passwords are
// checked against stored ones, and where new passwords are encoded for
// storage. Swapping the implementation changes the scheme without touching
// any call site.
type CredentialVerifier interface {
	Verify(stored Credentials, password string) bool
	Hash(password string) (string, error)
}

// PlaintextVerifier compares passwords byte for byte. It exists for legacy
// data whose passwords were never hashed; deployments that care should
// configure the bcrypt scheme instead.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Verify(stored Credentials, password string) bool {
	return stored.Password == password
}

func (PlaintextVerifier) Hash(password string) (string, error) {
	return password, nil
}

// BcryptVerifier stores and compares bcrypt hashes. A Cost below
// bcrypt.MinCost falls back to bcrypt.DefaultCost.
type BcryptVerifier struct {
	Cost int
}

func (BcryptVerifier) Verify(stored Credentials, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(password)) == nil
}

func (v BcryptVerifier) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), v.Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Identity resolves the acting user from submitted credentials and enforces
// the admin gates. It never writes.
type Identity struct {
	users    UserStore
	verifier CredentialVerifier
}

// NewIdentity creates an Identity over the given user store and verifier.
func NewIdentity(users UserStore, verifier CredentialVerifier) *Identity {
	return &Identity{users: users, verifier: verifier}
}

// Resolve authenticates the credentials and returns the matching active
// user. No role requirements are applied.
func (i *Identity) Resolve(ctx context.Context, in *CredentialsInput) (*User, error) {
	if in == nil || in.Username == "" || in.Password == "" {
		return nil, apperr.BadRequest("a username and password are required")
	}

	u, err := i.users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Active {
		return nil, apperr.NotFound("no active user found with the provided credentials")
	}

	if !i.verifier.Verify(u.Credentials, in.Password) {
		return nil, apperr.NotAuthorized("invalid credentials for user: %s", in.Username)
	}

	return u, nil
}

// ResolveAdmin authenticates the credentials and requires the actor to be an
// admin who has joined. No company scope is checked; reinstating a user is
// the one administrative action that uses this wider gate.
func (i *Identity) ResolveAdmin(ctx context.Context, in *CredentialsInput) (*User, error) {
	u, err := i.Resolve(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(u); err != nil {
		return nil, err
	}
	return u, nil
}

// ResolveCompanyAdmin authenticates the credentials and requires the actor
// to be a joined admin who is also a member of the given company.
func (i *Identity) ResolveCompanyAdmin(ctx context.Context, in *CredentialsInput, company *Company) (*User, error) {
	u, err := i.Resolve(ctx, in)
	if err != nil {
		return nil, err
	}
	if !containsID(u.CompanyIDs, company.ID) {
		return nil, apperr.NotAuthorized("%s is not authorized to act for company %s",
			u.Credentials.Username, company.Name)
	}
	if err := requireAdmin(u); err != nil {
		return nil, err
	}
	return u, nil
}

func requireAdmin(u *User) error {
	if !u.Admin || u.Status != StatusJoined {
		return apperr.NotAuthorized("insufficient permissions for user: %s", u.Credentials.Username)
	}
	return nil
}
