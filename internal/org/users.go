package org

import (
	"context"
	"time"

	"github.com/acourt/roster/internal/apperr"
)

// UserService implements the user lifecycle: login, add-to-company, partial
// update, soft delete, permanent delete and reinstatement.
type UserService struct {
	users     UserStore
	companies CompanyStore
	teams     TeamStore
	identity  *Identity
	links     *Links
	verifier  CredentialVerifier
}

// NewUserService wires a UserService.
func NewUserService(stores Stores, identity *Identity, links *Links, verifier CredentialVerifier) *UserService {
	return &UserService{
		users:     stores.Users,
		companies: stores.Companies,
		teams:     stores.Teams,
		identity:  identity,
		links:     links,
		verifier:  verifier,
	}
}

// Login authenticates the credentials without any role gate. The first
// successful login of a PENDING user transitions it to JOINED; later logins
// leave the status untouched.
func (s *UserService) Login(ctx context.Context, in *CredentialsInput) (*FullUser, error) {
	u, err := s.identity.Resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	if u.Status == StatusPending {
		u.Status = StatusJoined
		if err := s.users.Save(ctx, u); err != nil {
			return nil, err
		}
	}

	return projectUser(ctx, s.companies, s.teams, u)
}

// Add adds a user to a company. When the username already exists the
// existing record is reused untouched and only the company link is added;
// otherwise a fresh PENDING user is created.
func (s *UserService) Add(ctx context.Context, companyID string, in AddUserInput) (*FullUser, error) {
	if in.Profile == nil || in.Credentials == nil ||
		in.Credentials.Username == "" || in.Credentials.Password == "" ||
		in.Profile.Email == nil || *in.Profile.Email == "" {
		return nil, apperr.BadRequest("missing required parameters in creation request")
	}

	company, err := s.findCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	u, err := s.users.FindByUsername(ctx, in.Credentials.Username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		password, err := s.verifier.Hash(in.Credentials.Password)
		if err != nil {
			return nil, err
		}

		u = &User{
			ID: newID(),
			Credentials: Credentials{
				Username: in.Credentials.Username,
				Password: password,
			},
			Profile:   profileFromInput(in.Profile),
			Active:    true,
			Admin:     in.Admin,
			Status:    StatusPending,
			CreatedAt: time.Now().UTC(),
		}
	}

	if err := s.links.AttachUserToCompany(ctx, u, company); err != nil {
		return nil, err
	}

	return projectUser(ctx, s.companies, s.teams, u)
}

// Update applies a partial update to profile and credentials. Omitted fields
// keep their previous values; active, admin and status never change here.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*FullUser, error) {
	if in.Profile == nil && in.Credentials == nil {
		return nil, apperr.BadRequest("a profile or credential update must be provided")
	}

	u, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Profile != nil {
		applyProfileUpdate(&u.Profile, in.Profile)
	}
	if in.Credentials != nil {
		if in.Credentials.Username != nil {
			u.Credentials.Username = *in.Credentials.Username
		}
		if in.Credentials.Password != nil {
			password, err := s.verifier.Hash(*in.Credentials.Password)
			if err != nil {
				return nil, err
			}
			u.Credentials.Password = password
		}
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	return projectUser(ctx, s.companies, s.teams, u)
}

// Delete soft-deletes the user: the record and all its links stay, the user
// just stops authenticating and being assignable.
func (s *UserService) Delete(ctx context.Context, id string) error {
	u, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	u.Active = false
	return s.users.Save(ctx, u)
}

// DeletePermanent detaches the user from every team and company and removes
// the record irreversibly.
func (s *UserService) DeletePermanent(ctx context.Context, id string) error {
	u, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	if err := s.links.DetachUserFromEverything(ctx, u); err != nil {
		return err
	}
	return s.users.Delete(ctx, u.ID)
}

// Reinstate reactivates a soft-deleted user. The credentials belong to the
// acting admin; the gate is admin+JOINED only, with no company-membership
// check.
func (s *UserService) Reinstate(ctx context.Context, userID string, creds *CredentialsInput) (*FullUser, error) {
	if _, err := s.identity.ResolveAdmin(ctx, creds); err != nil {
		return nil, err
	}

	u, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.Active = true
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	return projectUser(ctx, s.companies, s.teams, u)
}

func (s *UserService) findUser(ctx context.Context, id string) (*User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("no user found with id: %s", id)
	}
	return u, nil
}

func (s *UserService) findCompany(ctx context.Context, id string) (*Company, error) {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("no company found with id: %s", id)
	}
	return c, nil
}

func profileFromInput(in *ProfileInput) Profile {
	var p Profile
	applyProfileUpdate(&p, in)
	return p
}

func applyProfileUpdate(p *Profile, in *ProfileInput) {
	if in.FirstName != nil {
		p.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		p.LastName = *in.LastName
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
}
