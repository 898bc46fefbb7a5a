package org

import (
	"context"
	"time"

	"github.com/acourt/roster/internal/apperr"
)

// TeamService implements the team lifecycle. Team membership is always a
// subset of the owning company's active employees.
type TeamService struct {
	teams     TeamStore
	companies CompanyStore
	users     UserStore
	links     *Links
}

// NewTeamService wires a TeamService.
func NewTeamService(stores Stores, links *Links) *TeamService {
	return &TeamService{
		teams:     stores.Teams,
		companies: stores.Companies,
		users:     stores.Users,
		links:     links,
	}
}

// Create creates a team in the company with the given (possibly empty)
// member set.
func (s *TeamService) Create(ctx context.Context, companyID string, in TeamInput) (*TeamView, error) {
	if in.Name == nil || in.Description == nil || in.TeammateIDs == nil {
		return nil, apperr.BadRequest("missing required parameters in creation request")
	}

	company, err := s.findCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	members, err := s.resolveTeammates(ctx, *in.TeammateIDs, company)
	if err != nil {
		return nil, err
	}

	team := &Team{
		ID:          newID(),
		Name:        *in.Name,
		Description: *in.Description,
		CompanyID:   company.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.links.AttachTeamMembers(ctx, team, members); err != nil {
		return nil, err
	}

	return projectTeam(ctx, s.companies, s.users, team)
}

// Update merges non-nil name and description. A non-nil teammate set fully
// replaces the membership, even when empty.
func (s *TeamService) Update(ctx context.Context, companyID, teamID string, in TeamInput) (*TeamView, error) {
	team, err := s.findTeamInCompany(ctx, companyID, teamID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		team.Name = *in.Name
	}
	if in.Description != nil {
		team.Description = *in.Description
	}

	if in.TeammateIDs != nil {
		company, err := s.findCompany(ctx, team.CompanyID)
		if err != nil {
			return nil, err
		}
		next, err := s.resolveTeammates(ctx, *in.TeammateIDs, company)
		if err != nil {
			return nil, err
		}
		if err := s.replaceMembers(ctx, team, next); err != nil {
			return nil, err
		}
	} else if err := s.teams.Save(ctx, team); err != nil {
		return nil, err
	}

	return projectTeam(ctx, s.companies, s.users, team)
}

// Delete detaches all members reciprocally and removes the team.
func (s *TeamService) Delete(ctx context.Context, companyID, teamID string) error {
	team, err := s.findTeamInCompany(ctx, companyID, teamID)
	if err != nil {
		return err
	}

	current, err := s.users.FindByIDs(ctx, team.MemberIDs)
	if err != nil {
		return err
	}
	if err := s.links.DetachTeamMembers(ctx, team, current); err != nil {
		return err
	}

	return s.teams.Delete(ctx, team.ID)
}

// replaceMembers detaches every current member and attaches the new set.
func (s *TeamService) replaceMembers(ctx context.Context, team *Team, next []*User) error {
	current, err := s.users.FindByIDs(ctx, team.MemberIDs)
	if err != nil {
		return err
	}
	if err := s.links.DetachTeamMembers(ctx, team, current); err != nil {
		return err
	}
	return s.links.AttachTeamMembers(ctx, team, next)
}

// resolveTeammates maps teammate ids to users, rejecting ids that are
// unknown, inactive, or employed outside the company.
func (s *TeamService) resolveTeammates(ctx context.Context, ids []string, company *Company) ([]*User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	resolved := make([]*User, 0, len(ids))
	for _, id := range ids {
		u := byID[id]
		if u == nil || !u.Active {
			return nil, apperr.BadRequest("one or more teammate ids are invalid or inactive")
		}
		if !containsID(u.CompanyIDs, company.ID) {
			return nil, apperr.BadRequest("user with id %s is not assigned to this company", u.ID)
		}
		resolved = append(resolved, u)
	}
	return resolved, nil
}

func (s *TeamService) findCompany(ctx context.Context, id string) (*Company, error) {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("no company found with id: %s", id)
	}
	return c, nil
}

func (s *TeamService) findTeamInCompany(ctx context.Context, companyID, teamID string) (*Team, error) {
	t, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("no team found with id: %s", teamID)
	}
	if t.CompanyID != companyID {
		return nil, apperr.BadRequest("the requested team does not belong to the provided company")
	}
	return t, nil
}
