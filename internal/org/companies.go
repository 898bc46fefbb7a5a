package org

import (
	"context"

	"github.com/acourt/roster/internal/apperr"
)

// CompanyService serves the company-scoped read operations.
type CompanyService struct {
	companies     CompanyStore
	users         UserStore
	teams         TeamStore
	projects      ProjectStore
	announcements AnnouncementStore
}

// NewCompanyService wires a CompanyService.
func NewCompanyService(stores Stores) *CompanyService {
	return &CompanyService{
		companies:     stores.Companies,
		users:         stores.Users,
		teams:         stores.Teams,
		projects:      stores.Projects,
		announcements: stores.Announcements,
	}
}

// GetUsers returns projections of all of the company's employees.
func (s *CompanyService) GetUsers(ctx context.Context, companyID string) ([]*FullUser, error) {
	company, err := s.findCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	employees, err := s.users.FindByIDs(ctx, company.EmployeeIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*FullUser, 0, len(employees))
	for _, u := range employees {
		v, err := projectUser(ctx, s.companies, s.teams, u)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// GetTeams returns projections of all of the company's teams.
func (s *CompanyService) GetTeams(ctx context.Context, companyID string) ([]*TeamView, error) {
	if _, err := s.findCompany(ctx, companyID); err != nil {
		return nil, err
	}

	teams, err := s.teams.FindByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	views := make([]*TeamView, 0, len(teams))
	for _, t := range teams {
		v, err := projectTeam(ctx, s.companies, s.users, t)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// GetAnnouncements returns the company's announcements, newest first.
func (s *CompanyService) GetAnnouncements(ctx context.Context, companyID string) ([]*AnnouncementView, error) {
	if _, err := s.findCompany(ctx, companyID); err != nil {
		return nil, err
	}

	announcements, err := s.announcements.FindByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	views := make([]*AnnouncementView, 0, len(announcements))
	for _, a := range announcements {
		v, err := projectAnnouncement(ctx, s.companies, s.users, a)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// GetProjects returns the projects of a team that must belong to the
// company.
func (s *CompanyService) GetProjects(ctx context.Context, companyID, teamID string) ([]*ProjectView, error) {
	if _, err := s.findCompany(ctx, companyID); err != nil {
		return nil, err
	}

	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, apperr.NotFound("no team found with id: %s", teamID)
	}
	if team.CompanyID != companyID {
		return nil, apperr.BadRequest("the requested team does not belong to the provided company")
	}

	projects, err := s.projects.FindByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	views := make([]*ProjectView, 0, len(projects))
	for _, p := range projects {
		v, err := projectProject(ctx, s.teams, p)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *CompanyService) findCompany(ctx context.Context, id string) (*Company, error) {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("no company found with id: %s", id)
	}
	return c, nil
}
