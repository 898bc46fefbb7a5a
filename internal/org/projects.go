package org

import (
	"context"
	"time"

	"github.com/acourt/roster/internal/apperr"
)

// ProjectService implements the project lifecycle. A project belongs to one
// team and can only move between teams of the same company.
type ProjectService struct {
	projects ProjectStore
	teams    TeamStore
}

// NewProjectService wires a ProjectService.
func NewProjectService(stores Stores) *ProjectService {
	return &ProjectService{projects: stores.Projects, teams: stores.Teams}
}

// Create creates a project owned by the team named in the input.
func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*ProjectView, error) {
	if in.TeamID == nil || *in.TeamID == "" {
		return nil, apperr.BadRequest("a team id is required")
	}

	team, err := s.findTeam(ctx, *in.TeamID)
	if err != nil {
		return nil, err
	}

	p := &Project{
		ID:        newID(),
		TeamID:    team.ID,
		CreatedAt: time.Now().UTC(),
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Active != nil {
		p.Active = *in.Active
	}

	if err := s.projects.Save(ctx, p); err != nil {
		return nil, err
	}

	return projectProject(ctx, s.teams, p)
}

// Update merges non-nil fields. Reassigning to a team of a different company
// is rejected and leaves the project untouched.
func (s *ProjectService) Update(ctx context.Context, id string, in ProjectInput) (*ProjectView, error) {
	p, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Active != nil {
		p.Active = *in.Active
	}

	if in.TeamID != nil {
		next, err := s.findTeam(ctx, *in.TeamID)
		if err != nil {
			return nil, err
		}
		current, err := s.findTeam(ctx, p.TeamID)
		if err != nil {
			return nil, err
		}
		if next.CompanyID != current.CompanyID {
			return nil, apperr.BadRequest("project cannot be reassigned across companies")
		}
		p.TeamID = next.ID
	}

	if err := s.projects.Save(ctx, p); err != nil {
		return nil, err
	}

	return projectProject(ctx, s.teams, p)
}

// Delete removes the project.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	p, err := s.findProject(ctx, id)
	if err != nil {
		return err
	}
	return s.projects.Delete(ctx, p.ID)
}

func (s *ProjectService) findProject(ctx context.Context, id string) (*Project, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("no project found with id: %s", id)
	}
	return p, nil
}

func (s *ProjectService) findTeam(ctx context.Context, id string) (*Team, error) {
	t, err := s.teams.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("no team found with id: %s", id)
	}
	return t, nil
}
