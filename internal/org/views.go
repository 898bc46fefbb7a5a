package org

import (
	"context"
	"time"
)

// Response projections. These are the only shapes the HTTP layer serializes;
// none of them ever carries a password.

// CompanySummary is a flat company reference embedded in other views.
type CompanySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeamSummary is a flat team reference embedded in other views.
type TeamSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProfileView mirrors Profile for serialization.
type ProfileView struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// FullUser is the projected user: username flattened out of the credentials,
// plus summaries of the user's companies and teams.
type FullUser struct {
	ID        string           `json:"id"`
	Username  string           `json:"username"`
	Profile   ProfileView      `json:"profile"`
	Admin     bool             `json:"admin"`
	Active    bool             `json:"active"`
	Status    Status           `json:"status"`
	Companies []CompanySummary `json:"companies"`
	Teams     []TeamSummary    `json:"teams"`
}

// UserSummary is a flat user reference embedded in team and announcement
// views.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Admin    bool   `json:"admin"`
	Active   bool   `json:"active"`
	Status   Status `json:"status"`
}

// TeamView is the projected team with its owning company and member list.
type TeamView struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Company     CompanySummary `json:"company"`
	Members     []UserSummary  `json:"members"`
}

// ProjectView is the projected project with its owning team.
type ProjectView struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Active      bool        `json:"active"`
	Team        TeamSummary `json:"team"`
}

// AnnouncementView is the projected announcement with its company and
// author.
type AnnouncementView struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	CreatedAt time.Time      `json:"createdAt"`
	Company   CompanySummary `json:"company"`
	Author    UserSummary    `json:"author"`
}

func summarizeCompany(c *Company) CompanySummary {
	return CompanySummary{ID: c.ID, Name: c.Name}
}

func summarizeTeam(t *Team) TeamSummary {
	return TeamSummary{ID: t.ID, Name: t.Name, Description: t.Description}
}

func summarizeUser(u *User) UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Credentials.Username,
		Email:    u.Profile.Email,
		Admin:    u.Admin,
		Active:   u.Active,
		Status:   u.Status,
	}
}

// projectUser resolves the user's company and team links into summaries.
// Links that no longer resolve are skipped.
func projectUser(ctx context.Context, companies CompanyStore, teams TeamStore, u *User) (*FullUser, error) {
	view := &FullUser{
		ID:       u.ID,
		Username: u.Credentials.Username,
		Profile: ProfileView{
			FirstName: u.Profile.FirstName,
			LastName:  u.Profile.LastName,
			Email:     u.Profile.Email,
			Phone:     u.Profile.Phone,
		},
		Admin:     u.Admin,
		Active:    u.Active,
		Status:    u.Status,
		Companies: []CompanySummary{},
		Teams:     []TeamSummary{},
	}

	for _, id := range u.CompanyIDs {
		c, err := companies.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if c != nil {
			view.Companies = append(view.Companies, summarizeCompany(c))
		}
	}

	for _, id := range u.TeamIDs {
		t, err := teams.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if t != nil {
			view.Teams = append(view.Teams, summarizeTeam(t))
		}
	}

	return view, nil
}

// projectTeam resolves the team's company and members into a TeamView.
func projectTeam(ctx context.Context, companies CompanyStore, users UserStore, t *Team) (*TeamView, error) {
	view := &TeamView{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Members:     []UserSummary{},
	}

	c, err := companies.FindByID(ctx, t.CompanyID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		view.Company = summarizeCompany(c)
	}

	members, err := users.FindByIDs(ctx, t.MemberIDs)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		view.Members = append(view.Members, summarizeUser(m))
	}

	return view, nil
}

// projectProject resolves the project's owning team into a ProjectView.
func projectProject(ctx context.Context, teams TeamStore, p *Project) (*ProjectView, error) {
	view := &ProjectView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Active:      p.Active,
	}

	t, err := teams.FindByID(ctx, p.TeamID)
	if err != nil {
		return nil, err
	}
	if t != nil {
		view.Team = summarizeTeam(t)
	}

	return view, nil
}

// projectAnnouncement resolves the announcement's company and author into an
// AnnouncementView.
func projectAnnouncement(ctx context.Context, companies CompanyStore, users UserStore, a *Announcement) (*AnnouncementView, error) {
	view := &AnnouncementView{
		ID:        a.ID,
		Title:     a.Title,
		Message:   a.Message,
		CreatedAt: a.CreatedAt,
	}

	c, err := companies.FindByID(ctx, a.CompanyID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		view.Company = summarizeCompany(c)
	}

	u, err := users.FindByID(ctx, a.AuthorID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		view.Author = summarizeUser(u)
	}

	return view, nil
}
