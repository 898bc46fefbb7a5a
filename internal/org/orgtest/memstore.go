// Package orgtest provides in-memory implementations of the org storage
// interfaces for tests. Stores copy entities on every read and write, so a
// mutation that was never saved is never visible.
package orgtest

import (
	"context"
	"sort"
	"sync"

	"github.com/acourt/roster/internal/org"
)

// MemStores bundles in-memory stores over a shared mutex.
type MemStores struct {
	mu            sync.Mutex
	users         map[string]*org.User
	companies     map[string]*org.Company
	teams         map[string]*org.Team
	projects      map[string]*org.Project
	announcements map[string]*org.Announcement
}

// NewMemStores creates an empty set of in-memory stores.
func NewMemStores() *MemStores {
	return &MemStores{
		users:         map[string]*org.User{},
		companies:     map[string]*org.Company{},
		teams:         map[string]*org.Team{},
		projects:      map[string]*org.Project{},
		announcements: map[string]*org.Announcement{},
	}
}

// Stores returns the org.Stores wiring for these in-memory stores.
func (m *MemStores) Stores() org.Stores {
	return org.Stores{
		Users:         &userStore{m},
		Companies:     &companyStore{m},
		Teams:         &teamStore{m},
		Projects:      &projectStore{m},
		Announcements: &announcementStore{m},
	}
}

// Seed helpers: insert copies directly, bypassing the services.

func (m *MemStores) PutUser(u *org.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = copyUser(u)
}

func (m *MemStores) PutCompany(c *org.Company) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.companies[c.ID] = copyCompany(c)
}

func (m *MemStores) PutTeam(t *org.Team) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams[t.ID] = copyTeam(t)
}

func (m *MemStores) PutProject(p *org.Project) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.ID] = copyProject(p)
}

func (m *MemStores) PutAnnouncement(a *org.Announcement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.announcements[a.ID] = copyAnnouncement(a)
}

// Direct readers for assertions. They return copies; nil when absent.

func (m *MemStores) User(id string) *org.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return copyUser(u)
	}
	return nil
}

func (m *MemStores) Company(id string) *org.Company {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.companies[id]; ok {
		return copyCompany(c)
	}
	return nil
}

func (m *MemStores) Team(id string) *org.Team {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.teams[id]; ok {
		return copyTeam(t)
	}
	return nil
}

func (m *MemStores) Project(id string) *org.Project {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.projects[id]; ok {
		return copyProject(p)
	}
	return nil
}

func (m *MemStores) Announcement(id string) *org.Announcement {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.announcements[id]; ok {
		return copyAnnouncement(a)
	}
	return nil
}

type userStore struct{ m *MemStores }

func (s *userStore) FindByID(_ context.Context, id string) (*org.User, error) {
	return s.m.User(id), nil
}

func (s *userStore) FindByUsername(_ context.Context, username string) (*org.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Credentials.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (s *userStore) FindByIDs(_ context.Context, ids []string) ([]*org.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*org.User
	for _, id := range ids {
		if u, ok := s.m.users[id]; ok {
			out = append(out, copyUser(u))
		}
	}
	return out, nil
}

func (s *userStore) Save(_ context.Context, u *org.User) error {
	s.m.PutUser(u)
	return nil
}

func (s *userStore) SaveAll(_ context.Context, us []*org.User) error {
	for _, u := range us {
		s.m.PutUser(u)
	}
	return nil
}

func (s *userStore) Delete(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.users, id)
	return nil
}

type companyStore struct{ m *MemStores }

func (s *companyStore) FindByID(_ context.Context, id string) (*org.Company, error) {
	return s.m.Company(id), nil
}

func (s *companyStore) Save(_ context.Context, c *org.Company) error {
	s.m.PutCompany(c)
	return nil
}

func (s *companyStore) SaveAll(_ context.Context, cs []*org.Company) error {
	for _, c := range cs {
		s.m.PutCompany(c)
	}
	return nil
}

type teamStore struct{ m *MemStores }

func (s *teamStore) FindByID(_ context.Context, id string) (*org.Team, error) {
	return s.m.Team(id), nil
}

func (s *teamStore) FindByCompanyID(_ context.Context, companyID string) ([]*org.Team, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*org.Team
	for _, t := range s.m.teams {
		if t.CompanyID == companyID {
			out = append(out, copyTeam(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *teamStore) Save(_ context.Context, t *org.Team) error {
	s.m.PutTeam(t)
	return nil
}

func (s *teamStore) SaveAll(_ context.Context, ts []*org.Team) error {
	for _, t := range ts {
		s.m.PutTeam(t)
	}
	return nil
}

func (s *teamStore) Delete(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.teams, id)
	return nil
}

type projectStore struct{ m *MemStores }

func (s *projectStore) FindByID(_ context.Context, id string) (*org.Project, error) {
	return s.m.Project(id), nil
}

func (s *projectStore) FindByTeamID(_ context.Context, teamID string) ([]*org.Project, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*org.Project
	for _, p := range s.m.projects {
		if p.TeamID == teamID {
			out = append(out, copyProject(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *projectStore) Save(_ context.Context, p *org.Project) error {
	s.m.PutProject(p)
	return nil
}

func (s *projectStore) Delete(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.projects, id)
	return nil
}

type announcementStore struct{ m *MemStores }

func (s *announcementStore) FindByID(_ context.Context, id string) (*org.Announcement, error) {
	return s.m.Announcement(id), nil
}

func (s *announcementStore) FindByCompanyID(_ context.Context, companyID string) ([]*org.Announcement, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*org.Announcement
	for _, a := range s.m.announcements {
		if a.CompanyID == companyID {
			out = append(out, copyAnnouncement(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *announcementStore) Save(_ context.Context, a *org.Announcement) error {
	s.m.PutAnnouncement(a)
	return nil
}

func (s *announcementStore) Delete(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.announcements, id)
	return nil
}

func copyIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func copyUser(u *org.User) *org.User {
	c := *u
	c.CompanyIDs = copyIDs(u.CompanyIDs)
	c.TeamIDs = copyIDs(u.TeamIDs)
	c.AnnouncementIDs = copyIDs(u.AnnouncementIDs)
	return &c
}

func copyCompany(c *org.Company) *org.Company {
	cp := *c
	cp.EmployeeIDs = copyIDs(c.EmployeeIDs)
	cp.AnnouncementIDs = copyIDs(c.AnnouncementIDs)
	return &cp
}

func copyTeam(t *org.Team) *org.Team {
	c := *t
	c.MemberIDs = copyIDs(t.MemberIDs)
	return &c
}

func copyProject(p *org.Project) *org.Project {
	c := *p
	return &c
}

func copyAnnouncement(a *org.Announcement) *org.Announcement {
	c := *a
	return &c
}
