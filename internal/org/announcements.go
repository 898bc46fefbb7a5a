package org

import (
	"context"
	"time"

	"github.com/acourt/roster/internal/apperr"
)

// AnnouncementService implements the announcement lifecycle. Every mutation
// carries the acting admin's credentials and is authorized against the
// announcement's company.
type AnnouncementService struct {
	announcements AnnouncementStore
	companies     CompanyStore
	users         UserStore
	identity      *Identity
	links         *Links
}

// NewAnnouncementService wires an AnnouncementService.
func NewAnnouncementService(stores Stores, identity *Identity, links *Links) *AnnouncementService {
	return &AnnouncementService{
		announcements: stores.Announcements,
		companies:     stores.Companies,
		users:         stores.Users,
		identity:      identity,
		links:         links,
	}
}

// Create posts an announcement to the company, authored by the credentialed
// admin.
func (s *AnnouncementService) Create(ctx context.Context, companyID string, in AnnouncementInput) (*AnnouncementView, error) {
	if err := validateAnnouncementInput(in); err != nil {
		return nil, err
	}

	company, err := s.findCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	author, err := s.identity.ResolveCompanyAdmin(ctx, in.Credentials, company)
	if err != nil {
		return nil, err
	}

	a := &Announcement{
		ID:        newID(),
		Title:     *in.Title,
		Message:   *in.Message,
		AuthorID:  author.ID,
		CompanyID: company.ID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.announcements.Save(ctx, a); err != nil {
		return nil, err
	}
	if err := s.links.AttachAnnouncement(ctx, a, company, author); err != nil {
		return nil, err
	}

	return projectAnnouncement(ctx, s.companies, s.users, a)
}

// Update replaces title and message and makes the credentialed admin the
// author. Authorization runs against the announcement's existing company.
// When authorship changes hands the previous author's reciprocal link is
// detached first.
func (s *AnnouncementService) Update(ctx context.Context, announcementID string, in AnnouncementInput) (*AnnouncementView, error) {
	if err := validateAnnouncementInput(in); err != nil {
		return nil, err
	}

	a, err := s.findAnnouncement(ctx, announcementID)
	if err != nil {
		return nil, err
	}
	company, err := s.findCompany(ctx, a.CompanyID)
	if err != nil {
		return nil, err
	}

	author, err := s.identity.ResolveCompanyAdmin(ctx, in.Credentials, company)
	if err != nil {
		return nil, err
	}

	prev, err := s.users.FindByID(ctx, a.AuthorID)
	if err != nil {
		return nil, err
	}

	a.Title = *in.Title
	a.Message = *in.Message
	a.AuthorID = author.ID

	if err := s.announcements.Save(ctx, a); err != nil {
		return nil, err
	}
	if err := s.links.ReassignAnnouncementAuthor(ctx, a, prev, author); err != nil {
		return nil, err
	}

	return projectAnnouncement(ctx, s.companies, s.users, a)
}

// Delete removes the announcement after detaching it from its company and
// author.
func (s *AnnouncementService) Delete(ctx context.Context, announcementID string, creds *CredentialsInput) error {
	if creds == nil {
		return apperr.BadRequest("credentials are required to delete an announcement")
	}

	a, err := s.findAnnouncement(ctx, announcementID)
	if err != nil {
		return err
	}
	company, err := s.findCompany(ctx, a.CompanyID)
	if err != nil {
		return err
	}

	if _, err := s.identity.ResolveCompanyAdmin(ctx, creds, company); err != nil {
		return err
	}

	author, err := s.users.FindByID(ctx, a.AuthorID)
	if err != nil {
		return err
	}
	if err := s.links.DetachAnnouncement(ctx, a, company, author); err != nil {
		return err
	}

	return s.announcements.Delete(ctx, a.ID)
}

func validateAnnouncementInput(in AnnouncementInput) error {
	if in.Title == nil || in.Message == nil || in.Credentials == nil {
		return apperr.BadRequest("missing required parameters in request")
	}
	return nil
}

func (s *AnnouncementService) findAnnouncement(ctx context.Context, id string) (*Announcement, error) {
	a, err := s.announcements.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.NotFound("no announcement found with id: %s", id)
	}
	return a, nil
}

func (s *AnnouncementService) findCompany(ctx context.Context, id string) (*Company, error) {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("no company found with id: %s", id)
	}
	return c, nil
}
