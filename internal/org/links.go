package org

import "context"

// Links maintains the reciprocal relationship sets between users, companies,
// teams and announcements. It is the single writable entry point for link
// mutation: no other code touches one side of a relationship without the
// paired update. Each operation persists the child side first, then the
// parent side; attaching an already-attached pair and detaching an absent
// one are no-ops and skip the corresponding write.
type Links struct {
	users     UserStore
	companies CompanyStore
	teams     TeamStore
}

// NewLinks creates a Links helper over the given stores.
func NewLinks(users UserStore, companies CompanyStore, teams TeamStore) *Links {
	return &Links{users: users, companies: companies, teams: teams}
}

// AttachTeamMembers adds the team to each user's team set and each user to
// the team's member set, then persists both sides.
func (l *Links) AttachTeamMembers(ctx context.Context, team *Team, members []*User) error {
	var changed []*User
	for _, u := range members {
		if !containsID(u.TeamIDs, team.ID) {
			u.TeamIDs = addID(u.TeamIDs, team.ID)
			changed = append(changed, u)
		}
		team.MemberIDs = addID(team.MemberIDs, u.ID)
	}

	if len(changed) > 0 {
		if err := l.users.SaveAll(ctx, changed); err != nil {
			return err
		}
	}
	return l.teams.Save(ctx, team)
}

// DetachTeamMembers removes the team from each user's team set and each user
// from the team's member set, then persists both sides.
func (l *Links) DetachTeamMembers(ctx context.Context, team *Team, members []*User) error {
	var changed []*User
	for _, u := range members {
		if containsID(u.TeamIDs, team.ID) {
			u.TeamIDs = removeID(u.TeamIDs, team.ID)
			changed = append(changed, u)
		}
		team.MemberIDs = removeID(team.MemberIDs, u.ID)
	}

	if len(changed) > 0 {
		if err := l.users.SaveAll(ctx, changed); err != nil {
			return err
		}
	}
	return l.teams.Save(ctx, team)
}

// AttachUserToCompany adds the reciprocal employment links and persists both
// sides.
func (l *Links) AttachUserToCompany(ctx context.Context, u *User, c *Company) error {
	u.CompanyIDs = addID(u.CompanyIDs, c.ID)
	if err := l.users.Save(ctx, u); err != nil {
		return err
	}

	c.EmployeeIDs = addID(c.EmployeeIDs, u.ID)
	return l.companies.Save(ctx, c)
}

// DetachUserFromEverything removes the user from every team it belongs to,
// then from every company, persisting the updated teams and companies. The
// user's own link sets are cleared but the user record itself is not
// written; permanent deletion removes it right after.
func (l *Links) DetachUserFromEverything(ctx context.Context, u *User) error {
	if len(u.TeamIDs) > 0 {
		var updated []*Team
		for _, id := range u.TeamIDs {
			t, err := l.teams.FindByID(ctx, id)
			if err != nil {
				return err
			}
			if t == nil {
				continue
			}
			t.MemberIDs = removeID(t.MemberIDs, u.ID)
			updated = append(updated, t)
		}
		if len(updated) > 0 {
			if err := l.teams.SaveAll(ctx, updated); err != nil {
				return err
			}
		}
		u.TeamIDs = nil
	}

	if len(u.CompanyIDs) > 0 {
		var updated []*Company
		for _, id := range u.CompanyIDs {
			c, err := l.companies.FindByID(ctx, id)
			if err != nil {
				return err
			}
			if c == nil {
				continue
			}
			c.EmployeeIDs = removeID(c.EmployeeIDs, u.ID)
			updated = append(updated, c)
		}
		if len(updated) > 0 {
			if err := l.companies.SaveAll(ctx, updated); err != nil {
				return err
			}
		}
		u.CompanyIDs = nil
	}

	return nil
}

// AttachAnnouncement adds the announcement to the company's and the author's
// announcement sets and persists both.
func (l *Links) AttachAnnouncement(ctx context.Context, a *Announcement, c *Company, author *User) error {
	if !containsID(author.AnnouncementIDs, a.ID) {
		author.AnnouncementIDs = addID(author.AnnouncementIDs, a.ID)
		if err := l.users.Save(ctx, author); err != nil {
			return err
		}
	}

	if !containsID(c.AnnouncementIDs, a.ID) {
		c.AnnouncementIDs = addID(c.AnnouncementIDs, a.ID)
		return l.companies.Save(ctx, c)
	}
	return nil
}

// DetachAnnouncement removes the announcement from the company's and the
// author's announcement sets and persists both.
func (l *Links) DetachAnnouncement(ctx context.Context, a *Announcement, c *Company, author *User) error {
	if author != nil && containsID(author.AnnouncementIDs, a.ID) {
		author.AnnouncementIDs = removeID(author.AnnouncementIDs, a.ID)
		if err := l.users.Save(ctx, author); err != nil {
			return err
		}
	}

	if containsID(c.AnnouncementIDs, a.ID) {
		c.AnnouncementIDs = removeID(c.AnnouncementIDs, a.ID)
		return l.companies.Save(ctx, c)
	}
	return nil
}

// ReassignAnnouncementAuthor moves the announcement's authorship link from
// prev to next. It is a no-op when both are the same user.
func (l *Links) ReassignAnnouncementAuthor(ctx context.Context, a *Announcement, prev, next *User) error {
	if prev != nil && prev.ID == next.ID {
		return nil
	}

	if prev != nil && containsID(prev.AnnouncementIDs, a.ID) {
		prev.AnnouncementIDs = removeID(prev.AnnouncementIDs, a.ID)
		if err := l.users.Save(ctx, prev); err != nil {
			return err
		}
	}

	if !containsID(next.AnnouncementIDs, a.ID) {
		next.AnnouncementIDs = addID(next.AnnouncementIDs, a.ID)
		return l.users.Save(ctx, next)
	}
	return nil
}
