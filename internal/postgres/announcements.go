package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acourt/roster/internal/org"
)

// AnnouncementStore is the pgx-backed org.AnnouncementStore.
type AnnouncementStore struct {
	pool *pgxpool.Pool
}

// NewAnnouncementStore creates an announcement store backed by the given
// pool.
func NewAnnouncementStore(pool *pgxpool.Pool) *AnnouncementStore {
	return &AnnouncementStore{pool: pool}
}

const announcementColumns = `id, title, message, author_id, company_id, created_at`

func scanAnnouncement(row pgx.Row) (*org.Announcement, error) {
	a := &org.Announcement{}
	err := row.Scan(&a.ID, &a.Title, &a.Message, &a.AuthorID, &a.CompanyID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// FindByID retrieves an announcement by primary key; (nil, nil) when
// absent.
func (s *AnnouncementStore) FindByID(ctx context.Context, id string) (*org.Announcement, error) {
	query := fmt.Sprintf(`SELECT %s FROM announcements WHERE id = $1`, announcementColumns)
	a, err := scanAnnouncement(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting announcement by id: %w", err)
	}
	return a, nil
}

// FindByCompanyID returns a company's announcements, newest first.
func (s *AnnouncementStore) FindByCompanyID(ctx context.Context, companyID string) ([]*org.Announcement, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM announcements WHERE company_id = $1 ORDER BY created_at DESC`,
		announcementColumns,
	)
	rows, err := s.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("listing announcements by company: %w", err)
	}
	defer rows.Close()

	var announcements []*org.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning announcement row: %w", err)
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

// Save upserts a single announcement.
func (s *AnnouncementStore) Save(ctx context.Context, a *org.Announcement) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO announcements
		(id, title, message, author_id, company_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
		 title = EXCLUDED.title,
		 message = EXCLUDED.message,
		 author_id = EXCLUDED.author_id,
		 company_id = EXCLUDED.company_id`,
		a.ID, a.Title, a.Message, a.AuthorID, a.CompanyID, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving announcement: %w", err)
	}
	return nil
}

// Delete removes an announcement by id.
func (s *AnnouncementStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting announcement: %w", err)
	}
	return nil
}
