package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acourt/roster/internal/org"
)

// TeamStore is the pgx-backed org.TeamStore.
type TeamStore struct {
	pool *pgxpool.Pool
}

// NewTeamStore creates a team store backed by the given pool.
func NewTeamStore(pool *pgxpool.Pool) *TeamStore {
	return &TeamStore{pool: pool}
}

const teamColumns = `id, name, description, company_id, member_ids, created_at`

func scanTeam(row pgx.Row) (*org.Team, error) {
	t := &org.Team{}
	var memberIDs []byte
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CompanyID, &memberIDs, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalIDs(memberIDs, &t.MemberIDs); err != nil {
		return nil, err
	}
	return t, nil
}

// FindByID retrieves a team by primary key; (nil, nil) when absent.
func (s *TeamStore) FindByID(ctx context.Context, id string) (*org.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams WHERE id = $1`, teamColumns)
	t, err := scanTeam(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting team by id: %w", err)
	}
	return t, nil
}

// FindByCompanyID returns a company's teams ordered by creation time.
func (s *TeamStore) FindByCompanyID(ctx context.Context, companyID string) ([]*org.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams WHERE company_id = $1 ORDER BY created_at`, teamColumns)
	rows, err := s.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("listing teams by company: %w", err)
	}
	defer rows.Close()

	var teams []*org.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

const upsertTeamSQL = `INSERT INTO teams
	(id, name, description, company_id, member_ids, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
	 name = EXCLUDED.name,
	 description = EXCLUDED.description,
	 company_id = EXCLUDED.company_id,
	 member_ids = EXCLUDED.member_ids`

func teamArgs(t *org.Team) ([]any, error) {
	memberIDs, err := marshalIDs(t.MemberIDs)
	if err != nil {
		return nil, fmt.Errorf("marshaling member ids: %w", err)
	}
	return []any{t.ID, t.Name, t.Description, t.CompanyID, memberIDs, t.CreatedAt}, nil
}

// Save upserts a single team.
func (s *TeamStore) Save(ctx context.Context, t *org.Team) error {
	args, err := teamArgs(t)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, upsertTeamSQL, args...); err != nil {
		return fmt.Errorf("saving team: %w", err)
	}
	return nil
}

// SaveAll upserts teams as one batch.
func (s *TeamStore) SaveAll(ctx context.Context, ts []*org.Team) error {
	if len(ts) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, t := range ts {
		args, err := teamArgs(t)
		if err != nil {
			return err
		}
		batch.Queue(upsertTeamSQL, args...)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("saving teams: %w", err)
	}
	return nil
}

// Delete removes a team by id.
func (s *TeamStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}
	return nil
}
