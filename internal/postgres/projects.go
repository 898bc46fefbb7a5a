package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acourt/roster/internal/org"
)

// ProjectStore is the pgx-backed org.ProjectStore.
type ProjectStore struct {
	pool *pgxpool.Pool
}

// NewProjectStore creates a project store backed by the given pool.
func NewProjectStore(pool *pgxpool.Pool) *ProjectStore {
	return &ProjectStore{pool: pool}
}

const projectColumns = `id, name, description, active, team_id, created_at`

func scanProject(row pgx.Row) (*org.Project, error) {
	p := &org.Project{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Active, &p.TeamID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID retrieves a project by primary key; (nil, nil) when absent.
func (s *ProjectStore) FindByID(ctx context.Context, id string) (*org.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE id = $1`, projectColumns)
	p, err := scanProject(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting project by id: %w", err)
	}
	return p, nil
}

// FindByTeamID returns a team's projects ordered by creation time.
func (s *ProjectStore) FindByTeamID(ctx context.Context, teamID string) ([]*org.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE team_id = $1 ORDER BY created_at`, projectColumns)
	rows, err := s.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing projects by team: %w", err)
	}
	defer rows.Close()

	var projects []*org.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Save upserts a single project.
func (s *ProjectStore) Save(ctx context.Context, p *org.Project) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO projects
		(id, name, description, active, team_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
		 name = EXCLUDED.name,
		 description = EXCLUDED.description,
		 active = EXCLUDED.active,
		 team_id = EXCLUDED.team_id`,
		p.ID, p.Name, p.Description, p.Active, p.TeamID, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	return nil
}

// Delete removes a project by id.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}
