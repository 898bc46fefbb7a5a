package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acourt/roster/internal/org"
)

// UserStore is the pgx-backed org.UserStore.
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore creates a user store backed by the given connection pool.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

const userColumns = `id, username, password, first_name, last_name, email, phone,
	active, admin, status, company_ids, team_ids, announcement_ids, created_at`

// scanUser scans a user row, handling the JSONB id-array columns.
func scanUser(row pgx.Row) (*org.User, error) {
	u := &org.User{}
	var companyIDs, teamIDs, announcementIDs []byte
	err := row.Scan(
		&u.ID,
		&u.Credentials.Username,
		&u.Credentials.Password,
		&u.Profile.FirstName,
		&u.Profile.LastName,
		&u.Profile.Email,
		&u.Profile.Phone,
		&u.Active,
		&u.Admin,
		&u.Status,
		&companyIDs,
		&teamIDs,
		&announcementIDs,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalIDs(companyIDs, &u.CompanyIDs); err != nil {
		return nil, err
	}
	if err := unmarshalIDs(teamIDs, &u.TeamIDs); err != nil {
		return nil, err
	}
	if err := unmarshalIDs(announcementIDs, &u.AnnouncementIDs); err != nil {
		return nil, err
	}
	return u, nil
}

// FindByID retrieves a user by primary key; (nil, nil) when absent.
func (s *UserStore) FindByID(ctx context.Context, id string) (*org.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	u, err := scanUser(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by id: %w", err)
	}
	return u, nil
}

// FindByUsername retrieves a user by its unique username; (nil, nil) when
// absent.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*org.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, userColumns)
	u, err := scanUser(s.pool.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by username: %w", err)
	}
	return u, nil
}

// FindByIDs retrieves the users whose ids are in ids. Unknown ids are
// absent from the result.
func (s *UserStore) FindByIDs(ctx context.Context, ids []string) ([]*org.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = ANY($1)`, userColumns)
	rows, err := s.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("listing users by ids: %w", err)
	}
	defer rows.Close()

	var users []*org.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const upsertUserSQL = `INSERT INTO users
	(id, username, password, first_name, last_name, email, phone,
	 active, admin, status, company_ids, team_ids, announcement_ids, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (id) DO UPDATE SET
	 username = EXCLUDED.username,
	 password = EXCLUDED.password,
	 first_name = EXCLUDED.first_name,
	 last_name = EXCLUDED.last_name,
	 email = EXCLUDED.email,
	 phone = EXCLUDED.phone,
	 active = EXCLUDED.active,
	 admin = EXCLUDED.admin,
	 status = EXCLUDED.status,
	 company_ids = EXCLUDED.company_ids,
	 team_ids = EXCLUDED.team_ids,
	 announcement_ids = EXCLUDED.announcement_ids`

func userArgs(u *org.User) ([]any, error) {
	companyIDs, err := marshalIDs(u.CompanyIDs)
	if err != nil {
		return nil, fmt.Errorf("marshaling company ids: %w", err)
	}
	teamIDs, err := marshalIDs(u.TeamIDs)
	if err != nil {
		return nil, fmt.Errorf("marshaling team ids: %w", err)
	}
	announcementIDs, err := marshalIDs(u.AnnouncementIDs)
	if err != nil {
		return nil, fmt.Errorf("marshaling announcement ids: %w", err)
	}
	return []any{
		u.ID,
		u.Credentials.Username,
		u.Credentials.Password,
		u.Profile.FirstName,
		u.Profile.LastName,
		u.Profile.Email,
		u.Profile.Phone,
		u.Active,
		u.Admin,
		u.Status,
		companyIDs,
		teamIDs,
		announcementIDs,
		u.CreatedAt,
	}, nil
}

// Save upserts a single user.
func (s *UserStore) Save(ctx context.Context, u *org.User) error {
	args, err := userArgs(u)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, upsertUserSQL, args...); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

// SaveAll upserts users as one batch.
func (s *UserStore) SaveAll(ctx context.Context, us []*org.User) error {
	if len(us) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, u := range us {
		args, err := userArgs(u)
		if err != nil {
			return err
		}
		batch.Queue(upsertUserSQL, args...)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("saving users: %w", err)
	}
	return nil
}

// Delete removes a user by id.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}
