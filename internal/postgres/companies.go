package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acourt/roster/internal/org"
)

// CompanyStore is the pgx-backed org.CompanyStore.
type CompanyStore struct {
	pool *pgxpool.Pool
}

// NewCompanyStore creates a company store backed by the given pool.
func NewCompanyStore(pool *pgxpool.Pool) *CompanyStore {
	return &CompanyStore{pool: pool}
}

const companyColumns = `id, name, employee_ids, announcement_ids, created_at`

func scanCompany(row pgx.Row) (*org.Company, error) {
	c := &org.Company{}
	var employeeIDs, announcementIDs []byte
	err := row.Scan(&c.ID, &c.Name, &employeeIDs, &announcementIDs, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalIDs(employeeIDs, &c.EmployeeIDs); err != nil {
		return nil, err
	}
	if err := unmarshalIDs(announcementIDs, &c.AnnouncementIDs); err != nil {
		return nil, err
	}
	return c, nil
}

// FindByID retrieves a company by primary key; (nil, nil) when absent.
func (s *CompanyStore) FindByID(ctx context.Context, id string) (*org.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE id = $1`, companyColumns)
	c, err := scanCompany(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting company by id: %w", err)
	}
	return c, nil
}

const upsertCompanySQL = `INSERT INTO companies
	(id, name, employee_ids, announcement_ids, created_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE SET
	 name = EXCLUDED.name,
	 employee_ids = EXCLUDED.employee_ids,
	 announcement_ids = EXCLUDED.announcement_ids`

func companyArgs(c *org.Company) ([]any, error) {
	employeeIDs, err := marshalIDs(c.EmployeeIDs)
	if err != nil {
		return nil, fmt.Errorf("marshaling employee ids: %w", err)
	}
	announcementIDs, err := marshalIDs(c.AnnouncementIDs)
	if err != nil {
		return nil, fmt.Errorf("marshaling announcement ids: %w", err)
	}
	return []any{c.ID, c.Name, employeeIDs, announcementIDs, c.CreatedAt}, nil
}

// Save upserts a single company.
func (s *CompanyStore) Save(ctx context.Context, c *org.Company) error {
	args, err := companyArgs(c)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, upsertCompanySQL, args...); err != nil {
		return fmt.Errorf("saving company: %w", err)
	}
	return nil
}

// SaveAll upserts companies as one batch.
func (s *CompanyStore) SaveAll(ctx context.Context, cs []*org.Company) error {
	if len(cs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, c := range cs {
		args, err := companyArgs(c)
		if err != nil {
			return err
		}
		batch.Queue(upsertCompanySQL, args...)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("saving companies: %w", err)
	}
	return nil
}
