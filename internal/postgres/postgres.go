// Package postgres implements the org storage interfaces on a pgx
// connection pool. Relationship adjacency is stored redundantly on both
// sides of each link as JSONB id arrays; the org.Links helpers keep the two
// sides converging.
package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acourt/roster/internal/org"
)

// Stores returns pgx-backed implementations of all five storage
// collaborators over one pool.
func Stores(pool *pgxpool.Pool) org.Stores {
	return org.Stores{
		Users:         NewUserStore(pool),
		Companies:     NewCompanyStore(pool),
		Teams:         NewTeamStore(pool),
		Projects:      NewProjectStore(pool),
		Announcements: NewAnnouncementStore(pool),
	}
}

// PoolStats adapts pgxpool statistics to the metrics collector signature.
func PoolStats(pool *pgxpool.Pool) func() (total, idle, acquired int32) {
	return func() (int32, int32, int32) {
		stat := pool.Stat()
		return stat.TotalConns(), stat.IdleConns(), stat.AcquiredConns()
	}
}

// marshalIDs converts an id slice to JSON for storage. nil marshals as [].
func marshalIDs(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(ids)
}

// unmarshalIDs parses a JSONB id array column.
func unmarshalIDs(data []byte, dest *[]string) error {
	if len(data) == 0 {
		*dest = nil
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshaling id array: %w", err)
	}
	if len(*dest) == 0 {
		*dest = nil
	}
	return nil
}
