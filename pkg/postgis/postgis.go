// Package postgis provides a PostGIS-backed store of hazard Sites for
// datasets too large to keep in memory.
package postgis

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/kass/go-quake-geo/pkg/geo"
	"github.com/kass/go-quake-geo/pkg/models"
)

const batchSize = 10000

// SiteStore persists sites in a PostGIS-enabled Postgres database.
type SiteStore struct {
	db *sql.DB
}

// Open connects to the database and verifies the connection.
func Open(host string, port int, user, password, dbname string) (*SiteStore, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &SiteStore{db: db}, nil
}

// InitSchema creates the sites table, replacing any existing one.
func (s *SiteStore) InitSchema() error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis;`,
		`DROP TABLE IF EXISTS sites;`,
		`CREATE TABLE sites (
			id TEXT PRIMARY KEY,
			depth DOUBLE PRECISION NOT NULL DEFAULT 0,
			location GEOMETRY(POINT, 4326)
		);`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}
	return nil
}

// CreateSpatialIndex creates a GIST index on the geometry column.
func (s *SiteStore) CreateSpatialIndex() error {
	start := time.Now()
	if _, err := s.db.Exec(`CREATE INDEX idx_sites_location ON sites USING GIST(location);`); err != nil {
		return fmt.Errorf("failed to create spatial index: %w", err)
	}
	if _, err := s.db.Exec("ANALYZE sites;"); err != nil {
		return fmt.Errorf("failed to analyze table: %w", err)
	}

	log.Info().Dur("elapsed", time.Since(start)).Msg("created spatial index")
	return nil
}

// BulkInsert inserts sites in batches inside transactions.
func (s *SiteStore) BulkInsert(sites []models.Site) error {
	stmt, err := s.db.Prepare(`
		INSERT INTO sites (id, depth, location)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326))
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	txStmt := tx.Stmt(stmt)

	for i, site := range sites {
		if _, err := txStmt.Exec(site.ID, site.Depth, site.Lon, site.Lat); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert site %s: %w", site.ID, err)
		}

		if (i+1)%batchSize == 0 {
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("failed to commit batch: %w", err)
			}
			tx, err = s.db.Begin()
			if err != nil {
				return fmt.Errorf("failed to begin new transaction: %w", err)
			}
			txStmt = tx.Stmt(stmt)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit final batch: %w", err)
	}
	return nil
}

// QueryBox returns all sites within the supplied bounds.
func (s *SiteStore) QueryBox(b geo.Bounds) ([]models.Site, error) {
	query := `
		SELECT id, depth, ST_Y(location) AS lat, ST_X(location) AS lon
		FROM sites
		WHERE location && ST_MakeEnvelope($1, $2, $3, $4, 4326)
	`

	a := b.Array()
	rows, err := s.db.Query(query, a[0], a[1], a[2], a[3])
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	return scanSites(rows)
}

// QueryRadius returns all sites within radius km of center, using
// geography-typed ST_DWithin so distances are geodesic.
func (s *SiteStore) QueryRadius(center geo.Point, radius float64) ([]models.Site, error) {
	query := `
		SELECT id, depth, ST_Y(location) AS lat, ST_X(location) AS lon
		FROM sites
		WHERE ST_DWithin(location::geography,
			ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
	`

	rows, err := s.db.Query(query, center.Lon(), center.Lat(), radius*1000)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	return scanSites(rows)
}

func scanSites(rows *sql.Rows) ([]models.Site, error) {
	var results []models.Site
	for rows.Next() {
		var site models.Site
		if err := rows.Scan(&site.ID, &site.Depth, &site.Lat, &site.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		results = append(results, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}

// Count returns the number of sites in the store.
func (s *SiteStore) Count() (int64, error) {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sites").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sites: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *SiteStore) Close() error {
	return s.db.Close()
}
