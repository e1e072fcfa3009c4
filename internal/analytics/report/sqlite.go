package report

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"worldpulse.ai/internal/analytics/worlds"
)

// WriteSQLite writes the report as a single-table SQLite database at path.
// The rank column preserves the report's sort order; rerunning against the
// same path replaces the previous rows.
func WriteSQLite(path string, sums []worlds.Summary) error {
	if path == "" {
		return fmt.Errorf("empty db path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := initPragmas(db); err != nil {
		return err
	}
	if err := initSchema(db); err != nil {
		return err
	}
	return writeRows(db, sums)
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS worlds_aggregated (
		rank INTEGER PRIMARY KEY,
		world_name TEXT NOT NULL,
		world_id TEXT NOT NULL UNIQUE,
		average_occupants REAL NOT NULL,
		total_occurrences INTEGER NOT NULL,
		max_occupants INTEGER NOT NULL,
		min_occupants INTEGER NOT NULL,
		heat REAL NOT NULL,
		popularity REAL NOT NULL,
		estimated_orders REAL NOT NULL,
		max_marketing_spend REAL NOT NULL,
		image_url TEXT NOT NULL,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		bio_description TEXT NOT NULL,
		social_links TEXT NOT NULL
	);`)
	return err
}

func writeRows(db *sql.DB, sums []worlds.Summary) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM worlds_aggregated`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO worlds_aggregated(
		rank,world_name,world_id,average_occupants,total_occurrences,
		max_occupants,min_occupants,heat,popularity,estimated_orders,
		max_marketing_spend,image_url,user_id,user_name,bio_description,social_links
	) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, s := range sums {
		if _, err := stmt.Exec(
			i+1, displayName(s), s.WorldID, s.AverageOccupants, s.Occurrences,
			s.MaxOccupants, s.MinOccupants, s.Heat, s.Popularity, s.EstimatedOrders,
			s.MaxMarketingSpend, orNA(s.ImageURL), orNA(s.AuthorID), orNA(s.AuthorName),
			s.Bio, s.SocialLinks,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
