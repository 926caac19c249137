// Package db stores wind observations and analysis run records in sqlite.
// The schema is managed by embedded golang-migrate migrations.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/atmos-data/windrose.report/internal/wind"
)

// DB wraps the sqlite connection.
type DB struct {
	*sql.DB
}

// OpenDB opens the database without touching the schema. Use NewDB for the
// common open-and-migrate path; OpenDB exists for the migrate subcommand,
// which manages the schema itself.
func OpenDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows a single writer; the pipeline is single-threaded but
	// keep the pool honest anyway.
	sqlDB.SetMaxOpenConns(1)
	return &DB{sqlDB}, nil
}

// NewDB opens the database and applies any pending migrations.
func NewDB(path string) (*DB, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// InsertObservations bulk-inserts cleaned observations in one transaction.
func (db *DB) InsertObservations(obs []wind.Observation) error {
	if len(obs) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO observations (station, recorded_at, direction_deg, speed_mps, height_m)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range obs {
		if _, err := stmt.Exec(o.Station, o.Timestamp.UTC(), o.DirectionDeg, o.SpeedMps, o.HeightM); err != nil {
			return fmt.Errorf("failed to insert observation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit observations: %w", err)
	}
	return nil
}

// Observations returns a station's observations ordered by time. Zero from/to
// bounds are open-ended.
func (db *DB) Observations(station string, from, to time.Time) ([]wind.Observation, error) {
	query := `
		SELECT station, recorded_at, direction_deg, speed_mps, height_m
		FROM observations
		WHERE station = ?
	`
	args := []interface{}{station}
	if !from.IsZero() {
		query += " AND recorded_at >= ?"
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		query += " AND recorded_at < ?"
		args = append(args, to.UTC())
	}
	query += " ORDER BY recorded_at ASC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	var obs []wind.Observation
	for rows.Next() {
		var (
			o      wind.Observation
			height sql.NullFloat64
		)
		if err := rows.Scan(&o.Station, &o.Timestamp, &o.DirectionDeg, &o.SpeedMps, &height); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		if height.Valid {
			h := height.Float64
			o.HeightM = &h
		}
		obs = append(obs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return obs, nil
}

// Stations lists the distinct stations present in the store.
func (db *DB) Stations() ([]string, error) {
	rows, err := db.Query(`SELECT DISTINCT station FROM observations ORDER BY station`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	var stations []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

// AnalysisRun is the append-only record of one generated report.
type AnalysisRun struct {
	RunID           string    `json:"run_id"`
	Station         string    `json:"station"`
	StartDate       string    `json:"start_date"` // YYYY-MM-DD
	EndDate         string    `json:"end_date"`   // YYYY-MM-DD
	SectorCount     int       `json:"sector_count"`
	TotalRows       int       `json:"total_rows"`
	DroppedRows     int       `json:"dropped_rows"`
	MeanSpeedMps    float64   `json:"mean_speed_mps"`
	DominantSector  int       `json:"dominant_sector"`
	PowerDensityWm2 float64   `json:"power_density_w_m2"`
	WindClass       string    `json:"wind_class"`
	ReportPath      string    `json:"report_path"`
	CreatedAt       time.Time `json:"created_at"`
}

// RecordAnalysisRun inserts a run record, assigning a fresh run ID when the
// caller left it empty.
func (db *DB) RecordAnalysisRun(run *AnalysisRun) error {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	_, err := db.Exec(`
		INSERT INTO analysis_runs (
			run_id, station, start_date, end_date, sector_count,
			total_rows, dropped_rows, mean_speed_mps, dominant_sector,
			power_density_w_m2, wind_class, report_path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.RunID,
		run.Station,
		run.StartDate,
		run.EndDate,
		run.SectorCount,
		run.TotalRows,
		run.DroppedRows,
		run.MeanSpeedMps,
		run.DominantSector,
		run.PowerDensityWm2,
		run.WindClass,
		run.ReportPath,
	)
	if err != nil {
		return fmt.Errorf("failed to record analysis run: %w", err)
	}
	return nil
}

// RecentAnalysisRuns returns the most recent run records, newest first.
func (db *DB) RecentAnalysisRuns(limit int) ([]AnalysisRun, error) {
	rows, err := db.Query(`
		SELECT run_id, station, start_date, end_date, sector_count,
		       total_rows, dropped_rows, mean_speed_mps, dominant_sector,
		       power_density_w_m2, wind_class, report_path, created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []AnalysisRun
	for rows.Next() {
		var run AnalysisRun
		if err := rows.Scan(
			&run.RunID,
			&run.Station,
			&run.StartDate,
			&run.EndDate,
			&run.SectorCount,
			&run.TotalRows,
			&run.DroppedRows,
			&run.MeanSpeedMps,
			&run.DominantSector,
			&run.PowerDensityWm2,
			&run.WindClass,
			&run.ReportPath,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
