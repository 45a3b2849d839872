package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Run summarizes one export invocation.
type Run struct {
	RunID     int64
	CreatedAt time.Time
	SiteURL   string
	SiteID    string
	Folder    string
	Overwrite bool
	Written   int
	Skipped   int
	Failed    int
}

// Artifact is one branch outcome within a run.
type Artifact struct {
	ArtifactID int64
	RunID      int64
	FileName   string
	Outcome    string
	Error      string
	SizeBytes  int64
}

// RecordRun inserts a run row and returns its ID.
func (db *DB) RecordRun(r Run) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO runs (site_url, site_id, folder, overwrite, written, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.SiteURL, r.SiteID, r.Folder, r.Overwrite, r.Written, r.Skipped, r.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// RecordArtifact inserts one branch outcome for a run.
func (db *DB) RecordArtifact(a Artifact) error {
	var errText sql.NullString
	if a.Error != "" {
		errText = sql.NullString{String: a.Error, Valid: true}
	}

	_, err := db.Exec(
		`INSERT INTO artifacts (run_id, file_name, outcome, error, size_bytes)
		 VALUES (?, ?, ?, ?, ?)`,
		a.RunID, a.FileName, a.Outcome, errText, a.SizeBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to record artifact: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(
		`SELECT run_id, created_at, COALESCE(site_url, ''), COALESCE(site_id, ''),
		        folder, overwrite, written, skipped, failed
		 FROM runs ORDER BY run_id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.SiteURL, &r.SiteID,
			&r.Folder, &r.Overwrite, &r.Written, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRunArtifacts returns the branch outcomes for one run.
func (db *DB) GetRunArtifacts(runID int64) ([]Artifact, error) {
	rows, err := db.Query(
		`SELECT artifact_id, run_id, file_name, outcome, COALESCE(error, ''), COALESCE(size_bytes, 0)
		 FROM artifacts WHERE run_id = ? ORDER BY artifact_id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get run artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []Artifact
	for rows.Next() {
		var a Artifact
		if err := rows.Scan(&a.ArtifactID, &a.RunID, &a.FileName, &a.Outcome, &a.Error, &a.SizeBytes); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}
