package db

import (
	"testing"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestRecordRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.RecordRun(Run{
		SiteURL:   "https://intranet.example.com",
		SiteID:    "5f0a9f2e-1f4b-4c6a-9b3e-2d8f7a1c0e55",
		Folder:    "/tmp/out",
		Overwrite: true,
		Written:   2,
		Skipped:   1,
	})
	if err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	if runID == 0 {
		t.Fatal("RecordRun() returned 0 run ID")
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, want 1", len(runs))
	}

	r := runs[0]
	if r.RunID != runID {
		t.Errorf("RunID = %d, want %d", r.RunID, runID)
	}
	if r.Folder != "/tmp/out" {
		t.Errorf("Folder = %q, want /tmp/out", r.Folder)
	}
	if !r.Overwrite {
		t.Error("Overwrite = false, want true")
	}
	if r.Written != 2 || r.Skipped != 1 || r.Failed != 0 {
		t.Errorf("counts = %d/%d/%d, want 2/1/0", r.Written, r.Skipped, r.Failed)
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := db.RecordRun(Run{Folder: "/tmp/out"})
		if err != nil {
			t.Fatalf("RecordRun() error = %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2 (limit)", len(runs))
	}
	if runs[0].RunID != ids[2] || runs[1].RunID != ids[1] {
		t.Errorf("run order = %d, %d, want %d, %d", runs[0].RunID, runs[1].RunID, ids[2], ids[1])
	}
}

func TestRecordArtifact(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.RecordRun(Run{Folder: "/tmp/out", Written: 1, Failed: 1})
	if err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	artifacts := []Artifact{
		{RunID: runID, FileName: "webpartmapping.xml", Outcome: "written", SizeBytes: 1024},
		{RunID: runID, FileName: "pagelayoutmapping.xml", Outcome: "failed", Error: "disk full"},
	}
	for _, a := range artifacts {
		if err := db.RecordArtifact(a); err != nil {
			t.Fatalf("RecordArtifact() error = %v", err)
		}
	}

	got, err := db.GetRunArtifacts(runID)
	if err != nil {
		t.Fatalf("GetRunArtifacts() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(artifacts) = %d, want 2", len(got))
	}

	if got[0].FileName != "webpartmapping.xml" || got[0].Outcome != "written" {
		t.Errorf("artifacts[0] = %+v", got[0])
	}
	if got[0].SizeBytes != 1024 {
		t.Errorf("artifacts[0].SizeBytes = %d, want 1024", got[0].SizeBytes)
	}
	if got[1].Error != "disk full" {
		t.Errorf("artifacts[1].Error = %q, want disk full", got[1].Error)
	}
}

func TestGetRunArtifacts_EmptyRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	got, err := db.GetRunArtifacts(999)
	if err != nil {
		t.Fatalf("GetRunArtifacts() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len(artifacts) = %d, want 0", len(got))
	}
}
