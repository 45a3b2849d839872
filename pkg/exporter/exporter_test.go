package exporter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/sitetransform/layoutmap/pkg/templates"
)

func testExporter(t *testing.T) (*Exporter, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	exp := New(templates.Static{
		templates.WebPartMapping:    []byte("<WebPartMapping/>\n"),
		templates.PageLayoutMapping: []byte("<PageLayoutMapping/>\n"),
	})
	exp.Out = out
	return exp, out
}

func TestResolveFolder(t *testing.T) {
	existing := t.TempDir()

	filePath := filepath.Join(existing, "not-a-dir")
	if err := os.WriteFile(filePath, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	tests := []struct {
		name    string
		folder  string
		wantErr bool
	}{
		{name: "existing folder", folder: existing, wantErr: false},
		{name: "missing folder", folder: filepath.Join(existing, "missing"), wantErr: true},
		{name: "regular file", folder: filePath, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveFolder(tt.folder)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveFolder(%q) error = %v, wantErr %v", tt.folder, err, tt.wantErr)
			}
			if !tt.wantErr && !filepath.IsAbs(got) {
				t.Errorf("ResolveFolder(%q) = %q, want absolute path", tt.folder, got)
			}
		})
	}
}

func TestResolveFolder_DefaultsToWorkingDirectory(t *testing.T) {
	got, err := ResolveFolder("")
	if err != nil {
		t.Fatalf("ResolveFolder(\"\") error = %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if got != wd {
		t.Errorf("ResolveFolder(\"\") = %q, want %q", got, wd)
	}
}

func TestExportTemplate_WritesFile(t *testing.T) {
	exp, _ := testExporter(t)
	folder := t.TempDir()

	res := exp.ExportTemplate(folder, templates.WebPartMapping, false)
	if res.Outcome != OutcomeWritten {
		t.Fatalf("outcome = %s, want written (err: %v)", res.Outcome, res.Err)
	}

	data, err := os.ReadFile(filepath.Join(folder, "webpartmapping.xml"))
	if err != nil {
		t.Fatalf("failed to read exported file: %v", err)
	}
	if string(data) != "<WebPartMapping/>\n" {
		t.Errorf("exported content = %q, want template content", data)
	}
}

func TestExportTemplate_SkipsExistingFile(t *testing.T) {
	exp, out := testExporter(t)
	folder := t.TempDir()

	target := filepath.Join(folder, "pagelayoutmapping.xml")
	if err := os.WriteFile(target, []byte("original"), 0644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	res := exp.ExportTemplate(folder, templates.PageLayoutMapping, false)
	if res.Outcome != OutcomeSkipped {
		t.Fatalf("outcome = %s, want skipped", res.Outcome)
	}
	if out.Len() == 0 {
		t.Error("expected a skip notice, got none")
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if string(data) != "original" {
		t.Errorf("file content changed on skip: %q", data)
	}
}

func TestExportTemplate_OverwriteReplacesFile(t *testing.T) {
	exp, _ := testExporter(t)
	folder := t.TempDir()

	target := filepath.Join(folder, "webpartmapping.xml")
	if err := os.WriteFile(target, []byte("stale"), 0644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	res := exp.ExportTemplate(folder, templates.WebPartMapping, true)
	if res.Outcome != OutcomeWritten {
		t.Fatalf("outcome = %s, want written (err: %v)", res.Outcome, res.Err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if string(data) != "<WebPartMapping/>\n" {
		t.Errorf("file content = %q, want fresh template content", data)
	}
}

func TestExportTemplate_UnknownTemplateFails(t *testing.T) {
	exp, _ := testExporter(t)

	res := exp.ExportTemplate(t.TempDir(), "nosuchtemplate.xml", false)
	if res.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %s, want failed", res.Outcome)
	}
	if res.Err == nil {
		t.Error("expected an error for unknown template")
	}
}

type fakeConnection struct {
	publishing bool
	id         uuid.UUID
}

func (f fakeConnection) IsPublishingSite() bool { return f.publishing }
func (f fakeConnection) SiteID() uuid.UUID      { return f.id }

type fakeAnalyzer struct {
	analyseCalled  bool
	generateCalled bool
	analyseErr     error
	content        []byte
}

func (f *fakeAnalyzer) AnalyseAll(ctx context.Context) error {
	f.analyseCalled = true
	return f.analyseErr
}

func (f *fakeAnalyzer) GenerateMappingFile(folder, filename string) error {
	f.generateCalled = true
	return os.WriteFile(filepath.Join(folder, filename), f.content, 0644)
}

func TestExportCustom_NonPublishingSiteFails(t *testing.T) {
	exp, _ := testExporter(t)
	folder := t.TempDir()
	an := &fakeAnalyzer{}

	conn := fakeConnection{publishing: false, id: uuid.New()}
	res := exp.ExportCustom(context.Background(), folder, true, conn, an)

	if res.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %s, want failed", res.Outcome)
	}
	if res.Err == nil {
		t.Fatal("expected an error for non-publishing site")
	}
	if an.analyseCalled {
		t.Error("analyzer ran despite failed precondition")
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		t.Fatalf("failed to read folder: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files written, found %d", len(entries))
	}
}

func TestExportCustom_WritesMappingFile(t *testing.T) {
	exp, _ := testExporter(t)
	folder := t.TempDir()
	id := uuid.New()
	an := &fakeAnalyzer{content: []byte("<PageLayoutMapping/>\n")}

	res := exp.ExportCustom(context.Background(), folder, false, fakeConnection{publishing: true, id: id}, an)
	if res.Outcome != OutcomeWritten {
		t.Fatalf("outcome = %s, want written (err: %v)", res.Outcome, res.Err)
	}

	wantName := "custompagelayoutmapping-" + id.String() + ".xml"
	if res.File != wantName {
		t.Errorf("file = %q, want %q", res.File, wantName)
	}
	if _, err := os.Stat(filepath.Join(folder, wantName)); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func TestExportCustom_SkipsBeforeAnalysis(t *testing.T) {
	exp, out := testExporter(t)
	folder := t.TempDir()
	id := uuid.New()
	an := &fakeAnalyzer{}

	target := filepath.Join(folder, CustomMappingFileName(id))
	if err := os.WriteFile(target, []byte("existing"), 0644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	res := exp.ExportCustom(context.Background(), folder, false, fakeConnection{publishing: true, id: id}, an)
	if res.Outcome != OutcomeSkipped {
		t.Fatalf("outcome = %s, want skipped", res.Outcome)
	}
	if an.analyseCalled || an.generateCalled {
		t.Error("analyzer ran for a skipped export")
	}
	if out.Len() == 0 {
		t.Error("expected a skip notice, got none")
	}
}

func TestExportCustom_AnalysisErrorPropagates(t *testing.T) {
	exp, _ := testExporter(t)
	folder := t.TempDir()
	an := &fakeAnalyzer{analyseErr: os.ErrDeadlineExceeded}

	res := exp.ExportCustom(context.Background(), folder, false, fakeConnection{publishing: true, id: uuid.New()}, an)
	if res.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %s, want failed", res.Outcome)
	}
	if res.Err == nil {
		t.Error("expected analysis error to propagate")
	}
}

// Branches are independent: a failing custom export leaves template exports
// untouched and vice versa.
func TestBranchesIndependent(t *testing.T) {
	exp, _ := testExporter(t)
	folder := t.TempDir()

	r1 := exp.ExportTemplate(folder, templates.WebPartMapping, false)
	r2 := exp.ExportTemplate(folder, templates.PageLayoutMapping, false)
	r3 := exp.ExportCustom(context.Background(), folder, false,
		fakeConnection{publishing: false, id: uuid.New()}, &fakeAnalyzer{})

	if r1.Outcome != OutcomeWritten || r2.Outcome != OutcomeWritten {
		t.Errorf("template outcomes = %s, %s, want written, written", r1.Outcome, r2.Outcome)
	}
	if r3.Outcome != OutcomeFailed {
		t.Errorf("custom outcome = %s, want failed", r3.Outcome)
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		t.Fatalf("failed to read folder: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected exactly 2 files, found %d", len(entries))
	}
}
