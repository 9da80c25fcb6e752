package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dmelo/ticketstats/internal/model"
	"github.com/dmelo/ticketstats/internal/pipeline"
)

const v1Header = "PK Dataset Chamados,Data criação,Tempo Resolvido (Horas),Analista Responsável,Categoria 1,Flag Atendeu SLA"

// writeExport writes a synthetic export file: two preamble lines, a header,
// then the given data rows.
func writeExport(t *testing.T, dir, name, header string, rows ...string) string {
	t.Helper()
	lines := append([]string{"Relatório de Chamados", "Filtros: todos", header}, rows...)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func load(t *testing.T, paths ...string) (*model.Dataset, *model.LoadSummary, error) {
	t.Helper()
	return pipeline.Load(context.Background(), zerolog.Nop(), model.DefaultSchema(), paths)
}

func TestLoad_MergesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	f1 := writeExport(t, dir, "a.csv", v1Header,
		"CH-1,15/03/2024,2,Ana,Hardware,ATENDEU O SLA",
		"CH-2,16/03/2024,4,Ana,Rede,")
	f2 := writeExport(t, dir, "b.csv", v1Header,
		"CH-3,17/03/2024,6,Bruno,Hardware,ATENDEU O SLA")

	ds, sum, err := load(t, f1, f2)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Tickets) != 3 {
		t.Fatalf("merged %d tickets, want 3", len(ds.Tickets))
	}
	// File order, then within-file order.
	ids := []string{ds.Tickets[0].ID, ds.Tickets[1].ID, ds.Tickets[2].ID}
	if ids[0] != "CH-1" || ids[1] != "CH-2" || ids[2] != "CH-3" {
		t.Errorf("order = %v", ids)
	}
	if sum.FilesRead != 2 || sum.RowsKept != 3 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.BatchID == "" {
		t.Error("summary missing batch id")
	}
}

func TestLoad_BadFileExcludedWithDiagnostic(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.csv")
	if err := os.WriteFile(bad, []byte("just one line"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	good := writeExport(t, dir, "good.csv", v1Header,
		"CH-1,15/03/2024,2,Ana,Hardware,")

	ds, sum, err := load(t, bad, good)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Tickets) != 1 {
		t.Fatalf("tickets = %d, want 1", len(ds.Tickets))
	}
	if sum.FilesRejected != 1 || sum.FilesRead != 1 {
		t.Errorf("summary = %+v", sum)
	}
	if !diagnosticsMention(ds, "broken.csv") {
		t.Errorf("diagnostics should name the broken file: %v", ds.Diagnostics)
	}
}

func TestLoad_MissingDateAliasesExcludesFile(t *testing.T) {
	dir := t.TempDir()
	noDate := writeExport(t, dir, "nodate.csv",
		"ID Chamado,Tempo Resolvido (h),Analista,Categoria",
		"1,2,Ana,Rede")
	good := writeExport(t, dir, "good.csv", v1Header,
		"CH-1,15/03/2024,2,Ana,Hardware,")

	ds, _, err := load(t, noDate, good)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Tickets) != 1 || ds.Tickets[0].ID != "CH-1" {
		t.Fatalf("tickets = %+v", ds.Tickets)
	}
	if !diagnosticsMention(ds, "nodate.csv") {
		t.Errorf("diagnostics should name the rejected file: %v", ds.Diagnostics)
	}
}

func TestLoad_RowDropsSurfacedInDiagnostics(t *testing.T) {
	dir := t.TempDir()
	f := writeExport(t, dir, "a.csv", v1Header,
		"CH-1,15/03/2024,2,Ana,Hardware,",
		"CH-2,not a date,2,Ana,Hardware,")

	ds, sum, err := load(t, f)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sum.RowsDropped != 1 {
		t.Fatalf("RowsDropped = %d, want 1", sum.RowsDropped)
	}
	if !diagnosticsMention(ds, "1 row(s) dropped") {
		t.Errorf("diagnostics = %v", ds.Diagnostics)
	}
}

func TestLoad_EmptyDatasetIsTerminal(t *testing.T) {
	dir := t.TempDir()
	f := writeExport(t, dir, "a.csv", v1Header,
		"CH-1,not a date,abc,,,")

	ds, sum, err := load(t, f)
	if !errors.Is(err, pipeline.ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v (ds=%v)", err, ds)
	}
	if sum == nil || sum.RowsDropped != 1 {
		t.Errorf("summary = %+v", sum)
	}

	var pe *pipeline.PipelineError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PipelineError, got %T", err)
	}
	if pe.Phase != "merge" {
		t.Errorf("phase = %q", pe.Phase)
	}
}

func TestLoad_AllFilesRejected(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.csv")
	os.WriteFile(bad, []byte("x"), 0644)

	_, sum, err := load(t, bad)
	if !errors.Is(err, pipeline.ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
	if sum.FilesRejected != 1 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestSession_CacheHitAndInvalidate(t *testing.T) {
	dir := t.TempDir()
	f := writeExport(t, dir, "a.csv", v1Header,
		"CH-1,15/03/2024,2,Ana,Hardware,ATENDEU O SLA")

	s := pipeline.NewSession(zerolog.Nop(), model.DefaultSchema())
	ctx := context.Background()

	ds1, sum1, err := s.Load(ctx, []string{f})
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	if sum1.FromCache {
		t.Error("first load should not come from cache")
	}
	if sum1.BatchKey == "" {
		t.Error("expected a batch key")
	}

	ds2, sum2, err := s.Load(ctx, []string{f})
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if !sum2.FromCache {
		t.Error("second load of identical content should hit the cache")
	}
	if ds2 != ds1 {
		t.Error("cache hit should return the same dataset")
	}

	s.Invalidate()
	if s.Dataset() != nil {
		t.Error("Invalidate should drop the loaded dataset")
	}
	_, sum3, err := s.Load(ctx, []string{f})
	if err != nil {
		t.Fatalf("Load after Invalidate: %v", err)
	}
	if sum3.FromCache {
		t.Error("load after Invalidate should re-parse")
	}
}

func TestSession_CacheMissOnContentChange(t *testing.T) {
	dir := t.TempDir()
	f := writeExport(t, dir, "a.csv", v1Header,
		"CH-1,15/03/2024,2,Ana,Hardware,")

	s := pipeline.NewSession(zerolog.Nop(), model.DefaultSchema())
	ctx := context.Background()

	if _, _, err := s.Load(ctx, []string{f}); err != nil {
		t.Fatalf("first Load: %v", err)
	}

	// Same path, new content: must be a miss.
	writeExport(t, dir, "a.csv", v1Header,
		"CH-1,15/03/2024,2,Ana,Hardware,",
		"CH-2,16/03/2024,4,Bruno,Rede,")

	ds, sum, err := s.Load(ctx, []string{f})
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if sum.FromCache {
		t.Error("changed content should not hit the cache")
	}
	if len(ds.Tickets) != 2 {
		t.Errorf("tickets = %d, want 2", len(ds.Tickets))
	}
}

func diagnosticsMention(ds *model.Dataset, substr string) bool {
	for _, d := range ds.Diagnostics {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}
