package aggregate

import (
	"reflect"
	"testing"
	"time"

	"github.com/dmelo/ticketstats/internal/model"
)

const slaMet = model.DefaultSLAMet

func tk(analyst, category string, hours float64, sla string) model.Ticket {
	return model.Ticket{
		Analyst:       analyst,
		Category:      category,
		ResolvedHours: hours,
		SLAStatus:     sla,
		CreatedAt:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMeanByCategory_ExactMean(t *testing.T) {
	tickets := []model.Ticket{
		tk("Ana", "Hardware", 2.0, ""),
		tk("Bruno", "Hardware", 4.0, ""),
		tk("Ana", "Hardware", 6.0, ""),
	}

	got := MeanByCategory(tickets)
	if len(got) != 1 {
		t.Fatalf("groups = %v", got)
	}
	if got[0].Mean != 4.0 {
		t.Errorf("mean = %v, want exactly 4.0", got[0].Mean)
	}
	if got[0].Count != 3 {
		t.Errorf("count = %d", got[0].Count)
	}
}

func TestMeanByCategory_RankedDescending(t *testing.T) {
	tickets := []model.Ticket{
		tk("Ana", "Rede", 1, ""),
		tk("Ana", "Hardware", 10, ""),
		tk("Ana", "Software", 5, ""),
	}

	got := MeanByCategory(tickets)
	keys := []string{got[0].Key, got[1].Key, got[2].Key}
	if !reflect.DeepEqual(keys, []string{"Hardware", "Software", "Rede"}) {
		t.Errorf("ranking = %v", keys)
	}
}

func TestMeanByCategory_OnlyPresentGroups(t *testing.T) {
	got := MeanByCategory([]model.Ticket{tk("Ana", "Hardware", 2, "")})
	if len(got) != 1 {
		t.Errorf("expected only observed categories, got %v", got)
	}
}

func TestMeanMatrix(t *testing.T) {
	tickets := []model.Ticket{
		tk("Bruno", "Rede", 4, ""),
		tk("Ana", "Hardware", 2, ""),
		tk("Ana", "Hardware", 4, ""),
	}

	m := MeanMatrix(tickets)
	if !reflect.DeepEqual(m.Analysts, []string{"Ana", "Bruno"}) {
		t.Fatalf("analysts = %v", m.Analysts)
	}
	if !reflect.DeepEqual(m.Categories, []string{"Hardware", "Rede"}) {
		t.Fatalf("categories = %v", m.Categories)
	}
	if m.Cells[0][0] != 3.0 {
		t.Errorf("Ana/Hardware = %v, want 3.0", m.Cells[0][0])
	}
	if m.Cells[0][1] != 0 {
		t.Errorf("Ana/Rede = %v, want zero-filled", m.Cells[0][1])
	}
	if m.Cells[1][1] != 4.0 {
		t.Errorf("Bruno/Rede = %v", m.Cells[1][1])
	}
}

func TestPerformanceByAnalyst_SLARate(t *testing.T) {
	var tickets []model.Ticket
	for i := 0; i < 10; i++ {
		sla := slaMet
		if i >= 7 {
			sla = "NÃO ATENDEU O SLA"
		}
		tickets = append(tickets, tk("Ana", "Hardware", 2, sla))
	}

	got := PerformanceByAnalyst(tickets, slaMet)
	if len(got) != 1 {
		t.Fatalf("rows = %v", got)
	}
	if got[0].SLARate != 70.0 {
		t.Errorf("rate = %v, want 70.0", got[0].SLARate)
	}
	if got[0].Tickets != 10 {
		t.Errorf("tickets = %d", got[0].Tickets)
	}
}

func TestPerformanceByAnalyst_NoStatusIsZeroRate(t *testing.T) {
	tickets := []model.Ticket{
		tk("Ana", "Hardware", 2, ""),
		tk("Ana", "Hardware", 4, ""),
	}

	got := PerformanceByAnalyst(tickets, slaMet)
	if got[0].SLARate != 0 {
		t.Errorf("rate = %v, want 0 when no ticket carries a status", got[0].SLARate)
	}
}

func TestPerformance_SortAndTieBreak(t *testing.T) {
	tickets := []model.Ticket{
		tk("Carla", "Hardware", 2, ""),
		tk("Ana", "Hardware", 2, ""),
		tk("Ana", "Hardware", 2, ""),
		tk("Bruno", "Hardware", 2, ""),
	}

	got := PerformanceByAnalyst(tickets, slaMet)
	names := []string{got[0].Group, got[1].Group, got[2].Group}
	// Ana leads on count; Bruno and Carla tie and order by name.
	if !reflect.DeepEqual(names, []string{"Ana", "Bruno", "Carla"}) {
		t.Errorf("order = %v", names)
	}
}

func TestPerformance_StableAcrossRuns(t *testing.T) {
	tickets := []model.Ticket{
		tk("Bruno", "Rede", 1, slaMet),
		tk("Ana", "Hardware", 2, ""),
		tk("Carla", "Software", 3, slaMet),
	}

	first := PerformanceByCategory(tickets, slaMet)
	for i := 0; i < 10; i++ {
		if again := PerformanceByCategory(tickets, slaMet); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d produced a different order:\n%v\n%v", i, first, again)
		}
	}
}

func TestPerformanceByCategory(t *testing.T) {
	tickets := []model.Ticket{
		tk("Ana", "Hardware", 2, slaMet),
		tk("Bruno", "Hardware", 6, ""),
		tk("Ana", "Rede", 4, slaMet),
	}

	got := PerformanceByCategory(tickets, slaMet)
	if got[0].Group != "Hardware" || got[0].Tickets != 2 {
		t.Fatalf("rows = %v", got)
	}
	if got[0].MeanHours != 4.0 {
		t.Errorf("mean = %v", got[0].MeanHours)
	}
	if got[0].SLARate != 50.0 {
		t.Errorf("rate = %v, want 50.0", got[0].SLARate)
	}
}
