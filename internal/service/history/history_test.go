package history

import (
	"context"
	"errors"
	"testing"

	"prostock/internal/domain/models"
)

// Movements are listed newest-first, as delivered by the backend.
func reportFixture() models.HistoricalStockReport {
	return models.HistoricalStockReport{
		ItemID:          "ITM-1",
		ItemName:        "Kabel NYM",
		OpeningStock:    100,
		TotalIn:         50,
		TotalOut:        30,
		TotalAdjustment: 5,
		ClosingStock:    115,
		Movements: []models.Movement{
			{ID: "m4", Type: models.TypeOpname, Quantity: 5, Timestamp: "2026-08-04T10:00:00Z"},
			{ID: "m3", Type: models.TypeOut, Quantity: 30, Timestamp: "2026-08-03T10:00:00Z"},
			{ID: "m2", Type: models.TypeIn, Quantity: 20, Timestamp: "2026-08-02T10:00:00Z"},
			{ID: "m1", Type: models.TypeIn, Quantity: 30, Timestamp: "2026-08-01T10:00:00Z"},
		},
	}
}

func TestReconstructRunningBalances(t *testing.T) {
	timeline, err := Reconstruct(reportFixture())
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}

	// Oldest-first arithmetic: 100 +30 +20 -30 -5 = 115, presented newest-first.
	wantBalances := []float64{115, 120, 150, 130}
	if len(timeline) != len(wantBalances) {
		t.Fatalf("timeline length = %d, want %d", len(timeline), len(wantBalances))
	}
	for i, want := range wantBalances {
		if timeline[i].Balance != want {
			t.Errorf("timeline[%d] (%s) balance = %g, want %g", i, timeline[i].ID, timeline[i].Balance, want)
		}
	}
	if timeline[0].ID != "m4" {
		t.Error("timeline must stay newest-first")
	}
}

func TestReconstructConservation(t *testing.T) {
	report := reportFixture()

	// Property: closing - opening == totalIn - totalOut - totalAdjustment.
	if diff := report.ClosingStock - report.OpeningStock; diff != report.TotalIn-report.TotalOut-report.TotalAdjustment {
		t.Fatalf("fixture violates throughput identity: %g", diff)
	}

	timeline, err := Reconstruct(report)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if timeline[0].Balance != report.ClosingStock {
		t.Errorf("newest balance = %g, want closing stock %g", timeline[0].Balance, report.ClosingStock)
	}
}

func TestReconstructOpnameSigns(t *testing.T) {
	report := models.HistoricalStockReport{
		OpeningStock: 50,
		ClosingStock: 52,
		Movements: []models.Movement{
			{ID: "surplus", Type: models.TypeOpname, Quantity: -5},
			{ID: "shortage", Type: models.TypeOpname, Quantity: 3},
		},
	}

	timeline, err := Reconstruct(report)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	// Oldest first: 50 - 3 = 47, then 47 - (-5) = 52.
	if timeline[1].Balance != 47 {
		t.Errorf("shortage balance = %g, want 47", timeline[1].Balance)
	}
	if timeline[0].Balance != 52 {
		t.Errorf("surplus balance = %g, want 52", timeline[0].Balance)
	}
}

func TestReconstructEmptyMovements(t *testing.T) {
	report := models.HistoricalStockReport{OpeningStock: 80, ClosingStock: 80}

	timeline, err := Reconstruct(report)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if len(timeline) != 0 {
		t.Errorf("timeline = %+v, want empty", timeline)
	}
}

func TestReconstructDetectsMismatch(t *testing.T) {
	report := reportFixture()
	report.ClosingStock = 999

	_, err := Reconstruct(report)
	var conservation *ConservationError
	if !errors.As(err, &conservation) {
		t.Fatalf("expected ConservationError, got %v", err)
	}
	if conservation.Computed != 115 || conservation.Reported != 999 {
		t.Errorf("conservation detail = %+v", conservation)
	}
}

func TestReconstructNoFloatDrift(t *testing.T) {
	report := models.HistoricalStockReport{
		OpeningStock: 0,
		ClosingStock: 0.3,
		Movements: []models.Movement{
			{ID: "m3", Type: models.TypeIn, Quantity: 0.1},
			{ID: "m2", Type: models.TypeIn, Quantity: 0.1},
			{ID: "m1", Type: models.TypeIn, Quantity: 0.1},
		},
	}

	timeline, err := Reconstruct(report)
	if err != nil {
		t.Fatalf("0.1+0.1+0.1 must land exactly on 0.3, got %v", err)
	}
	if timeline[0].Balance != 0.3 {
		t.Errorf("newest balance = %v, want 0.3", timeline[0].Balance)
	}
}

type fakeReportFetcher struct {
	report *models.HistoricalStockReport
	err    error
}

func (f *fakeReportFetcher) GetHistoricalStockReport(ctx context.Context, itemID, startDate, endDate string) (*models.HistoricalStockReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func TestServiceFetch(t *testing.T) {
	report := reportFixture()
	svc := NewService(&fakeReportFetcher{report: &report}, nil)

	got, err := svc.Fetch(context.Background(), "ITM-1", "2026-08-01", "2026-08-31")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got.Timeline) != 4 || got.ItemName != "Kabel NYM" {
		t.Errorf("report = %+v", got)
	}
}

func TestServiceFetchRequiresItem(t *testing.T) {
	svc := NewService(&fakeReportFetcher{}, nil)
	if _, err := svc.Fetch(context.Background(), "", "a", "b"); !errors.Is(err, ErrNoItem) {
		t.Errorf("Fetch without item = %v, want ErrNoItem", err)
	}
}
