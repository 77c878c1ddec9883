package memory

import (
	"context"
	"testing"
)

func TestWeightRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	userID := "U1"

	// No records yet
	latest, err := db.LatestWeight(ctx, userID)
	if err != nil {
		t.Fatalf("LatestWeight: %v", err)
	}
	if latest != nil {
		t.Fatalf("expected nil latest, got %v", *latest)
	}

	// Add event
	id, err := db.AddWeight(ctx, userID, 70.0, "2024-01-01 07:00")
	if err != nil {
		t.Fatalf("AddWeight: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero ID")
	}
	_, _ = db.AddWeight(ctx, userID, 71.0, "2024-01-02 07:00")

	// List events
	events, err := db.ListUserWeights(ctx, userID, 10)
	if err != nil {
		t.Fatalf("ListUserWeights: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Weight != 71.0 {
		t.Errorf("expected newest first, got %v", events[0].Weight)
	}

	// Other user sees nothing
	events2, _ := db.ListUserWeights(ctx, "U999", 10)
	if len(events2) != 0 {
		t.Error("expected 0 events for other user")
	}

	latest, _ = db.LatestWeight(ctx, userID)
	if latest == nil || *latest != 71.0 {
		t.Fatalf("expected latest 71.0, got %v", latest)
	}

	// Delete latest
	ok, err := db.DeleteLatestWeight(ctx, userID)
	if err != nil {
		t.Fatalf("DeleteLatestWeight: %v", err)
	}
	if !ok {
		t.Error("expected true")
	}
	latest, _ = db.LatestWeight(ctx, userID)
	if latest == nil || *latest != 70.0 {
		t.Fatalf("expected latest 70.0 after delete, got %v", latest)
	}

	_, _ = db.DeleteLatestWeight(ctx, userID)
	ok, _ = db.DeleteLatestWeight(ctx, userID)
	if ok {
		t.Error("expected false when nothing is left")
	}
}

func TestDeleteLatest_SameTimestamp(t *testing.T) {
	db := New()
	ctx := context.Background()
	_, _ = db.AddWeight(ctx, "U1", 70.0, "2024-01-01 07:00")
	_, _ = db.AddWeight(ctx, "U1", 70.4, "2024-01-01 07:00")

	if ok, _ := db.DeleteLatestWeight(ctx, "U1"); !ok {
		t.Fatal("expected delete")
	}
	items, _ := db.ListUserWeights(ctx, "U1", 10)
	if len(items) != 1 || items[0].Weight != 70.0 {
		t.Fatalf("expected the later insert to be removed, got %+v", items)
	}
}

func TestListRecentWeights_AllUsers(t *testing.T) {
	db := New()
	ctx := context.Background()
	_, _ = db.AddWeight(ctx, "U1", 70, "2024-01-01 07:00")
	_, _ = db.AddWeight(ctx, "U2", 60, "2024-01-03 07:00")
	_, _ = db.AddWeight(ctx, "U1", 71, "2024-01-02 07:00")

	items, err := db.ListRecentWeights(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecentWeights: %v", err)
	}
	if len(items) != 2 || items[0].UserID != "U2" || items[1].Weight != 71 {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestMonthlyAverages(t *testing.T) {
	db := New()
	ctx := context.Background()
	_, _ = db.AddWeight(ctx, "U1", 70, "2024-01-05 07:00")
	_, _ = db.AddWeight(ctx, "U2", 72, "2024-01-20 07:00")
	_, _ = db.AddWeight(ctx, "U1", 68, "2024-02-01 07:00")

	got, err := db.MonthlyAverages(ctx, 0)
	if err != nil {
		t.Fatalf("MonthlyAverages: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 months, got %d", len(got))
	}
	if got[0].Month != "2024-02" || got[0].AvgWeight != 68.0 {
		t.Errorf("unexpected first month: %+v", got[0])
	}
	if got[1].Month != "2024-01" || got[1].AvgWeight != 71.0 {
		t.Errorf("unexpected second month: %+v", got[1])
	}

	got, _ = db.MonthlyAverages(ctx, 1)
	if len(got) != 1 || got[0].Month != "2024-02" {
		t.Errorf("expected only the newest month, got %+v", got)
	}
}

func TestWeightsBetween(t *testing.T) {
	db := New()
	ctx := context.Background()
	_, _ = db.AddWeight(ctx, "U1", 69, "2023-12-31 23:59")
	_, _ = db.AddWeight(ctx, "U1", 71, "2024-01-31 23:30")
	_, _ = db.AddWeight(ctx, "U1", 70, "2024-01-01 00:00")
	_, _ = db.AddWeight(ctx, "U1", 72, "2024-02-01 00:05")

	got, err := db.WeightsBetween(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("WeightsBetween: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 points, got %+v", got)
	}
	if got[0].Date != "2024-01-01 00:00" || got[1].Date != "2024-01-31 23:30" {
		t.Errorf("expected ascending dates, got %+v", got)
	}
}
