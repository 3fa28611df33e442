package memory

import (
	"context"
	"testing"
	"time"

	"github.com/chartproof/chartproof/internal/models"
)

func reportAt(id string, ts time.Time) *models.Report {
	return &models.Report{
		ID:        id,
		Timestamp: ts,
		Ticker:    "AAPL",
		Strategy:  "SMC",
		Grade:     models.GradeB,
	}
}

func TestReportStoreListOrdering(t *testing.T) {
	ctx := context.Background()
	s := NewReportStore()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Insert out of order; List must come back newest first.
	for _, offset := range []int{100, 300, 200} {
		if _, err := s.Save(ctx, reportAt(time.Duration(offset).String(), base.Add(time.Duration(offset)*time.Second))); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	reports, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("len = %d, want 3", len(reports))
	}
	for i := 1; i < len(reports); i++ {
		if reports[i].Timestamp.After(reports[i-1].Timestamp) {
			t.Fatal("reports not sorted by timestamp descending")
		}
	}
	if !reports[0].Timestamp.Equal(base.Add(300 * time.Second)) {
		t.Error("newest report should be first")
	}
}

func TestReportStoreSaveIsUpsert(t *testing.T) {
	ctx := context.Background()
	s := NewReportStore()
	ts := time.Now().UTC()

	if _, err := s.Save(ctx, reportAt("r1", ts)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	updated := reportAt("r1", ts)
	updated.Grade = models.GradeAPlus
	if _, err := s.Save(ctx, updated); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Grade != models.GradeAPlus {
		t.Errorf("grade = %q, want A+", got.Grade)
	}
	if reports, _ := s.List(ctx); len(reports) != 1 {
		t.Error("upsert should not duplicate")
	}
}

func TestReportStoreGetMissing(t *testing.T) {
	s := NewReportStore()
	got, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Error("missing id should return nil, not error")
	}
}

func TestReportStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewReportStore()
	s.Save(ctx, reportAt("r1", time.Now()))

	existed, err := s.Delete(ctx, "r1")
	if err != nil || !existed {
		t.Fatalf("Delete = %v, %v; want true, nil", existed, err)
	}

	// Second delete reports absence without error.
	existed, err = s.Delete(ctx, "r1")
	if err != nil || existed {
		t.Fatalf("second Delete = %v, %v; want false, nil", existed, err)
	}

	if got, _ := s.Get(ctx, "r1"); got != nil {
		t.Error("deleted report still retrievable")
	}
}

func TestReportStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewReportStore()
	original := reportAt("r1", time.Now())
	s.Save(ctx, original)

	original.Grade = models.GradeC
	got, _ := s.Get(ctx, "r1")
	if got.Grade != models.GradeB {
		t.Error("store shares memory with caller-held report")
	}

	got.Grade = models.GradeC
	again, _ := s.Get(ctx, "r1")
	if again.Grade != models.GradeB {
		t.Error("store shares memory with returned report")
	}
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	user := &models.UserProfile{ID: "u1", Username: "trader", PasswordHash: "hash"}
	if err := s.Save(ctx, user); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "u1")
	if err != nil || got == nil || got.Username != "trader" {
		t.Fatalf("Get = %+v, %v", got, err)
	}

	byName, err := s.GetByUsername(ctx, "TRADER")
	if err != nil || byName == nil || byName.ID != "u1" {
		t.Fatalf("GetByUsername should be case-insensitive, got %+v, %v", byName, err)
	}

	if missing, _ := s.GetByUsername(ctx, "nobody"); missing != nil {
		t.Error("unknown username should return nil")
	}

	existed, err := s.Delete(ctx, "u1")
	if err != nil || !existed {
		t.Fatalf("Delete = %v, %v", existed, err)
	}
	if got, _ := s.Get(ctx, "u1"); got != nil {
		t.Error("deleted user still retrievable")
	}
}
