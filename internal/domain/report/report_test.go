package report

import (
	"context"
	"testing"

	"hrms/internal/platform/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	return NewService(s)
}

func TestCreateStampsSubmission(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), Report{
		EmployeeID:      1,
		EmployeeName:    "Ana",
		Date:            "2026-08-30",
		MorningReport:   "Reviewed onboarding documents",
		AfternoonReport: "Interviewed two candidates",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("unexpected id %d", created.ID)
	}
	if created.Timestamp == "" {
		t.Fatal("missing submission timestamp")
	}
}

func TestListSortsNewestFirst(t *testing.T) {
	svc := newTestService(t)

	if err := store.Save(svc.Store, Collection, []Report{
		{ID: 1, EmployeeID: 1, Timestamp: "2026-08-29T09:00:00Z"},
		{ID: 2, EmployeeID: 2, Timestamp: "2026-08-30T09:00:00Z"},
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reports, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(reports) != 2 || reports[0].ID != 2 {
		t.Fatalf("wrong order: %+v", reports)
	}
}

func TestByEmployeeFilters(t *testing.T) {
	svc := newTestService(t)

	if err := store.Save(svc.Store, Collection, []Report{
		{ID: 1, EmployeeID: 1, Timestamp: "2026-08-29T09:00:00Z"},
		{ID: 2, EmployeeID: 2, Timestamp: "2026-08-30T09:00:00Z"},
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reports, err := svc.ByEmployee(context.Background(), 2)
	if err != nil {
		t.Fatalf("ByEmployee: %v", err)
	}
	if len(reports) != 1 || reports[0].EmployeeID != 2 {
		t.Fatalf("unexpected reports %+v", reports)
	}
}
