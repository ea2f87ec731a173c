// Package report stores daily morning/afternoon status reports.
package report

import (
	"context"
	"sort"
	"time"

	"hrms/internal/platform/store"
)

const Collection = "daily_reports"

type Report struct {
	ID              int    `json:"id"`
	EmployeeID      int    `json:"employeeId"`
	EmployeeName    string `json:"employeeName"`
	Role            string `json:"role,omitempty"`
	Department      string `json:"department,omitempty"`
	Date            string `json:"date"`
	MorningReport   string `json:"morningReport"`
	AfternoonReport string `json:"afternoonReport"`
	Timestamp       string `json:"timestamp"`
}

type Service struct {
	Store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{Store: s}
}

// Create appends a report stamped with the submission time.
func (s *Service) Create(ctx context.Context, input Report) (Report, error) {
	input.Timestamp = time.Now().UTC().Format(time.RFC3339)

	err := store.Update(s.Store, Collection, func(reports []Report) ([]Report, error) {
		input.ID = store.NextID(reports, func(r Report) int { return r.ID })
		return append(reports, input), nil
	})
	if err != nil {
		return Report{}, err
	}
	return input, nil
}

// List returns every report, newest submission first.
func (s *Service) List(ctx context.Context) ([]Report, error) {
	reports, err := store.Load[Report](s.Store, Collection)
	if err != nil {
		return nil, err
	}
	sortReports(reports)
	return reports, nil
}

// ByEmployee returns one employee's reports, newest submission first.
func (s *Service) ByEmployee(ctx context.Context, employeeID int) ([]Report, error) {
	reports, err := store.Load[Report](s.Store, Collection)
	if err != nil {
		return nil, err
	}
	out := make([]Report, 0, len(reports))
	for _, rep := range reports {
		if rep.EmployeeID == employeeID {
			out = append(out, rep)
		}
	}
	sortReports(out)
	return out, nil
}

func sortReports(reports []Report) {
	sort.SliceStable(reports, func(i, j int) bool { return reports[i].Timestamp > reports[j].Timestamp })
}
