// Package attendance tracks one check-in/check-out record per employee
// per calendar day.
package attendance

import (
	"context"
	"errors"
	"sort"
	"time"

	"hrms/internal/domain/employee"
	"hrms/internal/platform/store"
)

const Collection = "attendance"

const StatusPresent = "Present"

var (
	ErrAlreadyCheckedIn  = errors.New("already clocked in today")
	ErrNoCheckIn         = errors.New("no clock-in record for today")
	ErrAlreadyCheckedOut = errors.New("already clocked out today")
)

type Record struct {
	ID         int    `json:"id"`
	EmployeeID int    `json:"employee_id"`
	Date       string `json:"date"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out,omitempty"`
	Status     string `json:"status"`
}

// View is a record joined with the employee name at read time.
type View struct {
	Record
	EmployeeName string `json:"employeeName"`
}

type Service struct {
	Store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{Store: s}
}

// List returns every record joined with the employee name, newest date
// first.
func (s *Service) List(ctx context.Context) ([]View, error) {
	records, err := store.Load[Record](s.Store, Collection)
	if err != nil {
		return nil, err
	}
	employees, err := store.Load[employee.Employee](s.Store, employee.Collection)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(records))
	for _, record := range records {
		views = append(views, View{Record: record, EmployeeName: employee.NameByID(employees, record.EmployeeID)})
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].Date > views[j].Date })
	return views, nil
}

// CheckIn records the current time for (employee, today). A second call
// the same day conflicts and leaves the stored record unchanged.
func (s *Service) CheckIn(ctx context.Context, employeeID int) (Record, error) {
	now := time.Now()
	record := Record{
		EmployeeID: employeeID,
		Date:       now.Format("2006-01-02"),
		CheckIn:    now.Format("15:04:05"),
		Status:     StatusPresent,
	}

	err := store.Update(s.Store, Collection, func(records []Record) ([]Record, error) {
		for _, existing := range records {
			if existing.EmployeeID == employeeID && existing.Date == record.Date {
				return nil, ErrAlreadyCheckedIn
			}
		}
		record.ID = store.NextID(records, func(r Record) int { return r.ID })
		return append(records, record), nil
	})
	if err != nil {
		return Record{}, err
	}
	return record, nil
}

// CheckOut stamps the check-out time on today's record. A repeated
// checkout is rejected rather than silently overwriting the first stamp.
func (s *Service) CheckOut(ctx context.Context, employeeID int) (Record, error) {
	now := time.Now()
	today := now.Format("2006-01-02")
	stamp := now.Format("15:04:05")

	var updated Record
	err := store.Update(s.Store, Collection, func(records []Record) ([]Record, error) {
		for i, existing := range records {
			if existing.EmployeeID != employeeID || existing.Date != today {
				continue
			}
			if existing.CheckOut != "" {
				return nil, ErrAlreadyCheckedOut
			}
			records[i].CheckOut = stamp
			updated = records[i]
			return records, nil
		}
		return nil, ErrNoCheckIn
	})
	if err != nil {
		return Record{}, err
	}
	return updated, nil
}

// ByEmployee returns one employee's records, newest date first.
func (s *Service) ByEmployee(ctx context.Context, employeeID int) ([]Record, error) {
	records, err := store.Load[Record](s.Store, Collection)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(records))
	for _, record := range records {
		if record.EmployeeID == employeeID {
			out = append(out, record)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}
