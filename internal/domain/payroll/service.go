// Package payroll generates and maintains monthly payroll records.
package payroll

import (
	"context"
	"math"
	"sort"
	"time"

	"hrms/internal/domain/employee"
	"hrms/internal/platform/store"
)

type Service struct {
	Store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{Store: s}
}

// List returns every record joined with the employee name, newest
// (year, month) first.
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
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Year != views[j].Year {
			return views[i].Year > views[j].Year
		}
		return views[i].Month > views[j].Month
	})
	return views, nil
}

// Generate fills payroll gaps for (month, year): every active employee
// without a record for the period gets one; existing records are left
// untouched, so re-running is idempotent. Returns how many were created.
func (s *Service) Generate(ctx context.Context, month, year int) (int, error) {
	employees, err := store.Load[employee.Employee](s.Store, employee.Collection)
	if err != nil {
		return 0, err
	}

	created := 0
	err = store.Update(s.Store, Collection, func(records []Record) ([]Record, error) {
		for _, emp := range employees {
			if emp.Status != employee.StatusActive {
				continue
			}
			if hasRecord(records, emp.ID, month, year) {
				continue
			}

			allowances, deductions, netPay := Compute(emp.Salary)
			records = append(records, Record{
				ID:         store.NextID(records, recordID),
				EmployeeID: emp.ID,
				Month:      month,
				Year:       year,
				BaseSalary: emp.Salary,
				Allowances: allowances,
				Deductions: deductions,
				NetPay:     netPay,
				TaxStatus:  true,
				PFStatus:   true,
				ESIStatus:  true,
				CreatedAt:  time.Now().UTC().Format(time.RFC3339),
			})
			created++
		}
		return records, nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// UpdateAmounts overwrites the money components and recomputes net pay.
// Compliance flags are not recomputed.
func (s *Service) UpdateAmounts(ctx context.Context, id int, baseSalary, allowances, deductions float64) (Record, error) {
	for _, value := range []float64{baseSalary, allowances, deductions} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return Record{}, ErrInvalidAmounts
		}
	}

	var updated Record
	err := store.Update(s.Store, Collection, func(records []Record) ([]Record, error) {
		for i, record := range records {
			if record.ID != id {
				continue
			}
			records[i].BaseSalary = baseSalary
			records[i].Allowances = allowances
			records[i].Deductions = deductions
			records[i].NetPay = NetPay(baseSalary, allowances, deductions)
			records[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			updated = records[i]
			return records, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return Record{}, err
	}
	return updated, nil
}

// Get returns one record by id.
func (s *Service) Get(ctx context.Context, id int) (Record, error) {
	records, err := store.Load[Record](s.Store, Collection)
	if err != nil {
		return Record{}, err
	}
	for _, record := range records {
		if record.ID == id {
			return record, nil
		}
	}
	return Record{}, ErrNotFound
}

// ByEmployee returns one employee's records, newest (year, month) first.
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
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out, nil
}

// EmployeeName resolves the name for payslip rendering.
func (s *Service) EmployeeName(ctx context.Context, employeeID int) (string, error) {
	employees, err := store.Load[employee.Employee](s.Store, employee.Collection)
	if err != nil {
		return "", err
	}
	return employee.NameByID(employees, employeeID), nil
}

func hasRecord(records []Record, employeeID, month, year int) bool {
	for _, record := range records {
		if record.EmployeeID == employeeID && record.Month == month && record.Year == year {
			return true
		}
	}
	return false
}

func recordID(r Record) int { return r.ID }
