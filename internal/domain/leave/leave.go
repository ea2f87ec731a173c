// Package leave manages leave requests and their approval state.
package leave

import (
	"context"
	"errors"
	"sort"
	"time"

	"hrms/internal/domain/employee"
	"hrms/internal/platform/store"
)

const Collection = "leaves"

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

var ErrNotFound = errors.New("leave not found")

type Leave struct {
	ID         int     `json:"id"`
	EmployeeID int     `json:"employee_id"`
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Days       float64 `json:"days"`
	Reason     string  `json:"reason"`
	AppliedOn  string  `json:"applied_on"`
	Status     string  `json:"status"`
	ApprovedBy *int    `json:"approved_by,omitempty"`
	ApprovedOn string  `json:"approved_on,omitempty"`
}

// View is the camelCase read shape the client consumes.
type View struct {
	ID           int     `json:"id"`
	EmployeeID   int     `json:"employeeId"`
	EmployeeName string  `json:"employeeName,omitempty"`
	LeaveType    string  `json:"leaveType"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Days         float64 `json:"days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	AppliedOn    string  `json:"appliedOn"`
}

type Service struct {
	Store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{Store: s}
}

// Create files a new pending request. The day count is taken from the
// caller, not re-derived from the dates.
func (s *Service) Create(ctx context.Context, request Leave) (Leave, error) {
	request.AppliedOn = time.Now().Format("2006-01-02")
	request.Status = StatusPending
	request.ApprovedBy = nil
	request.ApprovedOn = ""

	err := store.Update(s.Store, Collection, func(leaves []Leave) ([]Leave, error) {
		request.ID = store.NextID(leaves, func(l Leave) int { return l.ID })
		return append(leaves, request), nil
	})
	if err != nil {
		return Leave{}, err
	}
	return request, nil
}

// List returns every request joined with the employee name, newest
// applied-on first.
func (s *Service) List(ctx context.Context) ([]View, error) {
	leaves, err := store.Load[Leave](s.Store, Collection)
	if err != nil {
		return nil, err
	}
	employees, err := store.Load[employee.Employee](s.Store, employee.Collection)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(leaves))
	for _, request := range leaves {
		view := toView(request)
		view.EmployeeName = employee.NameByID(employees, request.EmployeeID)
		views = append(views, view)
	}
	sortViews(views)
	return views, nil
}

// UpdateStatus overwrites status, approver, and approval date. There is no
// prior-state check: a decided request can be re-transitioned.
func (s *Service) UpdateStatus(ctx context.Context, id int, status string, approvedBy int) (Leave, error) {
	var updated Leave
	err := store.Update(s.Store, Collection, func(leaves []Leave) ([]Leave, error) {
		for i, request := range leaves {
			if request.ID != id {
				continue
			}
			leaves[i].Status = status
			leaves[i].ApprovedBy = &approvedBy
			leaves[i].ApprovedOn = time.Now().Format("2006-01-02")
			updated = leaves[i]
			return leaves, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return Leave{}, err
	}
	return updated, nil
}

// ByEmployee returns one employee's requests, newest applied-on first.
func (s *Service) ByEmployee(ctx context.Context, employeeID int) ([]View, error) {
	leaves, err := store.Load[Leave](s.Store, Collection)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(leaves))
	for _, request := range leaves {
		if request.EmployeeID == employeeID {
			views = append(views, toView(request))
		}
	}
	sortViews(views)
	return views, nil
}

func toView(request Leave) View {
	return View{
		ID:         request.ID,
		EmployeeID: request.EmployeeID,
		LeaveType:  request.LeaveType,
		StartDate:  request.StartDate,
		EndDate:    request.EndDate,
		Days:       request.Days,
		Reason:     request.Reason,
		Status:     request.Status,
		AppliedOn:  request.AppliedOn,
	}
}

func sortViews(views []View) {
	sort.SliceStable(views, func(i, j int) bool { return views[i].AppliedOn > views[j].AppliedOn })
}
