// Package registration implements the pending-registration workflow:
// self-signup lands in a holding collection until an admin approves or
// rejects it.
package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/platform/store"
)

// Collection holds employee-shaped records awaiting approval.
const Collection = "pending_registrations"

var (
	ErrUserExists     = errors.New("user already exists")
	ErrAlreadyPending = errors.New("registration already pending")
	ErrNotFound       = errors.New("registration request not found")
)

type Service struct {
	Store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{Store: s}
}

// Register files a pending employee-shaped record. The id is allocated
// across both the live and pending collections so approval rarely has to
// renumber. Only the bcrypt hash of the password is persisted.
func (s *Service) Register(ctx context.Context, name, email, password, role string) (employee.Employee, error) {
	email = strings.ToLower(email)
	hash, err := auth.HashPassword(password)
	if err != nil {
		return employee.Employee{}, err
	}

	var created employee.Employee
	err = store.UpdatePair(s.Store, employee.Collection, Collection,
		func(employees, pending []employee.Employee) ([]employee.Employee, []employee.Employee, error) {
			for _, existing := range employees {
				if existing.Email == email {
					return nil, nil, ErrUserExists
				}
			}
			for _, existing := range pending {
				if existing.Email == email {
					return nil, nil, ErrAlreadyPending
				}
			}

			id := store.NextID(employees, employeeID)
			if pendingNext := store.NextID(pending, employeeID); pendingNext > id {
				id = pendingNext
			}

			created = employee.Employee{
				ID:           id,
				Name:         name,
				Email:        email,
				Role:         normalizeSignupRole(role),
				Department:   "Unassigned",
				JoiningDate:  time.Now().Format("2006-01-02"),
				EmployeeID:   fmt.Sprintf("EMP%03d", id),
				Avatar:       initials(name),
				Status:       employee.StatusPending,
				PasswordHash: hash,
			}
			return employees, append(pending, created), nil
		})
	if err != nil {
		return employee.Employee{}, err
	}
	return created, nil
}

// Pending lists registrations awaiting a decision, sanitized.
func (s *Service) Pending(ctx context.Context) ([]employee.Employee, error) {
	pending, err := store.Load[employee.Employee](s.Store, Collection)
	if err != nil {
		return nil, err
	}
	out := make([]employee.Employee, 0, len(pending))
	for _, record := range pending {
		out = append(out, record.Sanitized())
	}
	return out, nil
}

// Approve moves a pending record into the employee collection, re-checking
// id uniqueness against the current employee max and renumbering if needed.
func (s *Service) Approve(ctx context.Context, id int) (employee.Employee, error) {
	var approved employee.Employee
	err := store.UpdatePair(s.Store, employee.Collection, Collection,
		func(employees, pending []employee.Employee) ([]employee.Employee, []employee.Employee, error) {
			index := -1
			for i, record := range pending {
				if record.ID == id {
					index = i
					break
				}
			}
			if index == -1 {
				return nil, nil, ErrNotFound
			}

			record := pending[index]
			record.Status = employee.StatusActive
			if next := store.NextID(employees, employeeID); record.ID < next {
				record.ID = next
			}

			approved = record
			employees = append(employees, record)
			pending = append(pending[:index], pending[index+1:]...)
			return employees, pending, nil
		})
	if err != nil {
		return employee.Employee{}, err
	}
	return approved, nil
}

// Reject drops a pending record.
func (s *Service) Reject(ctx context.Context, id int) error {
	return store.Update(s.Store, Collection, func(pending []employee.Employee) ([]employee.Employee, error) {
		for i, record := range pending {
			if record.ID == id {
				return append(pending[:i], pending[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

func employeeID(e employee.Employee) int { return e.ID }

// normalizeSignupRole coerces self-signup roles to Admin or Employee,
// defaulting to Employee.
func normalizeSignupRole(role string) string {
	switch auth.NormalizeRole(role) {
	case "admin":
		return "Admin"
	default:
		return "Employee"
	}
}

// initials derives the avatar text from up to the first two name words.
func initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		out = append(out, []rune(word)[0])
		if len(out) == 2 {
			break
		}
	}
	return strings.ToUpper(string(out))
}
