package employee

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/store"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// allowedPatchFields is what a non-admin caller may change on their own
// record. Everything else is stripped or rejected depending on policy.
var allowedPatchFields = map[string]struct{}{
	"documents":        {},
	"personal_contact": {},
	"photo":            {},
	"phone":            {},
	"location":         {},
}

type Service struct {
	Store        *store.Store
	UpdatePolicy string // "strip" or "reject"
}

func NewService(s *store.Store, updatePolicy string) *Service {
	return &Service{Store: s, UpdatePolicy: updatePolicy}
}

// List returns active employees with credential fields stripped.
func (s *Service) List(ctx context.Context) ([]Employee, error) {
	employees, err := store.Load[Employee](s.Store, Collection)
	if err != nil {
		return nil, err
	}
	active := make([]Employee, 0, len(employees))
	for _, emp := range employees {
		if emp.Status == StatusActive {
			active = append(active, emp.Sanitized())
		}
	}
	return active, nil
}

// Get returns one employee regardless of status, sanitized.
func (s *Service) Get(ctx context.Context, id int) (Employee, error) {
	employees, err := store.Load[Employee](s.Store, Collection)
	if err != nil {
		return Employee{}, err
	}
	for _, emp := range employees {
		if emp.ID == id {
			return emp.Sanitized(), nil
		}
	}
	return Employee{}, ErrNotFound
}

// Create validates and appends a new active employee, returning its id.
func (s *Service) Create(ctx context.Context, emp Employee, password string) (int, error) {
	if err := validatePhones(emp.Phone, personalPhone(emp.PersonalContact)); err != nil {
		return 0, err
	}

	var created int
	err := store.Update(s.Store, Collection, func(employees []Employee) ([]Employee, error) {
		for _, existing := range employees {
			if existing.Email == emp.Email || (emp.Username != "" && existing.Username == emp.Username) {
				return nil, ErrDuplicate
			}
		}

		emp.ID = store.NextID(employees, func(e Employee) int { return e.ID })
		emp.Status = StatusActive
		if password != "" {
			hash, err := auth.HashPassword(password)
			if err != nil {
				return nil, err
			}
			emp.PasswordHash = hash
		}

		created = emp.ID
		return append(employees, emp), nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// Update applies a partial patch to an employee. The id field is always
// stripped; non-admin callers are limited to the field allow-list; a
// supplied password is re-hashed.
func (s *Service) Update(ctx context.Context, id int, patch map[string]any, isAdmin bool) error {
	patch = clonePatch(patch)
	delete(patch, "id")

	password, _ := patch["password"].(string)
	delete(patch, "password")

	if !isAdmin {
		restricted := restrictedKeys(patch)
		if len(restricted) > 0 {
			if s.UpdatePolicy == "reject" {
				return &RestrictedFieldsError{Fields: restricted}
			}
			for _, key := range restricted {
				delete(patch, key)
			}
		}
	}

	if err := validatePhones(patchPhone(patch, "phone"), patchPersonalPhone(patch)); err != nil {
		return err
	}

	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		patch["password_hash"] = hash
	}

	return store.Update(s.Store, Collection, func(employees []Employee) ([]Employee, error) {
		for i, emp := range employees {
			if emp.ID != id {
				continue
			}
			merged, err := mergePatch(emp, patch)
			if err != nil {
				return nil, err
			}
			employees[i] = merged
			return employees, nil
		}
		return nil, ErrNotFound
	})
}

// Delete soft-deletes: the record stays in storage with status Inactive.
func (s *Service) Delete(ctx context.Context, id int) error {
	return store.Update(s.Store, Collection, func(employees []Employee) ([]Employee, error) {
		for i, emp := range employees {
			if emp.ID == id {
				employees[i].Status = StatusInactive
				return employees, nil
			}
		}
		return nil, ErrNotFound
	})
}

// NameByID resolves an employee name for read-time joins.
func NameByID(employees []Employee, id int) string {
	for _, emp := range employees {
		if emp.ID == id {
			return emp.Name
		}
	}
	return "Unknown"
}

func restrictedKeys(patch map[string]any) []string {
	var restricted []string
	for key := range patch {
		if _, ok := allowedPatchFields[key]; !ok {
			restricted = append(restricted, key)
		}
	}
	sort.Strings(restricted)
	return restricted
}

// mergePatch overlays patch keys onto the stored record through its JSON
// representation, keeping unknown keys out of storage.
func mergePatch(current Employee, patch map[string]any) (Employee, error) {
	raw, err := json.Marshal(current)
	if err != nil {
		return Employee{}, err
	}
	merged := map[string]any{}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return Employee{}, err
	}
	for key, value := range patch {
		merged[key] = value
	}
	out, err := json.Marshal(merged)
	if err != nil {
		return Employee{}, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	var updated Employee
	if err := json.Unmarshal(out, &updated); err != nil {
		return Employee{}, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	updated.ID = current.ID
	return updated, nil
}

func validatePhones(phone, personal string) error {
	if phone != "" && !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	if personal != "" && !phonePattern.MatchString(personal) {
		return ErrInvalidPersonalPhone
	}
	return nil
}

func personalPhone(contact *PersonalContact) string {
	if contact == nil {
		return ""
	}
	return contact.Phone
}

func patchPhone(patch map[string]any, key string) string {
	value, _ := patch[key].(string)
	return value
}

func patchPersonalPhone(patch map[string]any) string {
	contact, ok := patch["personal_contact"].(map[string]any)
	if !ok {
		return ""
	}
	phone, _ := contact["phone"].(string)
	return phone
}

func clonePatch(patch map[string]any) map[string]any {
	cloned := make(map[string]any, len(patch))
	for key, value := range patch {
		cloned[key] = value
	}
	return cloned
}
