// Package announcement stores company-wide announcements, append-only
// from the application's point of view.
package announcement

import (
	"context"
	"sort"
	"time"

	"hrms/internal/platform/store"
)

const Collection = "announcements"

type Announcement struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content"`
	Color   string `json:"color,omitempty"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

type Service struct {
	Store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{Store: s}
}

// List returns announcements newest first.
func (s *Service) List(ctx context.Context) ([]Announcement, error) {
	announcements, err := store.Load[Announcement](s.Store, Collection)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(announcements, func(i, j int) bool {
		return announcements[i].Date+" "+announcements[i].Time > announcements[j].Date+" "+announcements[j].Time
	})
	return announcements, nil
}

// Create appends an announcement stamped with the current date and time.
func (s *Service) Create(ctx context.Context, input Announcement) (Announcement, error) {
	now := time.Now()
	input.Date = now.Format("2006-01-02")
	input.Time = now.Format("15:04")

	err := store.Update(s.Store, Collection, func(announcements []Announcement) ([]Announcement, error) {
		input.ID = store.NextID(announcements, func(a Announcement) int { return a.ID })
		return append(announcements, input), nil
	})
	if err != nil {
		return Announcement{}, err
	}
	return input, nil
}
