package entity

import "time"

type Subscription struct {
	ID             int64
	UserID         int64
	Name           string
	Provider       Provider
	ExpirationDate time.Time
	Status         Status
}

// Equal reports whether both subscriptions hold the same values. Expiration
// instants are compared with time.Time.Equal so location differences between
// the driver and the caller do not matter.
func (s *Subscription) Equal(other *Subscription) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ID == other.ID &&
		s.UserID == other.UserID &&
		s.Name == other.Name &&
		s.Provider == other.Provider &&
		s.Status == other.Status &&
		s.ExpirationDate.Equal(other.ExpirationDate)
}

func (s *Subscription) IsPersisted() bool {
	return s.ID != 0
}

func (s *Subscription) Clone() *Subscription {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}
