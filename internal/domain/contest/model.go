package contest

import (
	"errors"
	"time"
)

var (
	ErrInvalidID     = errors.New("contest id is required")
	ErrInvalidName   = errors.New("contest name is required")
	ErrUnknownStatus = errors.New("unknown contest status")
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

var AllStatuses = map[Status]struct{}{
	StatusUpcoming:  {},
	StatusLive:      {},
	StatusCompleted: {},
}

// Contest is a scoring window teams can enter. Entry closes once the
// contest is completed.
type Contest struct {
	ID         string
	Name       string
	Status     Status
	EntryFee   int64
	MaxEntries int
	StartsAt   time.Time
}

func (c Contest) Validate() error {
	if c.ID == "" {
		return ErrInvalidID
	}
	if c.Name == "" {
		return ErrInvalidName
	}
	if _, ok := AllStatuses[c.Status]; !ok {
		return ErrUnknownStatus
	}
	return nil
}

// AcceptsEntries reports whether new teams may still join the contest.
func (c Contest) AcceptsEntries() bool {
	return c.Status != StatusCompleted
}
