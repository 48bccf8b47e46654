package player

import "errors"

var (
	ErrInvalidID       = errors.New("player id is required")
	ErrInvalidName     = errors.New("player name is required")
	ErrInvalidCredits  = errors.New("player credit cost must be positive")
	ErrUnknownCategory = errors.New("unknown player category")
)

// Category is the cricket role a player fills in the pool.
type Category string

const (
	CategoryAllRounder   Category = "all-rounder"
	CategoryBatsman      Category = "batsman"
	CategoryBowler       Category = "bowler"
	CategoryWicketkeeper Category = "wicketkeeper"
)

var AllCategories = map[Category]struct{}{
	CategoryAllRounder:   {},
	CategoryBatsman:      {},
	CategoryBowler:       {},
	CategoryWicketkeeper: {},
}

// Player is one entry in the selectable pool. Credits is the cost charged
// against the team budget at selection time; Points is the current global
// performance score and changes only through admin score updates.
type Player struct {
	ID       string
	Name     string
	Category Category
	Credits  int64
	Points   int
	Runs     int
	Wickets  int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return ErrInvalidID
	}
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Credits <= 0 {
		return ErrInvalidCredits
	}
	if _, ok := AllCategories[p.Category]; !ok {
		return ErrUnknownCategory
	}
	return nil
}
