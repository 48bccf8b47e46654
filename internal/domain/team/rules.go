package team

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyRoster           = errors.New("team roster is empty")
	ErrDuplicatePlayer       = errors.New("duplicate player in roster")
	ErrCaptainNotInTeam      = errors.New("captain is not in the roster")
	ErrViceCaptainNotInTeam  = errors.New("vice-captain is not in the roster")
	ErrCaptainConflict       = errors.New("captain and vice-captain must be different players")
	ErrBudgetExceeded        = errors.New("roster exceeds the credit budget")
	ErrDuplicateTeam         = errors.New("user already has a team for this contest")
	ErrMissingCaptainFlags   = errors.New("roster must flag exactly one captain and one vice-captain")
)

// Rules carries the assembly constraints.
type Rules struct {
	CreditCap int64
}

func DefaultRules() Rules {
	return Rules{CreditCap: 1000}
}

// ValidateSelection checks the raw assembly input before any players are
// resolved: non-empty list, no duplicate ids, captain and vice-captain
// both selected and distinct.
func ValidateSelection(playerIDs []string, captainID, viceCaptainID string) error {
	if len(playerIDs) == 0 {
		return ErrEmptyRoster
	}

	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
		}
		seen[id] = struct{}{}
	}

	if captainID == viceCaptainID {
		return ErrCaptainConflict
	}
	if _, ok := seen[captainID]; !ok {
		return ErrCaptainNotInTeam
	}
	if _, ok := seen[viceCaptainID]; !ok {
		return ErrViceCaptainNotInTeam
	}

	return nil
}

// ValidateMembers checks a resolved roster against the rules. It is the
// single place the captain/vice-captain flag invariant and the budget cap
// are enforced.
func ValidateMembers(members []Member, rules Rules) error {
	if len(members) == 0 {
		return ErrEmptyRoster
	}

	var captains, vices int
	var spent int64
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if _, dup := seen[m.PlayerID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, m.PlayerID)
		}
		seen[m.PlayerID] = struct{}{}

		if m.IsCaptain {
			captains++
		}
		if m.IsViceCaptain {
			vices++
		}
		if m.IsCaptain && m.IsViceCaptain {
			return ErrCaptainConflict
		}
		spent += m.Credits
	}

	if captains != 1 || vices != 1 {
		return ErrMissingCaptainFlags
	}
	if rules.CreditCap > 0 && spent > rules.CreditCap {
		return fmt.Errorf("%w: spent %d of %d", ErrBudgetExceeded, spent, rules.CreditCap)
	}

	return nil
}
