package postgres

import "time"

type teamTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	UserID      string     `db:"user_id"`
	ContestID   string     `db:"contest_public_id"`
	Name        string     `db:"name"`
	TotalPoints int        `db:"total_points"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type teamMemberTableModel struct {
	ID            int64      `db:"id"`
	TeamID        string     `db:"team_public_id"`
	PlayerID      string     `db:"player_public_id"`
	Credits       int64      `db:"credits"`
	IsCaptain     bool       `db:"is_captain"`
	IsViceCaptain bool       `db:"is_vice_captain"`
	CreatedAt     time.Time  `db:"created_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}
