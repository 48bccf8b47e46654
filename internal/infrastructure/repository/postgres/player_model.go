package postgres

import "time"

type playerTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	Category  string     `db:"category"`
	Credits   int64      `db:"credits"`
	Points    int        `db:"points"`
	Runs      int        `db:"runs"`
	Wickets   int        `db:"wickets"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}
