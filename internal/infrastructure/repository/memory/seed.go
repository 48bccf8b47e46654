package memory

import (
	"time"

	"github.com/crickhq/fantasy-cricket/internal/domain/contest"
	"github.com/crickhq/fantasy-cricket/internal/domain/player"
)

const (
	ContestIDWeekendBash = "t20-weekend-bash"
	ContestIDMidweekCup  = "t20-midweek-cup"
)

func SeedContests() []contest.Contest {
	return []contest.Contest{
		{
			ID:         ContestIDWeekendBash,
			Name:       "T20 Weekend Bash",
			Status:     contest.StatusLive,
			EntryFee:   0,
			MaxEntries: 10000,
			StartsAt:   time.Date(2026, 9, 5, 14, 0, 0, 0, time.UTC),
		},
		{
			ID:         ContestIDMidweekCup,
			Name:       "T20 Midweek Cup",
			Status:     contest.StatusUpcoming,
			EntryFee:   50,
			MaxEntries: 5000,
			StartsAt:   time.Date(2026, 9, 9, 18, 30, 0, 0, time.UTC),
		},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "bat-01", Name: "Arjun Mehta", Category: player.CategoryBatsman, Credits: 200},
		{ID: "bat-02", Name: "Kabir Shah", Category: player.CategoryBatsman, Credits: 175},
		{ID: "bat-03", Name: "Dev Rathore", Category: player.CategoryBatsman, Credits: 150},
		{ID: "bat-04", Name: "Ishan Verma", Category: player.CategoryBatsman, Credits: 120},
		{ID: "bat-05", Name: "Rohan Pillai", Category: player.CategoryBatsman, Credits: 95},
		{ID: "bwl-01", Name: "Zaid Khan", Category: player.CategoryBowler, Credits: 180},
		{ID: "bwl-02", Name: "Tariq Anwar", Category: player.CategoryBowler, Credits: 160},
		{ID: "bwl-03", Name: "Sameer Joshi", Category: player.CategoryBowler, Credits: 130},
		{ID: "bwl-04", Name: "Lalit Yadav", Category: player.CategoryBowler, Credits: 100},
		{ID: "bwl-05", Name: "Vinay Kulkarni", Category: player.CategoryBowler, Credits: 85},
		{ID: "alr-01", Name: "Nikhil Bose", Category: player.CategoryAllRounder, Credits: 190},
		{ID: "alr-02", Name: "Farhan Ali", Category: player.CategoryAllRounder, Credits: 165},
		{ID: "alr-03", Name: "Pranav Nair", Category: player.CategoryAllRounder, Credits: 140},
		{ID: "alr-04", Name: "Hardik Sen", Category: player.CategoryAllRounder, Credits: 110},
		{ID: "wkt-01", Name: "Manish Iyer", Category: player.CategoryWicketkeeper, Credits: 170},
		{ID: "wkt-02", Name: "Sanjay Das", Category: player.CategoryWicketkeeper, Credits: 135},
		{ID: "wkt-03", Name: "Ritesh Gill", Category: player.CategoryWicketkeeper, Credits: 90},
	}
}
