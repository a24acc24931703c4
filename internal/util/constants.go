package util

const (
	// PassingScore is the system-wide pass threshold for graded quizzes.
	PassingScore = 70

	// LeaderboardSize caps the public leaderboard.
	LeaderboardSize = 50

	// RecentActivityLimit is how many recent results show up in progress.
	RecentActivityLimit = 3
)
