package domain

// Dashboard is the read model shown on the home screen.
type Dashboard struct {
	Date          string `json:"date"`
	Streak        int    `json:"streak"`
	LongestStreak int    `json:"longest_streak"`
	Water         int    `json:"water"`
	Calories      int    `json:"calories"`
}
