package engine

// Points maps elapsed seconds and the attempt number for the current
// level to a point value. Only the first attempt can earn points; every
// retry (after a timeout or a wrong answer) scores zero regardless of
// time. First attempts are bucketed into 5-second windows.
func Points(elapsedSeconds, attempt int) int {
	if attempt > 1 {
		return 0
	}
	switch {
	case elapsedSeconds <= 10:
		return 10
	case elapsedSeconds <= 15:
		return 9
	case elapsedSeconds <= 20:
		return 8
	case elapsedSeconds <= 25:
		return 7
	case elapsedSeconds <= 30:
		return 6
	case elapsedSeconds <= 35:
		return 5
	case elapsedSeconds <= 40:
		return 4
	case elapsedSeconds <= 45:
		return 3
	case elapsedSeconds <= 50:
		return 2
	case elapsedSeconds <= 55:
		return 1
	default:
		return 0
	}
}

// Banding maps a cumulative session score to the qualitative band shown
// on the game-complete screen. Purely presentational; never persisted.
func Banding(totalPoints int) string {
	switch {
	case totalPoints >= 90:
		return "master"
	case totalPoints >= 70:
		return "great"
	case totalPoints >= 50:
		return "good"
	default:
		return "keep practicing"
	}
}
