package chat

import "time"

// TimeGreeting returns the time-of-day greeting prefix for a response.
// Morning runs 05:00-11:59, afternoon 12:00-16:59, evening otherwise.
func TimeGreeting(t time.Time) string {
	switch hour := t.Hour(); {
	case hour >= 5 && hour < 12:
		return "Good morning! "
	case hour >= 12 && hour < 17:
		return "Good afternoon! "
	default:
		return "Good evening! "
	}
}
