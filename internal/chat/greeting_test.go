package chat

import (
	"testing"
	"time"
)

func TestTimeGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "Good evening! "},
		{4, "Good evening! "},
		{5, "Good morning! "},
		{11, "Good morning! "},
		{12, "Good afternoon! "},
		{16, "Good afternoon! "},
		{17, "Good evening! "},
		{23, "Good evening! "},
	}

	for _, tt := range tests {
		at := time.Date(2025, 6, 1, tt.hour, 30, 0, 0, time.UTC)
		if got := TimeGreeting(at); got != tt.want {
			t.Errorf("TimeGreeting(hour=%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}
