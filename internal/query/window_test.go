package query

import "testing"

func TestWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		days    int
		minutes int
		want    string
	}{
		{"one day", 1, 0, " start:-1440m"},
		{"ninety minutes", 0, 90, " start:-90m"},
		{"days take precedence", 2, 90, " start:-2880m"},
		{"neither", 0, 0, ""},
		{"seven days", 7, 0, " start:-10080m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Window(tt.days, tt.minutes); got != tt.want {
				t.Errorf("Window(%d, %d) = %q, want %q", tt.days, tt.minutes, got, tt.want)
			}
		})
	}
}
