package query

import "fmt"

const minutesPerDay = 1440

// Window returns the filter fragment restricting matches to processes
// started within the last N minutes, with a leading space so it can be
// appended to any criteria clause. Days take precedence over minutes;
// with neither set the fragment is empty.
func Window(days, minutes int) string {
	switch {
	case days > 0:
		return fmt.Sprintf(" start:-%dm", days*minutesPerDay)
	case minutes > 0:
		return fmt.Sprintf(" start:-%dm", minutes)
	}
	return ""
}
