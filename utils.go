package morphdict

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseSeconds accepts a plain number of seconds or a time.Duration string.
func parseSeconds(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("invalid timeout %q", s)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q", s)
	}
	return d, nil
}
