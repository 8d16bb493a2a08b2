package memory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var units = []struct {
	suffix string
	factor uint64
}{
	{"TB", 1 << 40},
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"T", 1 << 40},
	{"G", 1 << 30},
	{"M", 1 << 20},
	{"K", 1 << 10},
	{"B", 1},
}

// ParseMemoryLimit converts a size such as "64MB", "512k" or "1048576" to
// bytes. Units are binary and case-insensitive. An empty string means no
// limit and yields 0.
func ParseMemoryLimit(input string) (uint64, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	if s == "" {
		return 0, nil
	}
	factor := uint64(1)
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			factor = u.factor
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			break
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, fmt.Errorf("invalid memory limit %q: %w", input, err)
	}
	if n > 0 && factor > ^uint64(0)/n {
		return 0, fmt.Errorf("memory limit %q overflows", input)
	}
	return n * factor, nil
}
