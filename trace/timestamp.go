package trace

import "strconv"

// parseTimestamp accepts only the fixed-point form ns-3 prints,
// "<digits>.<digits>". Signs, exponents and bare integers are rejected.
func parseTimestamp(s string) (float64, bool) {
	dot := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && dot < 0:
			dot = i
		default:
			return 0, false
		}
	}
	if dot <= 0 || dot == len(s)-1 {
		return 0, false
	}
	t, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return t, true
}
