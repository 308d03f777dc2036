package bracket

import "fmt"

// RoundLabel renders the round banner shown above a pair.
func RoundLabel(roundSize, match int) string {
	switch roundSize {
	case 1:
		return "champion"
	case 2:
		return "final"
	default:
		return fmt.Sprintf("%d-way (%d/%d)", roundSize, match, roundSize/2)
	}
}
