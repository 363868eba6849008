package document

import "strconv"

const (
	upperPrefixes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerPrefixes = "abcdefghijklmnopqrstuvwxyz"
)

var bullets = []string{"▪", "•", "◦", "‣", "⁃"}

// ListItemPrefix returns the marker drawn before the ix-th (0-based) item
// of a list nested depth levels deep. Ordered lists number 1., 2., ... at
// the top level, then A., B., ... and a., b., ... below it. Bullets change
// per level and repeat the last one past the fifth.
func ListItemPrefix(ix int, ordered bool, depth int) string {
	if !ordered {
		if depth >= len(bullets) {
			depth = len(bullets) - 1
		}
		return bullets[depth] + " "
	}
	switch depth {
	case 0:
		return strconv.Itoa(ix+1) + ". "
	case 1:
		return string(upperPrefixes[ix%len(upperPrefixes)]) + ". "
	default:
		return string(lowerPrefixes[ix%len(lowerPrefixes)]) + ". "
	}
}
