package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Hashtag is appended to every reading reply.
const Hashtag = "#kuritterweight"

// FormatDelta renders the reply for a new reading, e.g.
// "71.25kg(+1.3) #kuritterweight". The difference is rounded half away from
// zero to one decimal place.
func FormatDelta(previous, current float64) string {
	diff := current - previous
	msg := strconv.FormatFloat(current, 'f', -1, 64) + "kg"
	switch {
	case diff > 0:
		msg += fmt.Sprintf("(+%.1f)", roundTenth(diff))
	case diff < 0:
		msg += fmt.Sprintf("(%.1f)", roundTenth(diff))
	default:
		msg += "(±0)"
	}
	return msg + " " + Hashtag
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
