// Package mockdata generates the demonstration numbers shown by the
// dashboard views. Every generator is a pure function of the selection keys
// (date string, unit, granularity), so a given selection always renders the
// same figures.
package mockdata

import (
	"math"
	"strconv"
)

// CharSum adds up the code points of s.
func CharSum(s string) int {
	sum := 0
	for _, r := range s {
		sum += int(r)
	}
	return sum
}

// StringHash is the classic h*31+c string hash with 32-bit wrap-around,
// returned as a non-negative value.
func StringHash(s string) int64 {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func fixed1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// People used by the person-level rankings.
var rankingNames = []string{"王大明", "李小美", "張建國", "陳志遠", "許志安", "林雅婷", "黃冠宏"}
