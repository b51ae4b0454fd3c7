package service

import (
	"math"
	"strconv"
)

// FormatMoney prints whole amounts without decimals and everything else with
// two.
func FormatMoney(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
