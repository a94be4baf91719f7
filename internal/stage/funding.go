package stage

import (
	"regexp"
	"strconv"
)

// amountPattern matches amounts such as "$15M" or "$2.5K".
var amountPattern = regexp.MustCompile(`\$(\d+\.?\d*)([MK])`)

// ParseFundingAmount extracts the first dollar amount in raw and returns it in
// millions. "K" amounts count as thousandths of a million.
func ParseFundingAmount(raw string) (float64, bool) {
	m := amountPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if m[2] == "K" {
		return value * 0.001, true
	}
	return value, true
}
