package locate

import (
	"regexp"
	"strconv"
	"strings"
)

var firstNumber = regexp.MustCompile(`\d+(\.\d+)?`)

// ParseKilometers extracts a distance from a free-text answer such as
// "a distância é de 12,5 km". The first comma becomes a decimal point and the
// first number in the text is the answer. Text without a number yields 0,
// which callers treat as "no route".
func ParseKilometers(text string) float64 {
	normalized := strings.Replace(text, ",", ".", 1)
	match := firstNumber.FindString(normalized)
	if match == "" {
		return 0
	}
	km, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return km
}
