package browse

import (
	"math"
	"strconv"
)

// FormatPrice renders an amount in Chilean peso style: no decimals and "." as
// the thousands separator, e.g. 850000 -> "$850.000".
func FormatPrice(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	rounded := math.Round(amount)
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}

	digits := strconv.FormatFloat(rounded, 'f', 0, 64)
	grouped := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, digits[i])
	}
	return sign + "$" + string(grouped)
}
