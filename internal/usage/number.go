package usage

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	errNotFinite = errors.New("not a finite number")
	errNegative  = errors.New("negative quantity")
)

// ParseQuantity converts a GB value as printed on the page into a float.
// German pages use a decimal comma, English pages a decimal point, so every
// comma is read as a decimal separator. A comma used as a thousands separator
// ("1,234") therefore parses as 1.234; the page has not been seen to print
// values that large. The caller trims whitespace.
func ParseQuantity(text string) (float64, error) {
	normalized := strings.ReplaceAll(text, ",", ".")
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		// strconv echoes its input, which is the substituted text.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &NumberError{Text: text, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &NumberError{Text: text, Err: errNotFinite}
	}
	if v < 0 {
		return 0, &NumberError{Text: text, Err: errNegative}
	}
	return v, nil
}
