package param

import (
	"fmt"
	"strconv"
	"strings"
)

// FrequencyFormatter formats frequency values with Hz/kHz
func FrequencyFormatter(hz float64) string {
	if hz >= 1000 {
		return fmt.Sprintf("%.2f kHz", hz/1000)
	}
	return fmt.Sprintf("%.1f Hz", hz)
}

// FrequencyParser parses frequency strings
func FrequencyParser(str string) (float64, error) {
	str = strings.TrimSpace(str)
	lower := strings.ToLower(str)

	if strings.HasSuffix(lower, "khz") {
		val, err := strconv.ParseFloat(strings.TrimSpace(str[:len(str)-3]), 64)
		if err != nil {
			return 0, err
		}
		return val * 1000, nil
	}

	if strings.HasSuffix(lower, "hz") {
		str = str[:len(str)-2]
	}
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// DecibelFormatter formats dB values
func DecibelFormatter(db float64) string {
	return fmt.Sprintf("%.1f dB", db)
}

// DecibelParser parses dB strings
func DecibelParser(str string) (float64, error) {
	str = strings.TrimSpace(str)
	if strings.HasSuffix(strings.ToLower(str), "db") {
		str = str[:len(str)-2]
	}
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// MultiplierFormatter formats a frequency ratio as "x2.00"
func MultiplierFormatter(ratio float64) string {
	return fmt.Sprintf("x%.2f", ratio)
}

// MultiplierParser accepts "x2", "2x" or "2"
func MultiplierParser(str string) (float64, error) {
	str = strings.Trim(strings.TrimSpace(strings.ToLower(str)), "x×")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// SignedPercentFormatter formats a fraction as a signed percentage
func SignedPercentFormatter(fraction float64) string {
	return fmt.Sprintf("%+.1f%%", fraction*100)
}

// SignedPercentParser parses "+2.5%" to 0.025; bare numbers are fractions
func SignedPercentParser(str string) (float64, error) {
	str = strings.TrimSpace(str)
	if strings.HasSuffix(str, "%") {
		val, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(str, "%")), 64)
		if err != nil {
			return 0, err
		}
		return val / 100, nil
	}
	return strconv.ParseFloat(str, 64)
}
