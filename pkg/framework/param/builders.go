package param

import (
	"fmt"
	"strings"
)

// ChoiceOption represents a single choice in a list parameter
type ChoiceOption struct {
	Name    string
	Aliases []string
}

// Choice creates a list parameter whose plain value is the option index
func Choice(id uint32, name string, options []ChoiceOption) *Builder {
	formatter := func(value float64) string {
		index := int(value + 0.5)
		if index >= 0 && index < len(options) {
			return options[index].Name
		}
		return "Unknown"
	}

	parser := func(str string) (float64, error) {
		s := strings.TrimSpace(str)
		for i, opt := range options {
			if strings.EqualFold(s, opt.Name) {
				return float64(i), nil
			}
			for _, alias := range opt.Aliases {
				if strings.EqualFold(s, alias) {
					return float64(i), nil
				}
			}
		}
		return 0, fmt.Errorf("unknown option: %s", str)
	}

	steps := int32(len(options) - 1)
	if steps < 1 {
		steps = 1
	}

	b := New(id, name).
		Range(0, float64(steps)).
		Steps(steps).
		Default(0).
		Formatter(formatter, parser)
	b.param.Flags |= IsList
	return b
}

// GainParameter creates a dB gain parameter whose minimum reads as -∞
func GainParameter(id uint32, name string, minDB, maxDB, defaultDB float64) *Builder {
	return New(id, name).
		Range(minDB, maxDB).
		Default(defaultDB).
		Unit("dB").
		Formatter(func(v float64) string {
			if v <= minDB {
				return "-∞ dB"
			}
			return DecibelFormatter(v)
		}, func(s string) (float64, error) {
			if strings.Contains(strings.ToLower(s), "inf") || strings.Contains(s, "∞") {
				return minDB, nil
			}
			return DecibelParser(s)
		})
}

// FrequencyParameter creates a frequency parameter in Hz
func FrequencyParameter(id uint32, name string, min, max, defaultVal float64) *Builder {
	return New(id, name).
		Range(min, max).
		Default(defaultVal).
		Unit("Hz").
		Formatter(FrequencyFormatter, FrequencyParser)
}

// MultiplierParameter creates a frequency ratio parameter (x0.25 ... x8)
func MultiplierParameter(id uint32, name string, min, max, defaultVal float64) *Builder {
	return New(id, name).
		Range(min, max).
		Default(defaultVal).
		Unit("x").
		Formatter(MultiplierFormatter, MultiplierParser)
}

// OffsetParameter creates a symmetric fractional detune parameter shown in percent
func OffsetParameter(id uint32, name string, maxAbs float64) *Builder {
	return New(id, name).
		Range(-maxAbs, maxAbs).
		Default(0).
		Unit("%").
		Formatter(SignedPercentFormatter, SignedPercentParser)
}
