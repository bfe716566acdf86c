// Package gain provides decibel/linear amplitude conversions.
package gain

import (
	"math"
)

// MinDB is the minimum dB value (effectively -infinity)
const MinDB = -200.0

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// DbToLinearFloor converts dB to linear, treating anything at or below
// floorDB as silence. Used by gain controls whose lowest position reads -∞.
func DbToLinearFloor(db, floorDB float64) float64 {
	if db <= floorDB {
		return 0
	}
	return DbToLinear(db)
}
