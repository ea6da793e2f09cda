package domain

import "time"

// CurvePoint is one term/value sample of a yield curve.
type CurvePoint struct {
	ID              int64
	CurveID         *int16
	AsOfDate        *time.Time
	Term            *float64
	CurvePointValue *float64
	CreationDate    *time.Time
}
