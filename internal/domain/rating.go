package domain

// Rating holds agency ratings for an instrument.
type Rating struct {
	ID           int64
	MoodysRating string
	SandPRating  string
	FitchRating  string
	OrderNumber  *int16
}
