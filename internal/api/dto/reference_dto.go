package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/poseidon-api/internal/domain"
)

// CurvePointDTO is the wire form of a curve point.
type CurvePointDTO struct {
	ID              int64      `json:"id"`
	CurveID         *int16     `json:"curve_id"`
	AsOfDate        *time.Time `json:"as_of_date"`
	Term            *float64   `json:"term"`
	CurvePointValue *float64   `json:"curve_point_value,omitempty"`
	CreationDate    *time.Time `json:"creation_date,omitempty"`
}

func (d CurvePointDTO) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.CurveID, validation.NotNil),
		validation.Field(&d.AsOfDate, validation.NotNil),
		validation.Field(&d.Term, validation.NotNil),
	)
}

func (d CurvePointDTO) Key() int64 { return d.ID }

func (d CurvePointDTO) Apply(c *domain.CurvePoint) {
	c.CurveID = d.CurveID
	c.AsOfDate = d.AsOfDate
	c.Term = d.Term
	c.CurvePointValue = d.CurvePointValue
	c.CreationDate = d.CreationDate
}

func ToCurvePointDTO(c domain.CurvePoint) CurvePointDTO {
	return CurvePointDTO{
		ID:              c.ID,
		CurveID:         c.CurveID,
		AsOfDate:        c.AsOfDate,
		Term:            c.Term,
		CurvePointValue: c.CurvePointValue,
		CreationDate:    c.CreationDate,
	}
}

// RatingDTO is the wire form of a rating.
type RatingDTO struct {
	ID           int64  `json:"id"`
	MoodysRating string `json:"moodys_rating"`
	SandPRating  string `json:"sand_p_rating"`
	FitchRating  string `json:"fitch_rating"`
	OrderNumber  *int16 `json:"order_number,omitempty"`
}

func (d RatingDTO) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.MoodysRating, validation.Required),
		validation.Field(&d.SandPRating, validation.Required),
	)
}

func (d RatingDTO) Key() int64 { return d.ID }

func (d RatingDTO) Apply(r *domain.Rating) {
	r.MoodysRating = d.MoodysRating
	r.SandPRating = d.SandPRating
	r.FitchRating = d.FitchRating
	r.OrderNumber = d.OrderNumber
}

func ToRatingDTO(r domain.Rating) RatingDTO {
	return RatingDTO{
		ID:           r.ID,
		MoodysRating: r.MoodysRating,
		SandPRating:  r.SandPRating,
		FitchRating:  r.FitchRating,
		OrderNumber:  r.OrderNumber,
	}
}

// RuleNameDTO is the wire form of a rule name.
type RuleNameDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	JSON        string `json:"json"`
	Template    string `json:"template"`
	SQLStr      string `json:"sql_str"`
	SQLPart     string `json:"sql_part"`
}

func (d RuleNameDTO) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.Description, validation.Required),
		validation.Field(&d.JSON, validation.Required),
	)
}

func (d RuleNameDTO) Key() int64 { return d.ID }

func (d RuleNameDTO) Apply(r *domain.RuleName) {
	r.Name = d.Name
	r.Description = d.Description
	r.JSON = d.JSON
	r.Template = d.Template
	r.SQLStr = d.SQLStr
	r.SQLPart = d.SQLPart
}

func ToRuleNameDTO(r domain.RuleName) RuleNameDTO {
	return RuleNameDTO{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		JSON:        r.JSON,
		Template:    r.Template,
		SQLStr:      r.SQLStr,
		SQLPart:     r.SQLPart,
	}
}
