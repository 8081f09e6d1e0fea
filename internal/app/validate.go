package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"driftly/internal/domain"
)

const dateLayout = "2006-01-02"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize trims and lower-cases the enum-like fields and defaults DateType.
func Normalize(r domain.TripRequest) domain.TripRequest {
	r.DateType = strings.ToLower(strings.TrimSpace(r.DateType))
	if r.DateType == "" {
		r.DateType = "flexible"
	}
	r.Pace = strings.ToLower(strings.TrimSpace(r.Pace))
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	dests := make([]string, len(r.Destinations))
	for i, d := range r.Destinations {
		dests[i] = strings.TrimSpace(d)
	}
	r.Destinations = dests
	return r
}

// Validate checks a normalized request. Errors wrap domain.ErrInvalidRequest.
func Validate(r domain.TripRequest) error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, describe(verrs[0]))
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	if r.DateType != "fixed" {
		return nil
	}
	if r.StartDate == "" || r.EndDate == "" {
		return fmt.Errorf("%w: please select both start and end dates", domain.ErrInvalidRequest)
	}
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start_date must be YYYY-MM-DD", domain.ErrInvalidRequest)
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return fmt.Errorf("%w: end_date must be YYYY-MM-DD", domain.ErrInvalidRequest)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end_date is before start_date", domain.ErrInvalidRequest)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	name := fe.StructField()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	switch name {
	case "Destinations":
		return "please select at least one destination"
	case "Interests":
		return "please select at least one interest"
	case "Budget":
		return "budget must be greater than zero"
	case "DateType":
		return "date_type must be flexible or fixed"
	case "Pace":
		return "pace must be relaxed, balanced or fast"
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}
