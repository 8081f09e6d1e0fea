package domain

// TripRequest holds the preferences collected by the planner wizard.
type TripRequest struct {
	Destinations      []string `json:"destinations" validate:"min=1,dive,required"`
	DateType          string   `json:"date_type" validate:"oneof=flexible fixed"`
	StartDate         string   `json:"start_date,omitempty"`
	EndDate           string   `json:"end_date,omitempty"`
	Interests         []string `json:"interests" validate:"min=1,dive,required"`
	Budget            int      `json:"budget" validate:"gt=0"`
	WeatherPreference string   `json:"weather_preference,omitempty"`
	Pace              string   `json:"pace,omitempty" validate:"omitempty,oneof=relaxed balanced fast"`
	TripType          string   `json:"trip_type,omitempty"`
	Accessibility     bool     `json:"accessibility"`
}
