package app_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftly/internal/app"
	"driftly/internal/domain"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *domain.TripRequest)
		detail string
	}{
		{"valid", func(r *domain.TripRequest) {}, ""},
		{"no destinations", func(r *domain.TripRequest) { r.Destinations = nil }, "please select at least one destination"},
		{"blank destination", func(r *domain.TripRequest) { r.Destinations = []string{"  "} }, "please select at least one destination"},
		{"no interests", func(r *domain.TripRequest) { r.Interests = []string{} }, "please select at least one interest"},
		{"zero budget", func(r *domain.TripRequest) { r.Budget = 0 }, "budget must be greater than zero"},
		{"bad pace", func(r *domain.TripRequest) { r.Pace = "sprint" }, "pace must be relaxed, balanced or fast"},
		{"bad date type", func(r *domain.TripRequest) { r.DateType = "someday" }, "date_type must be flexible or fixed"},
		{"fixed without end", func(r *domain.TripRequest) {
			r.DateType, r.StartDate = "fixed", "2026-05-01"
		}, "please select both start and end dates"},
		{"fixed bad format", func(r *domain.TripRequest) {
			r.DateType, r.StartDate, r.EndDate = "fixed", "05/01/2026", "2026-05-03"
		}, "start_date must be YYYY-MM-DD"},
		{"fixed reversed", func(r *domain.TripRequest) {
			r.DateType, r.StartDate, r.EndDate = "fixed", "2026-05-03", "2026-05-01"
		}, "end_date is before start_date"},
		{"fixed ok", func(r *domain.TripRequest) {
			r.DateType, r.StartDate, r.EndDate = "Fixed", "2026-05-01", "2026-05-01"
		}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validRequest()
			tc.mutate(&r)
			err := app.Validate(app.Normalize(r))
			if tc.detail == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidRequest))
			assert.Contains(t, err.Error(), tc.detail)
		})
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	r := validRequest()
	r.Destinations = []string{" Paris "}
	n := app.Normalize(r)
	assert.Equal(t, "Paris", n.Destinations[0])
	assert.Equal(t, " Paris ", r.Destinations[0])
	assert.Equal(t, "balanced", n.Pace)
	assert.Equal(t, "flexible", n.DateType)
}
