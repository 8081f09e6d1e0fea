package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"driftly/internal/adapters/observability"
	"driftly/internal/domain"
	"driftly/internal/itinerary"
)

type PlannerService struct {
	llm      domain.ItineraryGenerator
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewPlannerService(g domain.ItineraryGenerator, c domain.Cache, ttl time.Duration) *PlannerService {
	return &PlannerService{llm: g, cache: c, cacheTTL: ttl}
}

// Generate validates the request, asks the model for a markdown itinerary
// (or reuses a cached one for an identical request) and parses it.
func (s *PlannerService) Generate(ctx context.Context, req domain.TripRequest) (domain.Plan, error) {
	req = Normalize(req)
	if err := Validate(req); err != nil {
		return domain.Plan{}, err
	}

	key := cacheKey(req)
	var markdown string
	cached := false
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &markdown); ok && markdown != "" {
			cached = true
		}
	}

	if !cached {
		text, err := s.llm.Complete(ctx, SystemPrompt, BuildPrompt(req))
		if err != nil {
			observability.ObserveItinerary("error")
			return domain.Plan{}, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
		}
		markdown = text
		if s.cache != nil && markdown != "" {
			_ = s.cache.Set(ctx, key, markdown, int(s.cacheTTL.Seconds()))
		}
	}

	plan := s.Parse(markdown)
	plan.Markdown = markdown
	plan.Cached = cached

	outcome := "generated"
	if cached {
		outcome = "cached"
	}
	if plan.Summary.Days == 0 {
		// the model ignored the template; callers still get the raw markdown
		outcome = "unparsed"
	}
	observability.ObserveItinerary(outcome)

	log.Info().
		Str("key", key).
		Bool("cached", cached).
		Int("days", plan.Summary.Days).
		Int("activities", plan.Summary.Activities).
		Int("ignored_lines", plan.Ignored).
		Msg("itinerary ready")
	return plan, nil
}

// Parse runs the itinerary parser only; no I/O.
func (s *PlannerService) Parse(markdown string) domain.Plan {
	r := itinerary.ParseReport(markdown)
	sum := itinerary.Stats(r.Days)
	observability.ObserveParse(sum.Activities)
	return domain.Plan{Days: r.Days, Summary: sum, Ignored: len(r.Ignored)}
}

func cacheKey(req domain.TripRequest) string {
	b, _ := json.Marshal(req)
	sum := sha1.Sum(b)
	return "itinerary:" + hex.EncodeToString(sum[:])
}
