package recommendation

import (
	"context"

	"github.com/screentime/screentime-api/internal/domain/booking"
	"github.com/screentime/screentime-api/internal/pkg/suggestion"
)

// Suggester is the LLM client used by LLMGenerator
type Suggester interface {
	Suggest(ctx context.Context, in suggestion.Input) (*suggestion.Output, error)
}

// LLMGenerator delegates to a chat-completions model
type LLMGenerator struct {
	client Suggester
}

// NewLLMGenerator creates an LLM-backed generator
func NewLLMGenerator(client Suggester) *LLMGenerator {
	return &LLMGenerator{client: client}
}

// Name identifies the generator in metrics and cache keys
func (g *LLMGenerator) Name() string { return "llm" }

// Generate implements Generator
func (g *LLMGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	nearby := make([]string, len(req.CandidateScreenIDs))
	for i, id := range req.CandidateScreenIDs {
		nearby[i] = id.String()
	}

	out, err := g.client.Suggest(ctx, suggestion.Input{
		SelectedScreen:     req.SelectedScreenID.String(),
		SelectedDate:       booking.FormatDate(req.SelectedDate),
		SelectedTimePeriod: string(req.SelectedTimeSlot),
		NearbyScreens:      nearby,
		DemandLevel:        string(req.DemandLevel),
		AllowedTimePeriods: booking.TimeSlotStrings(),
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrEmptyResult
	}

	return &Result{
		AlternativeTimeSlots:        nonNil(out.AlternativeTimeSlots),
		NearbyScreenRecommendations: nonNil(out.NearbyScreenRecommendations),
		Reasoning:                   out.Reasoning,
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
