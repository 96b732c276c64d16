package service

import (
	"context"
	"skillswap_backend/internal/model"
)

const dashboardSuggestions = 3

type DashboardService struct {
	Swaps   *SwapService
	Matches *MatchmakingService
}

func NewDashboardService(swaps *SwapService, matches *MatchmakingService) *DashboardService {
	return &DashboardService{
		Swaps:   swaps,
		Matches: matches,
	}
}

type Dashboard struct {
	Incoming      []model.SwapRequest     `json:"incoming"`
	Sent          []model.SwapRequest     `json:"sent"`
	Active        []model.SwapRequest     `json:"active"`
	Completed     []model.SwapRequest     `json:"completed"`
	AISuggestions []model.MatchSuggestion `json:"aiSuggestions"`
	APIError      string                  `json:"apiError,omitempty"`
}

// Get assembles userID's dashboard. A failing matchmaker only empties the
// suggestions; the swap lists are always returned.
func (s *DashboardService) Get(ctx context.Context, userID uint) (*Dashboard, error) {
	d := &Dashboard{}
	var err error

	if d.Incoming, err = s.Swaps.ListIncoming(ctx, userID); err != nil {
		return nil, err
	}
	if d.Sent, err = s.Swaps.ListSent(ctx, userID); err != nil {
		return nil, err
	}
	if d.Active, err = s.Swaps.ListActive(ctx, userID); err != nil {
		return nil, err
	}
	if d.Completed, err = s.Swaps.ListCompleted(ctx, userID); err != nil {
		return nil, err
	}

	suggestions, err := s.Matches.Matchmake(ctx, userID)
	if err != nil {
		d.APIError = err.Error()
	}
	if len(suggestions) > dashboardSuggestions {
		suggestions = suggestions[:dashboardSuggestions]
	}
	d.AISuggestions = suggestions
	return d, nil
}
