package service

import (
	"context"
	"encoding/json"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/repository"
	"strings"
)

const defaultMatchCandidates = 10

type MatchmakingService struct {
	ProfileRepo *repository.ProfileRepository
	AI          *AIService
}

func NewMatchmakingService(profileRepo *repository.ProfileRepository, ai *AIService) *MatchmakingService {
	return &MatchmakingService{
		ProfileRepo: profileRepo,
		AI:          ai,
	}
}

type matchCandidate struct {
	UserID        uint     `json:"user_id"`
	Username      string   `json:"username"`
	SkillsOffered []string `json:"skills_offered"`
	SkillsWanted  []string `json:"skills_wanted"`
}

type rawMatch struct {
	UserID        uint   `json:"user_id"`
	MatchType     string `json:"match_type"`
	Justification string `json:"justification"`
}

// Matchmake asks the generator to rank recently active public profiles as
// swap partners for userID. Suggestions naming anyone outside the candidate
// set are dropped. On failure it returns an empty list and the error.
func (s *MatchmakingService) Matchmake(ctx context.Context, userID uint) ([]model.MatchSuggestion, error) {
	out := []model.MatchSuggestion{}

	me, err := s.ProfileRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return out, err
	}

	limit := s.AI.Config().MatchCandidates
	if limit <= 0 {
		limit = defaultMatchCandidates
	}
	profiles, err := s.ProfileRepo.ListCandidates(ctx, userID, limit)
	if err != nil {
		return out, err
	}
	if len(profiles) == 0 {
		return out, nil
	}

	byID := make(map[uint]model.User, len(profiles))
	candidates := make([]matchCandidate, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		byID[p.UserID] = p.User
		candidates = append(candidates, matchCandidate{
			UserID:        p.UserID,
			Username:      p.User.Username,
			SkillsOffered: p.OfferedSkillNames(),
			SkillsWanted:  p.WantedSkillNames(),
		})
	}
	candidatesJSON, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return out, err
	}

	prompt, err := renderPrompt(promptMatchmaking, struct {
		Username   string
		Offered    string
		Wanted     string
		Candidates string
	}{
		Username:   me.User.Username,
		Offered:    strings.Join(me.OfferedSkillNames(), ", "),
		Wanted:     strings.Join(me.WantedSkillNames(), ", "),
		Candidates: string(candidatesJSON),
	})
	if err != nil {
		return out, err
	}

	raw, err := s.AI.Complete(ctx, FeatureMatch, prompt)
	if err != nil {
		return out, err
	}

	var matches []rawMatch
	if err := decodeAIJSON(ctx, matchSchema, raw, &matches); err != nil {
		return out, err
	}

	seen := make(map[uint]bool)
	for _, m := range matches {
		user, ok := byID[m.UserID]
		if !ok || seen[m.UserID] {
			continue
		}
		seen[m.UserID] = true
		out = append(out, model.MatchSuggestion{
			User:          user.Brief(),
			MatchType:     orDefault(m.MatchType, "N/A"),
			Justification: orDefault(m.Justification, "No justification provided."),
		})
	}
	return out, nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
