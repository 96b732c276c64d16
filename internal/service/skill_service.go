package service

import (
	"context"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/repository"
	"skillswap_backend/internal/util"
	"strings"
	"unicode/utf8"
)

const (
	maxSkillNameLength = 100
	maxSuggestions     = 5
	defaultSkillLimit  = 50
)

type SkillService struct {
	SkillRepo *repository.SkillRepository
	AI        *AIService
}

func NewSkillService(skillRepo *repository.SkillRepository, ai *AIService) *SkillService {
	return &SkillService{
		SkillRepo: skillRepo,
		AI:        ai,
	}
}

// NormalizeSkillName trims name and checks it fits the catalog.
func NormalizeSkillName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", util.ErrSkillNameEmpty
	}
	if utf8.RuneCountInString(name) > maxSkillNameLength {
		return "", util.ErrSkillNameLength
	}
	return name, nil
}

// GetOrCreate returns the catalog skill named exactly name after trimming.
func (s *SkillService) GetOrCreate(ctx context.Context, name string) (*model.Skill, bool, error) {
	name, err := NormalizeSkillName(name)
	if err != nil {
		return nil, false, err
	}
	return s.SkillRepo.GetOrCreate(ctx, name)
}

func (s *SkillService) List(ctx context.Context, query string, limit int) ([]model.Skill, error) {
	if limit <= 0 {
		limit = defaultSkillLimit
	}
	return s.SkillRepo.Search(ctx, strings.TrimSpace(query), limit)
}

// SuggestSkills asks the generator for skills related to query. It never
// fails the caller: on any generator error it returns an empty list together
// with the error for display.
func (s *SkillService) SuggestSkills(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}, nil
	}

	prompt, err := renderPrompt(promptSuggestSkills, struct{ Query string }{query})
	if err != nil {
		return []string{}, err
	}

	out, err := s.AI.Complete(ctx, FeatureSuggest, prompt)
	if err != nil {
		return []string{}, err
	}
	return parseSuggestions(out), nil
}

// parseSuggestions splits a comma-separated answer into distinct names.
func parseSuggestions(raw string) []string {
	raw = strings.Trim(strings.TrimSpace(raw), "'\"")
	seen := make(map[string]bool)
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		name := strings.Trim(strings.TrimSpace(part), "'\".")
		if name == "" || utf8.RuneCountInString(name) > maxSkillNameLength {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
