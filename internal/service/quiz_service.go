package service

import (
	"context"
	"errors"
	"fmt"
	"skillswap_backend/internal/config"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/repository"
	"skillswap_backend/internal/util"
	"skillswap_backend/pkg/logger"
	"skillswap_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

type QuizService struct {
	ProfileRepo *repository.ProfileRepository
	SkillRepo   *repository.SkillRepository
	Sessions    repository.QuizSessionStore
	AI          *AIService
	Cfg         config.QuizConfig

	now func() time.Time
}

func NewQuizService(profileRepo *repository.ProfileRepository, skillRepo *repository.SkillRepository, sessions repository.QuizSessionStore, ai *AIService, cfg config.QuizConfig) *QuizService {
	return &QuizService{
		ProfileRepo: profileRepo,
		SkillRepo:   skillRepo,
		Sessions:    sessions,
		AI:          ai,
		Cfg:         cfg,
		now:         time.Now,
	}
}

// PassThreshold is the number of correct answers needed out of total: two
// thirds, rounded up.
func PassThreshold(total int) int {
	return (2*total + 2) / 3
}

// QuizView is a generated quiz as shown to the taker.
type QuizView struct {
	Skill     model.Skill            `json:"skill"`
	Questions []model.PublicQuestion `json:"questions"`
	ExpiresAt time.Time              `json:"expiresAt"`
}

// Generate builds a quiz for a skill the user offers and stores it as the
// user's pending quiz, replacing any earlier one.
func (s *QuizService) Generate(ctx context.Context, userID, skillID uint) (*QuizView, error) {
	skill, err := s.SkillRepo.FindByID(ctx, skillID)
	if err != nil {
		return nil, err
	}
	profile, err := s.ProfileRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ProfileRepo.FindUserSkill(ctx, profile.ID, skillID); err != nil {
		return nil, err
	}

	prompt, err := renderPrompt(promptQuiz, struct {
		Skill string
		Count int
	}{skill.Name, s.Cfg.QuestionCount})
	if err != nil {
		return nil, err
	}

	raw, err := s.AI.Complete(ctx, FeatureQuiz, prompt)
	if err != nil {
		return nil, err
	}

	questions, err := parseQuiz(ctx, raw, s.Cfg.QuestionCount)
	if err != nil {
		logger.Log.Warn("discarding malformed quiz", zap.Uint("skillId", skillID), zap.Error(err))
		return nil, err
	}

	now := s.now()
	session := &model.QuizSession{
		UserID:    userID,
		SkillID:   skill.ID,
		Questions: questions,
		CreatedAt: now,
	}
	if err := s.Sessions.Save(ctx, session, s.Cfg.SessionTTL); err != nil {
		return nil, err
	}

	return &QuizView{
		Skill:     *skill,
		Questions: session.PublicQuestions(),
		ExpiresAt: now.Add(s.Cfg.SessionTTL),
	}, nil
}

// parseQuiz decodes and checks generator output. The model may return more
// questions than asked; extras are dropped. Fewer is an error.
func parseQuiz(ctx context.Context, raw string, want int) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	if err := decodeAIJSON(ctx, quizSchema, raw, &questions); err != nil {
		return nil, err
	}
	if len(questions) < want {
		return nil, fmt.Errorf("%w: got %d questions, want %d", util.ErrMalformedAIResponse, len(questions), want)
	}
	questions = questions[:want]

	for i, q := range questions {
		if !containsString(q.Options, q.CorrectAnswer) {
			return nil, fmt.Errorf("%w: question %d answer is not among its options", util.ErrMalformedAIResponse, i+1)
		}
	}
	return questions, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Submit scores answers against the user's pending quiz. The quiz is consumed
// whatever the outcome, so each generated quiz can be answered once.
func (s *QuizService) Submit(ctx context.Context, userID uint, answers []string) (*model.QuizResult, error) {
	session, err := s.Sessions.Take(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		monitoring.QuizAttempts.WithLabelValues("expired").Inc()
		return nil, util.ErrSessionExpired
	}

	total := len(session.Questions)
	correct := 0
	for i, q := range session.Questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}

	result := &model.QuizResult{
		SkillID:  session.SkillID,
		Correct:  correct,
		Total:    total,
		Required: PassThreshold(total),
	}
	result.Passed = total > 0 && correct >= result.Required

	if skill, err := s.SkillRepo.FindByID(ctx, session.SkillID); err == nil {
		result.SkillName = skill.Name
	} else if !errors.Is(err, util.ErrSkillNotFound) {
		return nil, err
	}

	if result.Passed {
		profile, err := s.ProfileRepo.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := s.ProfileRepo.MarkSkillVerified(ctx, profile.ID, session.SkillID, s.now()); err != nil {
			return nil, err
		}
		monitoring.QuizAttempts.WithLabelValues("passed").Inc()
	} else {
		monitoring.QuizAttempts.WithLabelValues("failed").Inc()
	}

	logger.Log.Info("quiz submitted",
		zap.Uint("userId", userID),
		zap.Uint("skillId", session.SkillID),
		zap.Int("correct", correct),
		zap.Int("total", total),
		zap.Bool("passed", result.Passed))
	return result, nil
}
