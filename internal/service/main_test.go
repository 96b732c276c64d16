package service

import (
	"context"
	"skillswap_backend/internal/config"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/repository"
	"skillswap_backend/internal/util"
	"skillswap_backend/pkg/database"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/goleak"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubGenerator answers every prompt with reply, or fails with err.
type stubGenerator struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func (g *stubGenerator) set(reply string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reply, g.err = reply, err
}

func (g *stubGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

func (g *stubGenerator) lastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.prompts) == 0 {
		return ""
	}
	return g.prompts[len(g.prompts)-1]
}

type fixture struct {
	db       *gorm.DB
	cfg      *config.Config
	gen      *stubGenerator
	sessions *repository.MemoryQuizSessionStore

	users    *repository.UserRepository
	skills   *repository.SkillRepository
	profiles *repository.ProfileRepository
	swaps    *repository.SwapRequestRepository
	reviews  *repository.ReviewRepository

	auth      *AuthService
	skill     *SkillService
	profile   *ProfileService
	swap      *SwapService
	review    *ReviewService
	quiz      *QuizService
	match     *MatchmakingService
	assistant *AssistantService
	dashboard *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenMemory(uuid.NewString())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: "test-secret-test-secret-test-secret", ExpireTime: time.Hour},
		Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()},
		Quiz:    config.QuizConfig{QuestionCount: 3, SessionTTL: time.Hour},
		Swap:    config.SwapConfig{CompletionMode: config.CompletionMutual},
	}

	f := &fixture{
		db:       db,
		cfg:      cfg,
		gen:      &stubGenerator{},
		sessions: repository.NewMemoryQuizSessionStore(),
		users:    repository.NewUserRepository(db),
		skills:   repository.NewSkillRepository(db),
		profiles: repository.NewProfileRepository(db),
		swaps:    repository.NewSwapRequestRepository(db),
		reviews:  repository.NewReviewRepository(db),
	}
	ai := NewAIServiceWithGenerator(f.gen, time.Second)

	f.auth = NewAuthService(f.users, cfg)
	f.skill = NewSkillService(f.skills, ai)
	f.review = NewReviewService(f.reviews, f.swaps)
	f.profile = NewProfileService(f.profiles, f.skills, f.review, f.swaps, NewStorageService(cfg))
	f.swap = NewSwapService(f.swaps, f.users, cfg)
	f.quiz = NewQuizService(f.profiles, f.skills, f.sessions, ai, cfg.Quiz)
	f.match = NewMatchmakingService(f.profiles, ai)
	f.assistant = NewAssistantService(ai)
	f.dashboard = NewDashboardService(f.swap, f.match)
	return f
}

func (f *fixture) user(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{
		Username: name,
		Email:    name + "@example.com",
		Password: "x",
		Role:     model.Member,
		LastSeen: time.Now(),
	}
	if _, err := f.users.CreateWithProfile(context.Background(), u); err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return u
}

func (f *fixture) offer(t *testing.T, userID uint, skillName string) *model.Skill {
	t.Helper()
	us, err := f.profile.AddOfferedSkill(context.Background(), userID, 0, skillName)
	if err != nil {
		t.Fatalf("offer %s: %v", skillName, err)
	}
	return &us.Skill
}

func member(id uint) *util.Claims {
	return &util.Claims{UserID: id, Role: model.Member}
}

func (f *fixture) acceptedSwap(t *testing.T, requesterID, responderID uint) *model.SwapRequest {
	t.Helper()
	ctx := context.Background()
	req, _, err := f.swap.Create(ctx, requesterID, responderID)
	if err != nil {
		t.Fatalf("create swap: %v", err)
	}
	req, err = f.swap.Transition(ctx, responderID, req.ID, model.SwapAccepted)
	if err != nil {
		t.Fatalf("accept swap: %v", err)
	}
	return req
}

func (f *fixture) completedSwap(t *testing.T, requesterID, responderID uint) *model.SwapRequest {
	t.Helper()
	ctx := context.Background()
	req := f.acceptedSwap(t, requesterID, responderID)
	if _, err := f.swap.Complete(ctx, member(requesterID), req.ID); err != nil {
		t.Fatalf("requester confirm: %v", err)
	}
	req, err := f.swap.Complete(ctx, member(responderID), req.ID)
	if err != nil {
		t.Fatalf("responder confirm: %v", err)
	}
	if req.Status != model.SwapCompleted {
		t.Fatalf("swap not completed: %s", req.Status)
	}
	return req
}
