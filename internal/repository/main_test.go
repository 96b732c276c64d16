package repository

import (
	"context"
	"skillswap_backend/internal/model"
	"skillswap_backend/pkg/database"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/goleak"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := &model.User{
		Username: name,
		Email:    name + "@example.com",
		Password: "x",
		Role:     model.Member,
		LastSeen: time.Now(),
	}
	if _, err := NewUserRepository(db).CreateWithProfile(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func createSkill(t *testing.T, db *gorm.DB, name string) *model.Skill {
	t.Helper()
	skill, _, err := NewSkillRepository(db).GetOrCreate(context.Background(), name)
	if err != nil {
		t.Fatalf("create skill %s: %v", name, err)
	}
	return skill
}

func profileOf(t *testing.T, db *gorm.DB, userID uint) *model.Profile {
	t.Helper()
	p, err := NewProfileRepository(db).FindByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("profile of %d: %v", userID, err)
	}
	return p
}

// completedSwap creates a request from requester to responder and walks it to completed.
func completedSwap(t *testing.T, db *gorm.DB, requesterID, responderID uint) *model.SwapRequest {
	t.Helper()
	ctx := context.Background()
	repo := NewSwapRequestRepository(db)
	now := time.Now()

	req, _, err := repo.GetOrCreateOpen(ctx, requesterID, responderID, now)
	if err != nil {
		t.Fatalf("create swap: %v", err)
	}
	for _, step := range [][2]model.SwapStatus{
		{model.SwapPending, model.SwapAccepted},
		{model.SwapAccepted, model.SwapCompleted},
	} {
		ok, err := repo.CompareAndSwapStatus(ctx, req.ID, step[0], step[1], now)
		if err != nil || !ok {
			t.Fatalf("move %s -> %s: ok=%v err=%v", step[0], step[1], ok, err)
		}
	}
	req, err = repo.FindByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("reload swap: %v", err)
	}
	return req
}
