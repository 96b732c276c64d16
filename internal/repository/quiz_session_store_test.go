package repository

import (
	"context"
	"skillswap_backend/internal/model"
	"testing"
	"time"
)

func sampleSession(userID uint) *model.QuizSession {
	return &model.QuizSession{
		UserID:  userID,
		SkillID: 7,
		Questions: []model.QuizQuestion{
			{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		},
	}
}

func TestMemoryStoreTakeConsumes(t *testing.T) {
	store := NewMemoryQuizSessionStore()
	ctx := context.Background()

	if err := store.Save(ctx, sampleSession(1), time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, _ := store.Peek(ctx, 1); got == nil || got.SkillID != 7 {
		t.Fatalf("peek = %+v", got)
	}

	got, err := store.Take(ctx, 1)
	if err != nil || got == nil {
		t.Fatalf("take = %v, %v", got, err)
	}
	if again, _ := store.Take(ctx, 1); again != nil {
		t.Fatalf("session taken twice")
	}
	if other, _ := store.Take(ctx, 2); other != nil {
		t.Fatalf("sessions are per user")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryQuizSessionStore()
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })

	store.Save(ctx, sampleSession(1), time.Minute)

	now = now.Add(59 * time.Second)
	if got, _ := store.Peek(ctx, 1); got == nil {
		t.Fatalf("session expired early")
	}

	now = now.Add(time.Second)
	if got, _ := store.Take(ctx, 1); got != nil {
		t.Fatalf("expired session returned")
	}
}

func TestMemoryStoreSaveReplacesAndCopies(t *testing.T) {
	store := NewMemoryQuizSessionStore()
	ctx := context.Background()

	first := sampleSession(1)
	store.Save(ctx, first, 0)
	first.Questions[0].Options[0] = "mutated"

	second := sampleSession(1)
	second.SkillID = 9
	store.Save(ctx, second, 0)

	got, _ := store.Take(ctx, 1)
	if got.SkillID != 9 {
		t.Fatalf("newer session should replace the older one, got skill %d", got.SkillID)
	}
	if got.Questions[0].Options[0] != "a" {
		t.Fatalf("store shares memory with the caller")
	}
}
