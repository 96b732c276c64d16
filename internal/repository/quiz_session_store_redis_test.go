package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

func TestQuizSessionKey(t *testing.T) {
	if got := quizSessionKey(42); got != "skillswap:quiz:42" {
		t.Fatalf("key = %q", got)
	}
}

func TestDecodeQuizSession(t *testing.T) {
	session, err := decodeQuizSession("", redis.Nil)
	if session != nil || err != nil {
		t.Fatalf("missing key: %v %v", session, err)
	}

	boom := errors.New("connection reset")
	if _, err := decodeQuizSession("", boom); !errors.Is(err, boom) {
		t.Fatalf("redis error not returned: %v", err)
	}

	if _, err := decodeQuizSession("{not json", nil); err == nil {
		t.Fatalf("corrupt value accepted")
	}

	session, err = decodeQuizSession(`{"userId":3,"skillId":9,"questions":[{"question":"q","options":["a","b"],"correct_answer":"b"}]}`, nil)
	if err != nil || session.UserID != 3 || session.SkillID != 9 || session.Questions[0].CorrectAnswer != "b" {
		t.Fatalf("decoded = %+v, %v", session, err)
	}
}

// Runs against a real server when SKILLSWAP_TEST_REDIS_ADDR is set.
func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("SKILLSWAP_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SKILLSWAP_TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { rdb.Close() })

	ctx := context.Background()
	store := NewRedisQuizSessionStore(rdb)
	userID := uint(time.Now().UnixNano() % 1_000_000_000)
	t.Cleanup(func() { rdb.Del(ctx, quizSessionKey(userID)) })

	if err := store.Save(ctx, sampleSession(userID), time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := rdb.TTL(ctx, quizSessionKey(userID)).Val(); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}
	if got, err := store.Peek(ctx, userID); err != nil || got == nil || got.SkillID != 7 {
		t.Fatalf("peek = %+v, %v", got, err)
	}

	got, err := store.Take(ctx, userID)
	if err != nil || got == nil || len(got.Questions) != 1 {
		t.Fatalf("take = %+v, %v", got, err)
	}
	if again, err := store.Take(ctx, userID); again != nil || err != nil {
		t.Fatalf("second take = %+v, %v", again, err)
	}
}
