package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"skillswap_backend/internal/model"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// QuizSessionStore keeps at most one pending quiz per user.
type QuizSessionStore interface {
	// Save stores session for its user, replacing any previous one.
	Save(ctx context.Context, session *model.QuizSession, ttl time.Duration) error
	// Take returns and removes the user's session in one step. It returns
	// (nil, nil) when there is none.
	Take(ctx context.Context, userID uint) (*model.QuizSession, error)
	// Peek returns the user's session without consuming it.
	Peek(ctx context.Context, userID uint) (*model.QuizSession, error)
}

const quizSessionKeyPrefix = "skillswap:quiz:"

func quizSessionKey(userID uint) string {
	return fmt.Sprintf("%s%d", quizSessionKeyPrefix, userID)
}

type RedisQuizSessionStore struct {
	Redis *redis.Client
}

func NewRedisQuizSessionStore(rdb *redis.Client) *RedisQuizSessionStore {
	return &RedisQuizSessionStore{Redis: rdb}
}

func (s *RedisQuizSessionStore) Save(ctx context.Context, session *model.QuizSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.Redis.Set(ctx, quizSessionKey(session.UserID), data, ttl).Err()
}

func (s *RedisQuizSessionStore) Take(ctx context.Context, userID uint) (*model.QuizSession, error) {
	val, err := s.Redis.GetDel(ctx, quizSessionKey(userID)).Result()
	return decodeQuizSession(val, err)
}

func (s *RedisQuizSessionStore) Peek(ctx context.Context, userID uint) (*model.QuizSession, error) {
	val, err := s.Redis.Get(ctx, quizSessionKey(userID)).Result()
	return decodeQuizSession(val, err)
}

func decodeQuizSession(val string, err error) (*model.QuizSession, error) {
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.QuizSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

type memoryQuizEntry struct {
	session   model.QuizSession
	expiresAt time.Time
}

// MemoryQuizSessionStore is used when Redis is disabled and in tests.
// Sessions do not survive a restart and are not shared between instances.
type MemoryQuizSessionStore struct {
	mu      sync.Mutex
	entries map[uint]memoryQuizEntry
	now     func() time.Time
}

func NewMemoryQuizSessionStore() *MemoryQuizSessionStore {
	return &MemoryQuizSessionStore{
		entries: make(map[uint]memoryQuizEntry),
		now:     time.Now,
	}
}

// SetClock replaces the clock used for expiry.
func (s *MemoryQuizSessionStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryQuizSessionStore) Save(_ context.Context, session *model.QuizSession, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryQuizEntry{session: copyQuizSession(session)}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.entries[session.UserID] = entry
	return nil
}

func (s *MemoryQuizSessionStore) Take(_ context.Context, userID uint) (*model.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.lookup(userID)
	delete(s.entries, userID)
	return session, nil
}

func (s *MemoryQuizSessionStore) Peek(_ context.Context, userID uint) (*model.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(userID), nil
}

// lookup must be called with mu held. Expired entries are dropped.
func (s *MemoryQuizSessionStore) lookup(userID uint) *model.QuizSession {
	entry, ok := s.entries[userID]
	if !ok {
		return nil
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.entries, userID)
		return nil
	}
	session := copyQuizSession(&entry.session)
	return &session
}

func copyQuizSession(src *model.QuizSession) model.QuizSession {
	dst := *src
	dst.Questions = make([]model.QuizQuestion, len(src.Questions))
	for i, q := range src.Questions {
		q.Options = append([]string(nil), q.Options...)
		dst.Questions[i] = q
	}
	return dst
}
