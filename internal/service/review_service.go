package service

import (
	"context"
	"errors"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/repository"
	"skillswap_backend/internal/util"
	"skillswap_backend/pkg/logger"
	"skillswap_backend/pkg/monitoring"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxCommentLength = 2000

type ReviewService struct {
	ReviewRepo *repository.ReviewRepository
	SwapRepo   *repository.SwapRequestRepository

	now func() time.Time
}

func NewReviewService(reviewRepo *repository.ReviewRepository, swapRepo *repository.SwapRequestRepository) *ReviewService {
	return &ReviewService{
		ReviewRepo: reviewRepo,
		SwapRepo:   swapRepo,
		now:        time.Now,
	}
}

// CanReview returns nil if userID may review swap now. Otherwise the error
// wraps util.ErrNotEligible and names the first failing condition.
func CanReview(userID uint, swap *model.SwapRequest) error {
	if swap.Status != model.SwapCompleted {
		return util.ErrSwapNotCompleted
	}
	party := swap.PartyOf(userID)
	if party == model.PartyNone {
		return util.ErrNotParticipant
	}
	if swap.HasReviewed(party) {
		return util.ErrAlreadyReviewed
	}
	return nil
}

// CheckEligibility loads the swap and runs CanReview against it.
func (s *ReviewService) CheckEligibility(ctx context.Context, userID, swapID uint) (*model.SwapRequest, error) {
	swap, err := s.SwapRepo.FindByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	return swap, CanReview(userID, swap)
}

// Submit stores userID's review of the other participant of swapID.
func (s *ReviewService) Submit(ctx context.Context, userID, swapID uint, rating int, comment string) (*model.Review, error) {
	swap, err := s.CheckEligibility(ctx, userID, swapID)
	if err != nil {
		return nil, err
	}
	if rating < model.MinRating || rating > model.MaxRating {
		return nil, util.ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if r := []rune(comment); len(r) > maxCommentLength {
		comment = string(r[:maxCommentLength])
	}

	review := &model.Review{
		SwapID:     swap.ID,
		ReviewerID: userID,
		RevieweeID: swap.Counterpart(userID),
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  s.now(),
	}
	err = s.ReviewRepo.CreateForParty(ctx, review, swap.PartyOf(userID))
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = util.ErrAlreadyReviewed
	}
	if err != nil {
		return nil, err
	}

	monitoring.ReviewsSubmitted.WithLabelValues(strconv.Itoa(rating)).Inc()
	logger.Log.Info("review submitted",
		zap.Uint("swapId", swap.ID),
		zap.Uint("reviewerId", userID),
		zap.Uint("revieweeId", review.RevieweeID),
		zap.Int("rating", rating))
	return review, nil
}

// Received lists reviews userID received, newest first.
func (s *ReviewService) Received(ctx context.Context, userID uint, limit int) ([]model.Review, error) {
	return s.ReviewRepo.ListForReviewee(ctx, userID, limit)
}

func (s *ReviewService) ForSwap(ctx context.Context, userID, swapID uint) ([]model.Review, error) {
	swap, err := s.SwapRepo.FindByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParticipant(userID) {
		return nil, util.ErrPermissionDenied
	}
	return s.ReviewRepo.ListBySwap(ctx, swapID)
}

// ReceivedTopRating reports whether userID has been given the highest rating
// at least once.
func (s *ReviewService) ReceivedTopRating(ctx context.Context, userID uint) (bool, error) {
	return s.ReviewRepo.HasRating(ctx, userID, model.MaxRating)
}

// RatingSummary is the average rating a user received and the review count.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

func (s *ReviewService) Summary(ctx context.Context, userID uint) (RatingSummary, error) {
	avg, count, err := s.ReviewRepo.RatingSummary(ctx, userID)
	return RatingSummary{Average: avg, Count: count}, err
}
