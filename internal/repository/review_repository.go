package repository

import (
	"context"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

// CreateForParty flips the reviewer's flag on a completed swap and inserts
// the review in one transaction. If the flag is already set, or the swap is no
// longer completed, nothing is written and ErrAlreadyReviewed is returned.
func (r *ReviewRepository) CreateForParty(ctx context.Context, review *model.Review, party model.SwapParty) error {
	column := reviewedColumn(party)
	if column == "" {
		return util.ErrNotParticipant
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.SwapRequest{}).
			Where("id = ? AND status = ?", review.SwapID, model.SwapCompleted).
			Where(column+" = ?", false).
			UpdateColumn(column, true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrAlreadyReviewed
		}
		return tx.Omit(clause.Associations).Create(review).Error
	})
}

// ListForReviewee returns reviews userID received, newest first. A limit of
// zero or less returns all of them.
func (r *ReviewRepository) ListForReviewee(ctx context.Context, userID uint, limit int) ([]model.Review, error) {
	var reviews []model.Review
	q := r.DB.WithContext(ctx).
		Preload("Reviewer").
		Where("reviewee_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) ListBySwap(ctx context.Context, swapID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.DB.WithContext(ctx).
		Preload("Reviewer").
		Preload("Reviewee").
		Where("swap_id = ?", swapID).
		Order("id").
		Find(&reviews).Error
	return reviews, err
}

// HasRating reports whether userID received at least one review with rating.
func (r *ReviewRepository) HasRating(ctx context.Context, userID uint, rating int) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Review{}).
		Where("reviewee_id = ? AND rating = ?", userID, rating).
		Count(&count).Error
	return count > 0, err
}

// RatingSummary returns the average rating userID received and how many
// reviews it is based on.
func (r *ReviewRepository) RatingSummary(ctx context.Context, userID uint) (float64, int64, error) {
	var row struct {
		Average float64
		Total   int64
	}
	err := r.DB.WithContext(ctx).Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("reviewee_id = ?", userID).
		Scan(&row).Error
	return row.Average, row.Total, err
}
