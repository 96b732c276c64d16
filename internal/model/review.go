package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// swagger:model Review
type Review struct {
	ID         uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	SwapID     uint         `gorm:"not null;uniqueIndex:idx_review_swap_reviewer" json:"swapId"`
	Swap       *SwapRequest `gorm:"foreignKey:SwapID;constraint:OnDelete:CASCADE" json:"-"`
	ReviewerID uint         `gorm:"not null;uniqueIndex:idx_review_swap_reviewer" json:"reviewerId"`
	Reviewer   User         `gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE" json:"reviewer"`
	RevieweeID uint         `gorm:"not null;index" json:"revieweeId"`
	Reviewee   User         `gorm:"foreignKey:RevieweeID;constraint:OnDelete:CASCADE" json:"reviewee"`
	Rating     int          `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string       `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time    `json:"createdAt"`
}

func (Review) TableName() string {
	return "reviews"
}
