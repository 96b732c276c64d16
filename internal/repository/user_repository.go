package repository

import (
	"context"
	"errors"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateWithProfile stores a new user together with its empty profile.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *model.User) (*model.Profile, error) {
	profile := &model.Profile{IsPublic: true}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Omit("User").Create(profile).Error
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return &user, err
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]model.User, error) {
	out := make(map[uint]model.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []model.User
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// FindByLogin matches either the email or the username.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ? OR username = ?", login, login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return &user, err
}

func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{"last_login": at, "last_seen": at}).Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("last_seen", time.Now()).Error
}

// DeleteCascade hard-deletes a user and everything owned by or attached to
// them: reviews on their swaps, the swaps, their profile and its skill links.
func (r *UserRepository) DeleteCascade(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		swapIDs := tx.Model(&model.SwapRequest{}).
			Select("id").
			Where("requester_id = ? OR responder_id = ?", userID, userID)

		if err := tx.Where("swap_id IN (?) OR reviewer_id = ? OR reviewee_id = ?", swapIDs, userID, userID).
			Delete(&model.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("requester_id = ? OR responder_id = ?", userID, userID).
			Delete(&model.SwapRequest{}).Error; err != nil {
			return err
		}

		var profile model.Profile
		err := tx.Unscoped().Where("user_id = ?", userID).First(&profile).Error
		switch {
		case err == nil:
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&model.UserSkill{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&profile).Association("WantedSkills").Clear(); err != nil {
				return err
			}
			if err := tx.Unscoped().Delete(&profile).Error; err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		res := tx.Delete(&model.User{}, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrUserNotFound
		}
		return nil
	})
}
