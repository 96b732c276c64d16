package repository

import (
	"context"
	"errors"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/util"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) withSkills(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Preload("User").
		Preload("OfferedSkills", func(db *gorm.DB) *gorm.DB { return db.Order("user_skills.id ASC") }).
		Preload("OfferedSkills.Skill").
		Preload("WantedSkills")
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID uint) (*model.Profile, error) {
	var profile model.Profile
	err := r.withSkills(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProfileNotFound
	}
	return &profile, err
}

// GetOrCreate returns the user's profile, creating a public empty one for
// accounts that predate profiles.
func (r *ProfileRepository) GetOrCreate(ctx context.Context, userID uint) (*model.Profile, error) {
	profile, err := r.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, util.ErrProfileNotFound) {
		return nil, err
	}

	created := &model.Profile{UserID: userID, IsPublic: true}
	if err := r.DB.WithContext(ctx).Omit("User").Create(created).Error; err != nil {
		// lost a race with a concurrent create
		if again, findErr := r.FindByUserID(ctx, userID); findErr == nil {
			return again, nil
		}
		return nil, err
	}
	return r.FindByUserID(ctx, userID)
}

// Update writes the editable fields, including zero values, and replaces the
// wanted skill set.
func (r *ProfileRepository) Update(ctx context.Context, profile *model.Profile, wanted []model.Skill) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Profile{}).
			Where("id = ?", profile.ID).
			Select("location", "availability", "is_public", "updated_at").
			Updates(map[string]interface{}{
				"location":     profile.Location,
				"availability": profile.Availability,
				"is_public":    profile.IsPublic,
				"updated_at":   time.Now(),
			}).Error; err != nil {
			return err
		}
		assoc := tx.Model(profile).Association("WantedSkills")
		if len(wanted) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(wanted)
	})
}

func (r *ProfileRepository) UpdatePhoto(ctx context.Context, profileID uint, url string) error {
	return r.DB.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", profileID).
		Update("photo_url", url).Error
}

// AddOfferedSkill links a skill to the profile, keeping an existing link (and
// its verification) untouched.
func (r *ProfileRepository) AddOfferedSkill(ctx context.Context, profileID, skillID uint) (*model.UserSkill, bool, error) {
	db := r.DB.WithContext(ctx)

	var us model.UserSkill
	err := db.Where("profile_id = ? AND skill_id = ?", profileID, skillID).First(&us).Error
	if err == nil {
		return &us, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	us = model.UserSkill{ProfileID: profileID, SkillID: skillID}
	if err := db.Omit("Skill").Create(&us).Error; err != nil {
		var existing model.UserSkill
		if findErr := db.Where("profile_id = ? AND skill_id = ?", profileID, skillID).First(&existing).Error; findErr == nil {
			return &existing, false, nil
		}
		return nil, false, err
	}
	return &us, true, nil
}

func (r *ProfileRepository) RemoveOfferedSkill(ctx context.Context, profileID, skillID uint) error {
	res := r.DB.WithContext(ctx).
		Where("profile_id = ? AND skill_id = ?", profileID, skillID).
		Delete(&model.UserSkill{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrSkillNotOffered
	}
	return nil
}

func (r *ProfileRepository) FindUserSkill(ctx context.Context, profileID, skillID uint) (*model.UserSkill, error) {
	var us model.UserSkill
	err := r.DB.WithContext(ctx).Preload("Skill").
		Where("profile_id = ? AND skill_id = ?", profileID, skillID).
		First(&us).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSkillNotOffered
	}
	return &us, err
}

// MarkSkillVerified sets the verified flag. Verifying an already verified
// skill is a no-op; a missing link is ErrSkillNotOffered.
func (r *ProfileRepository) MarkSkillVerified(ctx context.Context, profileID, skillID uint, at time.Time) error {
	db := r.DB.WithContext(ctx)
	res := db.Model(&model.UserSkill{}).
		Where("profile_id = ? AND skill_id = ? AND verified = ?", profileID, skillID, false).
		Updates(map[string]interface{}{"verified": true, "verified_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var count int64
	if err := db.Model(&model.UserSkill{}).
		Where("profile_id = ? AND skill_id = ?", profileID, skillID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return util.ErrSkillNotOffered
	}
	return nil
}

type BrowseFilter struct {
	ViewerID uint
	Skill    string
	Location string
	Limit    int
	Offset   int
}

// Browse lists public profiles other than the viewer's, optionally filtered
// by an offered skill name and a location substring.
func (r *ProfileRepository) Browse(ctx context.Context, f BrowseFilter) ([]model.Profile, int64, error) {
	base := func() *gorm.DB {
		db := r.DB.WithContext(ctx).Model(&model.Profile{}).
			Where("profiles.is_public = ?", true).
			Where("profiles.user_id <> ?", f.ViewerID)

		if f.Skill != "" {
			offering := r.DB.WithContext(ctx).Model(&model.UserSkill{}).
				Select("user_skills.profile_id").
				Joins("JOIN skills ON skills.id = user_skills.skill_id").
				Where(containsClause("skills.name"), containsPattern(f.Skill))
			db = db.Where("profiles.id IN (?)", offering)
		}
		if f.Location != "" {
			db = db.Where(containsClause("profiles.location"), containsPattern(f.Location))
		}
		return db
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []model.Profile
	q := base().Preload("User").
		Preload("OfferedSkills.Skill").
		Preload("WantedSkills").
		Order("profiles.id ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	err := q.Find(&profiles).Error
	return profiles, total, err
}

// ListCandidates returns up to limit public profiles other than excludeUserID,
// most recently active first.
func (r *ProfileRepository) ListCandidates(ctx context.Context, excludeUserID uint, limit int) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.DB.WithContext(ctx).
		Joins("User").
		Preload("OfferedSkills.Skill").
		Preload("WantedSkills").
		Where("profiles.is_public = ?", true).
		Where("profiles.user_id <> ?", excludeUserID).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "User", Name: "last_seen"}, Desc: true}).
		Limit(limit).
		Find(&profiles).Error
	return profiles, err
}
