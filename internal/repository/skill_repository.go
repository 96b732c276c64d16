package repository

import (
	"context"
	"errors"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/util"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

func (r *SkillRepository) FindByID(ctx context.Context, id uint) (*model.Skill, error) {
	var skill model.Skill
	err := r.DB.WithContext(ctx).First(&skill, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSkillNotFound
	}
	return &skill, err
}

func (r *SkillRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Skill, error) {
	var skills []model.Skill
	if len(ids) == 0 {
		return skills, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&skills).Error
	return skills, err
}

// GetOrCreate returns the skill with exactly this name, creating it if needed.
// A concurrent insert of the same name is resolved by re-reading.
func (r *SkillRepository) GetOrCreate(ctx context.Context, name string) (*model.Skill, bool, error) {
	db := r.DB.WithContext(ctx)

	var skill model.Skill
	err := db.Where("name = ?", name).First(&skill).Error
	if err == nil {
		return &skill, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	skill = model.Skill{Name: name}
	if err := db.Create(&skill).Error; err != nil {
		var existing model.Skill
		if findErr := db.Where("name = ?", name).First(&existing).Error; findErr == nil {
			return &existing, false, nil
		}
		return nil, false, err
	}
	return &skill, true, nil
}

// Search lists catalog skills whose name contains query, case-insensitively.
func (r *SkillRepository) Search(ctx context.Context, query string, limit int) ([]model.Skill, error) {
	var skills []model.Skill
	db := r.DB.WithContext(ctx).Model(&model.Skill{})
	if query != "" {
		db = db.Where(containsClause("name"), containsPattern(query))
	}
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Order("name ASC").Find(&skills).Error
	return skills, err
}
