package model

import "time"

// Skill is an entry of the shared catalog. Names are unique and compared case-sensitively.
type Skill struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Skill) TableName() string {
	return "skills"
}

// UserSkill links a profile to a skill it offers. Only offered skills carry a
// verification flag, and it is only ever set by a passed quiz.
type UserSkill struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID  uint       `gorm:"not null;uniqueIndex:idx_profile_skill" json:"profileId"`
	SkillID    uint       `gorm:"not null;uniqueIndex:idx_profile_skill" json:"skillId"`
	Skill      Skill      `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE" json:"skill"`
	Verified   bool       `gorm:"not null" json:"verified"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (UserSkill) TableName() string {
	return "user_skills"
}
