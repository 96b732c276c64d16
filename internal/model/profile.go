package model

import (
	"gorm.io/datatypes"
)

// Availability tags a profile may list.
const (
	AvailabilityMornings   = "mornings"
	AvailabilityAfternoons = "afternoons"
	AvailabilityEvenings   = "evenings"
	AvailabilityWeekdays   = "weekdays"
	AvailabilityWeekends   = "weekends"
)

var AvailabilityChoices = []string{
	AvailabilityMornings,
	AvailabilityAfternoons,
	AvailabilityEvenings,
	AvailabilityWeekdays,
	AvailabilityWeekends,
}

func IsValidAvailability(tag string) bool {
	for _, c := range AvailabilityChoices {
		if c == tag {
			return true
		}
	}
	return false
}

// swagger:model Profile
type Profile struct {
	BaseModel
	UserID        uint                        `gorm:"uniqueIndex;not null" json:"userId"`
	User          User                        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	Location      string                      `gorm:"size:255" json:"location"`
	PhotoURL      string                      `gorm:"size:255" json:"photoUrl"`
	Availability  datatypes.JSONSlice[string] `json:"availability"`
	IsPublic      bool                        `gorm:"not null" json:"isPublic"`
	OfferedSkills []UserSkill                 `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"skillsOffered"`
	WantedSkills  []Skill                     `gorm:"many2many:profile_skills_wanted;constraint:OnDelete:CASCADE" json:"skillsWanted"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) OfferedSkillNames() []string {
	names := make([]string, 0, len(p.OfferedSkills))
	for _, us := range p.OfferedSkills {
		names = append(names, us.Skill.Name)
	}
	return names
}

func (p *Profile) WantedSkillNames() []string {
	names := make([]string, 0, len(p.WantedSkills))
	for _, s := range p.WantedSkills {
		names = append(names, s.Name)
	}
	return names
}
