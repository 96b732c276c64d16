package service

import (
	"context"
	"mime/multipart"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/repository"
	"skillswap_backend/internal/util"
	"strings"
)

const (
	recentReviewsOnProfile = 3
	superSwapperThreshold  = 5
	defaultBrowseLimit     = 20
	maxBrowseLimit         = 100
)

type ProfileService struct {
	ProfileRepo *repository.ProfileRepository
	SkillRepo   *repository.SkillRepository
	Reviews     *ReviewService
	SwapRepo    *repository.SwapRequestRepository
	Storage     *StorageService
}

func NewProfileService(
	profileRepo *repository.ProfileRepository,
	skillRepo *repository.SkillRepository,
	reviews *ReviewService,
	swapRepo *repository.SwapRequestRepository,
	storage *StorageService,
) *ProfileService {
	return &ProfileService{
		ProfileRepo: profileRepo,
		SkillRepo:   skillRepo,
		Reviews:     reviews,
		SwapRepo:    swapRepo,
		Storage:     storage,
	}
}

// OwnProfile is the profile page a user sees for themselves.
type OwnProfile struct {
	Profile      *model.Profile `json:"profile"`
	Completeness int            `json:"completeness"`
	Badges       []model.Badge  `json:"badges"`
	Rating       RatingSummary  `json:"rating"`
}

// Completeness scores a profile out of 100: a quarter each for location,
// availability, offered skills and wanted skills.
func Completeness(p *model.Profile) int {
	score := 0
	if strings.TrimSpace(p.Location) != "" {
		score += 25
	}
	if len(p.Availability) > 0 {
		score += 25
	}
	if len(p.OfferedSkills) > 0 {
		score += 25
	}
	if len(p.WantedSkills) > 0 {
		score += 25
	}
	return score
}

// EarnedBadges lists the badges for the given profile state, in display order.
func EarnedBadges(completeness int, completedSwaps int64, hasFiveStar bool) []model.Badge {
	badges := []model.Badge{}
	if completeness == 100 {
		badges = append(badges, model.Badge{Name: "Profile Pro", Icon: "bi-person-check-fill", Description: "Completed your profile 100%!"})
	}
	if completedSwaps >= 1 {
		badges = append(badges, model.Badge{Name: "First Swap", Icon: "bi-award-fill", Description: "Completed your first skill swap!"})
	}
	if hasFiveStar {
		badges = append(badges, model.Badge{Name: "Top Rated", Icon: "bi-star-fill", Description: "Received a 5-star review!"})
	}
	if completedSwaps >= superSwapperThreshold {
		badges = append(badges, model.Badge{Name: "Super Swapper", Icon: "bi-arrow-repeat", Description: "Completed 5 or more swaps!"})
	}
	return badges
}

func (s *ProfileService) GetOwn(ctx context.Context, userID uint) (*OwnProfile, error) {
	profile, err := s.ProfileRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.SwapRepo.CountByParticipantAndStatus(ctx, userID, model.SwapCompleted)
	if err != nil {
		return nil, err
	}
	fiveStar, err := s.Reviews.ReceivedTopRating(ctx, userID)
	if err != nil {
		return nil, err
	}
	rating, err := s.Reviews.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}

	score := Completeness(profile)
	return &OwnProfile{
		Profile:      profile,
		Completeness: score,
		Badges:       EarnedBadges(score, completed, fiveStar),
		Rating:       rating,
	}, nil
}

// ProfileUpdate carries the editable profile fields. Nil fields are left as
// they are.
type ProfileUpdate struct {
	Location       *string  `json:"location"`
	Availability   []string `json:"availability"`
	IsPublic       *bool    `json:"isPublic"`
	WantedSkillIDs []uint   `json:"wantedSkillIds"`
}

func (s *ProfileService) Update(ctx context.Context, userID uint, in ProfileUpdate) (*model.Profile, error) {
	profile, err := s.ProfileRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Location != nil {
		profile.Location = strings.TrimSpace(*in.Location)
	}
	if in.IsPublic != nil {
		profile.IsPublic = *in.IsPublic
	}
	if in.Availability != nil {
		tags, err := normalizeAvailability(in.Availability)
		if err != nil {
			return nil, err
		}
		profile.Availability = tags
	}

	wanted := profile.WantedSkills
	if in.WantedSkillIDs != nil {
		wanted, err = s.SkillRepo.FindByIDs(ctx, in.WantedSkillIDs)
		if err != nil {
			return nil, err
		}
		if len(wanted) != len(uniqueIDs(in.WantedSkillIDs)) {
			return nil, util.ErrSkillNotFound
		}
	}

	if err := s.ProfileRepo.Update(ctx, profile, wanted); err != nil {
		return nil, err
	}
	return s.ProfileRepo.FindByUserID(ctx, userID)
}

// normalizeAvailability rejects unknown tags and drops duplicates.
func normalizeAvailability(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool)
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if !model.IsValidAvailability(t) {
			return nil, util.ErrInvalidAvailability
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// AddOfferedSkill puts a skill, by id or by name, on the user's offered list.
// Adding a skill twice keeps the existing entry and its verification.
func (s *ProfileService) AddOfferedSkill(ctx context.Context, userID, skillID uint, name string) (*model.UserSkill, error) {
	profile, err := s.ProfileRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	var skill *model.Skill
	if skillID != 0 {
		skill, err = s.SkillRepo.FindByID(ctx, skillID)
	} else {
		var normalized string
		normalized, err = NormalizeSkillName(name)
		if err == nil {
			skill, _, err = s.SkillRepo.GetOrCreate(ctx, normalized)
		}
	}
	if err != nil {
		return nil, err
	}

	us, _, err := s.ProfileRepo.AddOfferedSkill(ctx, profile.ID, skill.ID)
	if err != nil {
		return nil, err
	}
	us.Skill = *skill
	return us, nil
}

func (s *ProfileService) RemoveOfferedSkill(ctx context.Context, userID, skillID uint) error {
	profile, err := s.ProfileRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return s.ProfileRepo.RemoveOfferedSkill(ctx, profile.ID, skillID)
}

func (s *ProfileService) UploadPhoto(ctx context.Context, userID uint, header *multipart.FileHeader) (string, error) {
	profile, err := s.ProfileRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return "", err
	}
	url, err := s.Storage.UploadPhoto(ctx, userID, header)
	if err != nil {
		return "", err
	}
	if err := s.ProfileRepo.UpdatePhoto(ctx, profile.ID, url); err != nil {
		return "", err
	}
	return url, nil
}

type BrowseQuery struct {
	Skill    string
	Location string
	Page     int
	PageSize int
}

// Browse lists other users' public profiles matching q.
func (s *ProfileService) Browse(ctx context.Context, viewerID uint, q BrowseQuery) ([]model.Profile, int64, error) {
	if q.PageSize <= 0 {
		q.PageSize = defaultBrowseLimit
	}
	if q.PageSize > maxBrowseLimit {
		q.PageSize = maxBrowseLimit
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return s.ProfileRepo.Browse(ctx, repository.BrowseFilter{
		ViewerID: viewerID,
		Skill:    strings.TrimSpace(q.Skill),
		Location: strings.TrimSpace(q.Location),
		Limit:    q.PageSize,
		Offset:   (q.Page - 1) * q.PageSize,
	})
}

// PublicProfile is another user's profile as seen by the viewer.
type PublicProfile struct {
	Profile       *model.Profile `json:"profile"`
	RecentReviews []model.Review `json:"recentReviews"`
	Rating        RatingSummary  `json:"rating"`
	SwapExists    bool           `json:"swapExists"`
}

// Public returns userID's profile for viewerID. Private profiles are only
// visible to their owner; everyone else gets ErrProfileNotFound.
func (s *ProfileService) Public(ctx context.Context, viewerID, userID uint) (*PublicProfile, error) {
	profile, err := s.ProfileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.IsPublic && viewerID != userID {
		return nil, util.ErrProfileNotFound
	}

	reviews, err := s.Reviews.Received(ctx, userID, recentReviewsOnProfile)
	if err != nil {
		return nil, err
	}
	rating, err := s.Reviews.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}

	exists := false
	if viewerID != userID {
		exists, err = s.SwapRepo.ExistsBetween(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
	}

	return &PublicProfile{
		Profile:       profile,
		RecentReviews: reviews,
		Rating:        rating,
		SwapExists:    exists,
	}, nil
}
