package repository

import (
	"context"
	"errors"

	"devlink/internal/cache"
	"devlink/internal/models"
	"devlink/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines persistence operations for profiles and their
// nested experience/education entries.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile, updates map[string]any) (*models.Profile, error)
	AddExperience(ctx context.Context, userID uint, exp *models.Experience) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error)
	AddEducation(ctx context.Context, userID uint, edu *models.Education) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// withDetails preloads the owning user and the experience/education entries.
// Entries were prepended in the original data model, so newest-id-first
// reproduces the most-recent-first ordering guarantee.
func (r *profileRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("experiences.id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("educations.id DESC")
		})
}

// GetByUserID returns (nil, nil) when the user has no profile.
func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	defer observability.ObserveQuery("select", "profiles")()

	var profile models.Profile
	err := cache.Aside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		return r.withDetails(r.db.WithContext(ctx)).
			Where("user_id = ?", userID).
			First(&profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError("Profile", err)
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	defer observability.ObserveQuery("select", "profiles")()

	var profiles []models.Profile
	err := cache.Aside(ctx, cache.ProfileListKey, &profiles, cache.ProfileListTTL, func() error {
		return r.withDetails(r.db.WithContext(ctx)).Find(&profiles).Error
	})
	if err != nil {
		return nil, models.NewInternalError("Get Profiles", err)
	}
	return profiles, nil
}

// Upsert atomically creates the profile or, when one already exists for the
// owning user, applies only the supplied column updates. A single ON CONFLICT
// statement keyed on user_id closes the check-then-create race window.
func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile, updates map[string]any) (*models.Profile, error) {
	defer observability.ObserveQuery("upsert", "profiles")()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(updates),
	}).Create(profile).Error
	if err != nil {
		return nil, models.NewInternalError("Users Profile", err)
	}

	cache.InvalidateProfile(ctx, profile.UserID)
	return r.reload(ctx, profile.UserID)
}

func (r *profileRepository) AddExperience(ctx context.Context, userID uint, exp *models.Experience) (*models.Profile, error) {
	profile, err := r.requireProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return nil, models.NewInternalError("User Experience", err)
	}

	cache.InvalidateProfile(ctx, userID)
	return r.reload(ctx, userID)
}

// RemoveExperience deletes the entry with the given id from the user's
// profile. A missing id is rejected rather than removing anything else.
func (r *profileRepository) RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := r.requireProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", expID, profile.ID).
		Delete(&models.Experience{})
	if res.Error != nil {
		return nil, models.NewInternalError("Delete User Experience", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Experience not found!")
	}

	cache.InvalidateProfile(ctx, userID)
	return r.reload(ctx, userID)
}

func (r *profileRepository) AddEducation(ctx context.Context, userID uint, edu *models.Education) (*models.Profile, error) {
	profile, err := r.requireProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return nil, models.NewInternalError("User Education", err)
	}

	cache.InvalidateProfile(ctx, userID)
	return r.reload(ctx, userID)
}

func (r *profileRepository) RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := r.requireProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", eduID, profile.ID).
		Delete(&models.Education{})
	if res.Error != nil {
		return nil, models.NewInternalError("Delete User Education", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Education not found!")
	}

	cache.InvalidateProfile(ctx, userID)
	return r.reload(ctx, userID)
}

// requireProfile loads the bare profile row without going through the cache,
// since callers are about to mutate it.
func (r *profileRepository) requireProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("There is no profile for this user!")
		}
		return nil, models.NewInternalError("Profile", err)
	}
	return &profile, nil
}

func (r *profileRepository) reload(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.withDetails(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, models.NewInternalError("Profile", err)
	}
	return &profile, nil
}
