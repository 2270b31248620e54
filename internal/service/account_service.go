package service

import (
	"context"
	"errors"

	"devlink/internal/cache"
	"devlink/internal/models"

	"gorm.io/gorm"
)

// AccountService implements the cascading account deletion flow.
type AccountService struct {
	db *gorm.DB
}

// NewAccountService returns a new AccountService.
func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// DeleteAccount removes the user's posts (with their comments and likes),
// profile (with its experience and education entries) and finally the user
// record. The whole cascade runs in one transaction: a failure at any step
// rolls everything back, so orphaned posts or profiles are never left behind.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).
			Where("user_id = ?", userID).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		var profile models.Profile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err == nil {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
				return err
			}
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&profile).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return models.NewInternalError("Delete Account", err)
	}

	cache.InvalidateProfile(ctx, userID)
	return nil
}
