package repository

import (
	"errors"
	"time"

	"aprendo_backend/internal/model"

	"gorm.io/gorm"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) FindAll() ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Order("threshold ASC, id ASC").Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) FindByCode(code string) (*model.Badge, error) {
	var badge model.Badge
	err := r.DB.Where("code = ?", code).First(&badge).Error
	return &badge, err
}

func (r *BadgeRepository) FindUserBadges(userID uint) ([]model.UserBadge, error) {
	var awards []model.UserBadge
	err := r.DB.Preload("Badge").
		Where("user_id = ?", userID).
		Order("awarded_at DESC").
		Find(&awards).Error
	return awards, err
}

// Award 授予徽章，重复授予静默忽略
func (r *BadgeRepository) Award(userID, badgeID uint) error {
	var existing model.UserBadge
	err := r.DB.Where("user_id = ? AND badge_id = ?", userID, badgeID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.DB.Create(&model.UserBadge{
		UserID:    userID,
		BadgeID:   badgeID,
		AwardedAt: time.Now(),
	}).Error
}
