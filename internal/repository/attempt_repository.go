package repository

import (
	"time"

	"aprendo_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.PracticeAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByUserID(userID uint, limit int) ([]model.PracticeAttempt, error) {
	var attempts []model.PracticeAttempt
	q := r.DB.Where("user_id = ?", userID).Order("end_time DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&attempts).Error
	return attempts, err
}

// FindByUserSince 查询某时间点之后的成绩，按月统计用
func (r *AttemptRepository) FindByUserSince(userID uint, since time.Time) ([]model.PracticeAttempt, error) {
	var attempts []model.PracticeAttempt
	err := r.DB.Where("user_id = ? AND end_time >= ?", userID, since).
		Order("end_time ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.PracticeAttempt{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
