package repository

import (
	"aprendo_backend/internal/model"

	"gorm.io/gorm"
)

type ExerciseRepository struct {
	DB *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: db}
}

// FindByTopicID 按展示顺序取出某主题的全部练习题
func (r *ExerciseRepository) FindByTopicID(topicID uint) ([]model.Exercise, error) {
	var exercises []model.Exercise
	err := r.DB.Where("topic_id = ?", topicID).
		Order("sort_order ASC, id ASC").
		Find(&exercises).Error
	return exercises, err
}

func (r *ExerciseRepository) FindByID(id uint) (*model.Exercise, error) {
	var exercise model.Exercise
	err := r.DB.First(&exercise, id).Error
	return &exercise, err
}

func (r *ExerciseRepository) Create(exercise *model.Exercise) error {
	return r.DB.Create(exercise).Error
}
