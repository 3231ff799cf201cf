package repository

import (
	"aprendo_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("published = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Topics", func(db *gorm.DB) *gorm.DB {
		return db.Order("topics.sort_order ASC, topics.id ASC")
	}).First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

// CountTopics 课程下主题总数，列表页展示用
func (r *CourseRepository) CountTopics(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Topic{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
