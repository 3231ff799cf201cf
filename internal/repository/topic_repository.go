package repository

import (
	"aprendo_backend/internal/model"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) FindByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	return &topic, err
}

func (r *TopicRepository) FindByCourseID(courseID uint) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("course_id = ?", courseID).
		Order("sort_order ASC, id ASC").
		Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) FindTheories(topicID uint) ([]model.Theory, error) {
	var theories []model.Theory
	err := r.DB.Where("topic_id = ?", topicID).
		Order("sort_order ASC, id ASC").
		Find(&theories).Error
	return theories, err
}

func (r *TopicRepository) Create(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

// CountAll 全部主题数，学习进度的分母
func (r *TopicRepository) CountAll() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Topic{}).Count(&count).Error
	return count, err
}
