package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"aprendo_backend/internal/config"
	"aprendo_backend/internal/model"
	"aprendo_backend/internal/repository"
	"aprendo_backend/internal/util"
	"aprendo_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	courseListCacheKey   = "content:courses"
	courseCacheKeyPrefix = "content:course:"
	contentCacheExpiry   = 10 * time.Minute
)

type ContentService struct {
	CourseRepo *repository.CourseRepository
	TopicRepo  *repository.TopicRepository
	Storage    StorageProvider
	Cfg        *config.Config
	Redis      *redis.Client
}

func NewContentService(courseRepo *repository.CourseRepository, topicRepo *repository.TopicRepository, storage StorageProvider, cfg *config.Config, rdb *redis.Client) *ContentService {
	return &ContentService{
		CourseRepo: courseRepo,
		TopicRepo:  topicRepo,
		Storage:    storage,
		Cfg:        cfg,
		Redis:      rdb,
	}
}

// CourseSummary 课程列表条目，附带主题数
type CourseSummary struct {
	model.Course
	TopicCount int64 `json:"topicCount"`
}

// ListCourses 课程列表（含主题数），优先读缓存
func (s *ContentService) ListCourses(ctx context.Context) ([]CourseSummary, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, courseListCacheKey).Result(); err == nil {
			var summaries []CourseSummary
			if err := json.Unmarshal([]byte(cached), &summaries); err == nil {
				return summaries, nil
			}
		}
	}

	courses, err := s.CourseRepo.FindAll()
	if err != nil {
		return nil, err
	}

	summaries := make([]CourseSummary, 0, len(courses))
	for _, course := range courses {
		count, err := s.CourseRepo.CountTopics(course.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, CourseSummary{Course: course, TopicCount: count})
	}

	if s.Redis != nil {
		if data, err := json.Marshal(summaries); err == nil {
			if err := s.Redis.Set(ctx, courseListCacheKey, data, contentCacheExpiry).Err(); err != nil {
				logger.Log.Warn("课程列表写缓存失败", zap.Error(err))
			}
		}
	}
	return summaries, nil
}

// ListTopics 课程下的主题列表
func (s *ContentService) ListTopics(courseID uint) ([]model.Topic, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return s.TopicRepo.FindByCourseID(courseID)
}

func (s *ContentService) GetCourse(ctx context.Context, courseID uint) (*model.Course, error) {
	key := fmt.Sprintf("%s%d", courseCacheKeyPrefix, courseID)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var course model.Course
			if err := json.Unmarshal([]byte(cached), &course); err == nil {
				return &course, nil
			}
		}
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(course); err == nil {
			s.Redis.Set(ctx, key, data, contentCacheExpiry)
		}
	}
	return course, nil
}

func (s *ContentService) GetTopic(topicID uint) (*model.Topic, error) {
	topic, err := s.TopicRepo.FindByID(topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}
	return topic, nil
}

// GetTheories 主题下的理论内容，按排序返回
func (s *ContentService) GetTheories(topicID uint) ([]model.Theory, error) {
	if _, err := s.GetTopic(topicID); err != nil {
		return nil, err
	}
	return s.TopicRepo.FindTheories(topicID)
}

// UploadTheoryMedia 上传理论配图/视频到对象存储
func (s *ContentService) UploadTheoryMedia(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	filename := "theory/" + time.Now().Format("20060102150405") + "_" + model.GenerateUUID()[:8] + ext

	return s.Storage.Upload(ctx, filename, src, file.Size, file.Header.Get("Content-Type"))
}
