package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aprendo_backend/internal/config"
	"aprendo_backend/internal/model"
	"aprendo_backend/internal/practice"
	"aprendo_backend/internal/repository"
	"aprendo_backend/internal/util"
	"aprendo_backend/pkg/logger"
	"aprendo_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const exerciseCacheKeyPrefix = "practice:exercises:"

var ErrResultNotReady = errors.New("练习尚未结束")

// exerciseLoader 实现 practice.ExerciseSource：优先读 Redis 缓存，
// 未命中再查库并回填。缓存里保留正确答案，键不对客户端暴露。
type exerciseLoader struct {
	repo   *repository.ExerciseRepository
	rdb    *redis.Client
	expiry time.Duration
}

type cachedExercise struct {
	ID            uint     `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

func (l *exerciseLoader) FetchByTopic(ctx context.Context, topicID uint) ([]practice.Exercise, error) {
	key := fmt.Sprintf("%s%d", exerciseCacheKeyPrefix, topicID)

	if l.rdb != nil {
		if cached, err := l.rdb.Get(ctx, key).Result(); err == nil {
			var entries []cachedExercise
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return fromCached(entries), nil
			}
		}
	}

	rows, err := l.repo.FindByTopicID(topicID)
	if err != nil {
		return nil, err
	}

	exercises := make([]practice.Exercise, 0, len(rows))
	entries := make([]cachedExercise, 0, len(rows))
	for _, row := range rows {
		opts, err := row.DecodeOptions()
		if err != nil {
			return nil, fmt.Errorf("题目 %d 选项格式非法: %w", row.ID, err)
		}
		exercises = append(exercises, practice.Exercise{
			ID:            row.ID,
			Question:      row.Question,
			Options:       opts,
			CorrectAnswer: row.CorrectAnswer,
			Explanation:   row.Explanation,
		})
		entries = append(entries, cachedExercise{
			ID:            row.ID,
			Question:      row.Question,
			Options:       opts,
			CorrectAnswer: row.CorrectAnswer,
			Explanation:   row.Explanation,
		})
	}

	if l.rdb != nil && len(entries) > 0 {
		if data, err := json.Marshal(entries); err == nil {
			if err := l.rdb.Set(ctx, key, data, l.expiry).Err(); err != nil {
				logger.Log.Warn("练习题写缓存失败", zap.Uint("topicID", topicID), zap.Error(err))
			}
		}
	}
	return exercises, nil
}

func fromCached(entries []cachedExercise) []practice.Exercise {
	exercises := make([]practice.Exercise, 0, len(entries))
	for _, e := range entries {
		exercises = append(exercises, practice.Exercise{
			ID:            e.ID,
			Question:      e.Question,
			Options:       e.Options,
			CorrectAnswer: e.CorrectAnswer,
			Explanation:   e.Explanation,
		})
	}
	return exercises
}

// attemptSink 实现 practice.AttemptSink：成绩落库后顺带评定徽章。
// 徽章失败不影响成绩保存。
type attemptSink struct {
	attemptRepo *repository.AttemptRepository
	badgeRepo   *repository.BadgeRepository
}

func (s *attemptSink) SaveAttempt(ctx context.Context, record practice.AttemptRecord) error {
	attempt := &model.PracticeAttempt{
		UserID:                  record.UserID,
		TopicID:                 record.TopicID,
		CourseID:                record.CourseID,
		StartTime:               record.StartTime,
		EndTime:                 record.EndTime,
		ExpectedDurationMinutes: record.ExpectedDurationMinutes,
		CompletionType:          string(record.CompletionType),
		TotalQuestions:          record.TotalQuestions,
		CorrectAnswers:          record.CorrectAnswers,
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		return err
	}

	if err := s.evaluateBadges(attempt); err != nil {
		logger.Log.Warn("徽章评定失败", zap.Uint("userID", attempt.UserID), zap.Error(err))
	}
	return nil
}

func (s *attemptSink) evaluateBadges(attempt *model.PracticeAttempt) error {
	count, err := s.attemptRepo.CountByUser(attempt.UserID)
	if err != nil {
		return err
	}

	award := func(code string) error {
		badge, err := s.badgeRepo.FindByCode(code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return s.badgeRepo.Award(attempt.UserID, badge.ID)
	}

	if count >= 1 {
		if err := award("first_practice"); err != nil {
			return err
		}
	}
	if count >= 10 {
		if err := award("ten_practices"); err != nil {
			return err
		}
	}
	if attempt.Score() >= 80 {
		if err := award("topic_master"); err != nil {
			return err
		}
	}
	if attempt.Score() == 100 {
		if err := award("perfect_score"); err != nil {
			return err
		}
	}
	return nil
}

type PracticeService struct {
	Manager   *practice.Manager
	TopicRepo *repository.TopicRepository
	Attempts  *repository.AttemptRepository
	Cfg       *config.Config
}

func NewPracticeService(
	exerciseRepo *repository.ExerciseRepository,
	topicRepo *repository.TopicRepository,
	attemptRepo *repository.AttemptRepository,
	badgeRepo *repository.BadgeRepository,
	cfg *config.Config,
	rdb *redis.Client,
) *PracticeService {
	source := &exerciseLoader{
		repo:   exerciseRepo,
		rdb:    rdb,
		expiry: time.Duration(cfg.Practice.CacheExpiryMinutes) * time.Minute,
	}
	sink := &attemptSink{attemptRepo: attemptRepo, badgeRepo: badgeRepo}

	manager := practice.NewManager(source, sink, logger.Log)
	manager.SetFinalizedHook(func(res *practice.Result, persistErr error) {
		monitoring.ActivePracticeSessions.Dec()
		monitoring.PracticeFinalizations.WithLabelValues(string(res.FinishReason)).Inc()
		if persistErr != nil {
			monitoring.PracticePersistFailures.Inc()
		}
	})

	return &PracticeService{
		Manager:   manager,
		TopicRepo: topicRepo,
		Attempts:  attemptRepo,
		Cfg:       cfg,
	}
}

// PracticeStateView 练习界面的完整状态快照
type PracticeStateView struct {
	SessionID string                 `json:"sessionId"`
	TopicID   uint                   `json:"topicId"`
	Topic     string                 `json:"topic"`
	Active    bool                   `json:"active"`
	Exercise  practice.ExerciseView  `json:"exercise"`
	Progress  practice.ProgressView  `json:"progress"`
	Timer     practice.TimerView     `json:"timer"`
	Sidebar   []practice.SidebarItem `json:"sidebar"`
}

func stateView(sess *practice.Session) *PracticeStateView {
	return &PracticeStateView{
		SessionID: sess.ID,
		TopicID:   sess.Topic.ID,
		Topic:     sess.Topic.Title,
		Active:    sess.Active(),
		Exercise:  sess.CurrentExercise(),
		Progress:  sess.Progress(),
		Timer:     sess.Timer(),
		Sidebar:   sess.Sidebar(),
	}
}

// Start 开启练习。时长为 0 取主题推荐时长，仍为 0 取全局默认；
// 超出上限视为非法请求。
func (s *PracticeService) Start(ctx context.Context, userID, topicID uint, durationMinutes int) (*PracticeStateView, error) {
	topic, err := s.TopicRepo.FindByID(topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}

	if durationMinutes == 0 {
		durationMinutes = topic.DurationMinutes
	}
	if durationMinutes == 0 {
		durationMinutes = s.Cfg.Practice.DefaultDurationMinutes
	}
	if durationMinutes < 0 || durationMinutes > s.Cfg.Practice.MaxDurationMinutes {
		return nil, util.ErrInvalidDuration
	}

	sess, err := s.Manager.Start(ctx, userID, practice.Topic{
		ID:       topic.ID,
		Title:    topic.Title,
		CourseID: topic.CourseID,
	}, durationMinutes)
	if err != nil {
		return nil, err
	}

	monitoring.ActivePracticeSessions.Inc()
	return stateView(sess), nil
}

func (s *PracticeService) State(userID uint) (*PracticeStateView, error) {
	sess, err := s.Manager.Get(userID)
	if err != nil {
		return nil, err
	}
	return stateView(sess), nil
}

// Answer 记录当前题的作答，答完返回最新状态
func (s *PracticeService) Answer(userID uint, optionIndex int) (*PracticeStateView, error) {
	sess, err := s.Manager.Get(userID)
	if err != nil {
		return nil, err
	}
	if err := sess.Answer(optionIndex); err != nil {
		return nil, err
	}
	return stateView(sess), nil
}

// Select 跳转到侧边栏选中的题目
func (s *PracticeService) Select(userID, exerciseID uint) (*PracticeStateView, error) {
	sess, err := s.Manager.Get(userID)
	if err != nil {
		return nil, err
	}
	if err := sess.Select(exerciseID); err != nil {
		return nil, err
	}
	return stateView(sess), nil
}

// Next 前进一题，已在最后一题时保持原位
func (s *PracticeService) Next(userID uint) (*PracticeStateView, error) {
	sess, err := s.Manager.Get(userID)
	if err != nil {
		return nil, err
	}
	if err := sess.Next(); err != nil && !errors.Is(err, practice.ErrEndOfSequence) {
		return nil, err
	}
	return stateView(sess), nil
}

// Previous 后退一题，已在第一题时保持原位
func (s *PracticeService) Previous(userID uint) (*PracticeStateView, error) {
	sess, err := s.Manager.Get(userID)
	if err != nil {
		return nil, err
	}
	if err := sess.Previous(); err != nil {
		return nil, err
	}
	return stateView(sess), nil
}

// Finish 用户确认结束。persistErr 仅作提示，结果照常返回。
func (s *PracticeService) Finish(ctx context.Context, userID uint) (*practice.Result, error) {
	return s.Manager.Finish(ctx, userID)
}

// Result 取已结束会话的成绩单
func (s *PracticeService) Result(userID uint) (*practice.Result, error) {
	sess, err := s.Manager.Get(userID)
	if err != nil {
		return nil, err
	}
	res := sess.Result()
	if res == nil {
		return nil, ErrResultNotReady
	}
	return res, nil
}

// Discard 放弃当前会话，不计成绩
func (s *PracticeService) Discard(userID uint) {
	s.Manager.Discard(userID)
}

// AttemptView 历史成绩条目
type AttemptView struct {
	ID                      uint      `json:"id"`
	TopicID                 uint      `json:"topicId"`
	CourseID                uint      `json:"courseId"`
	StartTime               time.Time `json:"startTime"`
	EndTime                 time.Time `json:"endTime"`
	ExpectedDurationMinutes int       `json:"expectedDurationMinutes"`
	CompletionType          string    `json:"completionType"`
	TotalQuestions          int       `json:"totalQuestions"`
	CorrectAnswers          int       `json:"correctAnswers"`
	Score                   int       `json:"score"`
}

// History 用户的历史成绩，按结束时间倒序
func (s *PracticeService) History(userID uint, limit int) ([]AttemptView, error) {
	attempts, err := s.Attempts.FindByUserID(userID, limit)
	if err != nil {
		return nil, err
	}
	views := make([]AttemptView, 0, len(attempts))
	for _, a := range attempts {
		views = append(views, AttemptView{
			ID:                      a.ID,
			TopicID:                 a.TopicID,
			CourseID:                a.CourseID,
			StartTime:               a.StartTime,
			EndTime:                 a.EndTime,
			ExpectedDurationMinutes: a.ExpectedDurationMinutes,
			CompletionType:          a.CompletionType,
			TotalQuestions:          a.TotalQuestions,
			CorrectAnswers:          a.CorrectAnswers,
			Score:                   a.Score(),
		})
	}
	return views, nil
}
