package practice

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExerciseSource 练习题的读取契约，由仓储层实现
type ExerciseSource interface {
	FetchByTopic(ctx context.Context, topicID uint) ([]Exercise, error)
}

// AttemptRecord 一次已完成练习的持久化记录。数值字段必须以数值类型
// 传输，后端数据库对列类型有强约束。
type AttemptRecord struct {
	UserID                  uint
	TopicID                 uint
	CourseID                uint
	StartTime               time.Time
	EndTime                 time.Time
	ExpectedDurationMinutes int
	CompletionType          FinishReason
	TotalQuestions          int
	CorrectAnswers          int
	CreatedAt               time.Time
}

// AttemptSink 完成记录的写入契约，只追加，从不修改历史记录
type AttemptSink interface {
	SaveAttempt(ctx context.Context, record AttemptRecord) error
}

// Manager 管理进行中的练习会话：每个用户至多一个活动会话，
// 开启新会话会丢弃旧的内存状态。结算编排（停表、计分、落库）也在这里。
type Manager struct {
	source       ExerciseSource
	sink         AttemptSink
	newCountdown func() Countdown
	log          *zap.Logger

	// onFinalized 每次结算后回调一次（指标上报等），persistErr 可能为 nil
	onFinalized func(res *Result, persistErr error)

	mu       sync.Mutex
	sessions map[uint]*Session
}

func NewManager(source ExerciseSource, sink AttemptSink, log *zap.Logger) *Manager {
	return &Manager{
		source:       source,
		sink:         sink,
		newCountdown: NewCountdown,
		log:          log,
		sessions:     make(map[uint]*Session),
	}
}

// SetCountdownFactory 替换倒计时实现，测试用虚拟时钟驱动
func (m *Manager) SetCountdownFactory(f func() Countdown) {
	m.newCountdown = f
}

func (m *Manager) SetFinalizedHook(f func(res *Result, persistErr error)) {
	m.onFinalized = f
}

// Start 开启一个练习会话。读取失败或题目为空时不构造任何会话、
// 不启动计时器，错误原样上抛。
func (m *Manager) Start(ctx context.Context, userID uint, topic Topic, durationMinutes int) (*Session, error) {
	exercises, err := m.source.FetchByTopic(ctx, topic.ID)
	if err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		return nil, ErrNoExercises
	}

	sess, err := NewSession(uuid.New().String(), userID, topic, exercises, durationMinutes, m.newCountdown())
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if prev, ok := m.sessions[userID]; ok {
		// 旧会话直接丢弃，先停表防止孤儿计时器触发结算
		prev.StopTimer()
	}
	m.sessions[userID] = sess
	m.mu.Unlock()

	sess.StartTimer(func() {
		m.expire(sess)
	})

	m.log.Info("practice session started",
		zap.String("sessionId", sess.ID),
		zap.Uint("userId", userID),
		zap.Uint("topicId", topic.ID),
		zap.Int("exercises", len(exercises)),
		zap.Int("durationMinutes", durationMinutes))

	return sess, nil
}

// Get 返回用户当前会话（可能已结束但未被新会话替换）
func (m *Manager) Get(userID uint) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return sess, nil
}

// Finish 用户主动结束。确认步骤由调用方完成，到这里即视为已确认。
// 会话已结束时静默返回既有结果。persistErr 仅作提示，不回滚结果。
func (m *Manager) Finish(ctx context.Context, userID uint) (*Result, error) {
	sess, err := m.Get(userID)
	if err != nil {
		return nil, err
	}
	res, persistErr := m.finalize(ctx, sess, FinishByUser)
	return res, persistErr
}

// expire 计时归零路径，无需确认立即结算
func (m *Manager) expire(sess *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	m.finalize(ctx, sess, FinishByTime)
}

// finalize 结算编排。Session.Finalize 内部保证只有第一个触发方
// 真正执行迁移；后到的一方直接拿到已有结果。
func (m *Manager) finalize(ctx context.Context, sess *Session, reason FinishReason) (*Result, error) {
	now := time.Now()
	res, won := sess.Finalize(reason, now)
	if !won {
		return res, nil
	}

	endTime := now
	if reason == FinishByTime {
		// 超时路径的结束时间固定为 开始时间+配置时长
		endTime = sess.StartTime().Add(time.Duration(sess.ExpectedMinutes()) * time.Minute)
	}

	record := AttemptRecord{
		UserID:                  sess.UserID,
		TopicID:                 sess.Topic.ID,
		CourseID:                sess.Topic.CourseID,
		StartTime:               sess.StartTime(),
		EndTime:                 endTime,
		ExpectedDurationMinutes: sess.ExpectedMinutes(),
		CompletionType:          reason,
		TotalQuestions:          res.TotalExercises,
		CorrectAnswers:          res.Correct,
		CreatedAt:               time.Now(),
	}

	persistErr := m.sink.SaveAttempt(ctx, record)
	if persistErr != nil {
		// 结果已经展示给用户，落库失败只提示不回滚
		m.log.Warn("failed to persist practice attempt",
			zap.String("sessionId", sess.ID),
			zap.Uint("userId", sess.UserID),
			zap.Error(persistErr))
	}

	m.log.Info("practice session finalized",
		zap.String("sessionId", sess.ID),
		zap.Uint("userId", sess.UserID),
		zap.String("reason", string(reason)),
		zap.Int("score", res.Score))

	if m.onFinalized != nil {
		m.onFinalized(res, persistErr)
	}
	return res, persistErr
}

// Discard 丢弃用户当前会话（不结算、不落库）
func (m *Manager) Discard(userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[userID]; ok {
		sess.StopTimer()
		delete(m.sessions, userID)
	}
}
