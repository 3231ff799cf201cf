package practice

import (
	"sync"
	"time"
)

// Session 一次练习会话的聚合根。由调用方显式构造并持有，
// 不存在任何包级可变状态。所有修改都在内部互斥锁下进行。
type Session struct {
	ID     string
	UserID uint
	Topic  Topic

	mu              sync.Mutex
	exercises       []Exercise
	nav             *Navigator
	rec             *Recorder
	currentID       uint
	active          bool
	startTime       time.Time
	expectedMinutes int
	remaining       int
	countdown       Countdown
	result          *Result
}

// NewSession 构造会话。题目去重后为空时返回 ErrNoExercises，
// 调用方不得用空题目集开启会话。
func NewSession(id string, userID uint, topic Topic, exercises []Exercise, durationMinutes int, countdown Countdown) (*Session, error) {
	exercises = dedupExercises(exercises)
	nav := NewNavigator(exercises)
	first, err := nav.First()
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:              id,
		UserID:          userID,
		Topic:           topic,
		exercises:       exercises,
		nav:             nav,
		rec:             NewRecorder(exercises),
		currentID:       first,
		active:          true,
		startTime:       time.Now(),
		expectedMinutes: durationMinutes,
		remaining:       durationMinutes * 60,
		countdown:       countdown,
	}, nil
}

// StartTimer 启动倒计时。onExpire 在计时归零时恰好回调一次
func (s *Session) StartTimer(onExpire func()) {
	s.countdown.Start(s.remaining, func(remaining int) {
		s.mu.Lock()
		if s.active {
			s.remaining = remaining
		}
		s.mu.Unlock()
	}, onExpire)
}

// Select 跳转到任意一道已加载的题目（侧边栏点击）
func (s *Session) Select(exerciseID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return ErrSessionFinished
	}
	if !s.nav.Contains(exerciseID) {
		return ErrExerciseMissing
	}
	s.currentID = exerciseID
	return nil
}

// Answer 记录当前题目的选择，可反复覆盖
func (s *Session) Answer(optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return ErrSessionFinished
	}
	return s.rec.Record(s.currentID, optionIndex)
}

func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return ErrSessionFinished
	}
	next, err := s.nav.Next(s.currentID)
	if err != nil {
		return err
	}
	s.currentID = next
	return nil
}

func (s *Session) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return ErrSessionFinished
	}
	s.currentID = s.nav.Previous(s.currentID)
	return nil
}

// Finalize Active -> Finalizing -> Finalized 的状态迁移入口。
// 先停计时器再结算，使迁移对并发的到期回调是原子的；
// 第二个触发方拿到 false 与已有结果，静默退化为 no-op。
func (s *Session) Finalize(reason FinishReason, now time.Time) (*Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return s.result, false
	}

	s.countdown.Stop()
	s.active = false
	s.result = ComputeResult(s.exercises, s.rec.Snapshot(), s.Topic, s.startTime, now, s.expectedMinutes, reason)
	return s.result, true
}

func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

func (s *Session) StartTime() time.Time {
	return s.startTime
}

func (s *Session) ExpectedMinutes() int {
	return s.expectedMinutes
}

// StopTimer 不结算直接停表，用于丢弃会话
func (s *Session) StopTimer() {
	s.countdown.Stop()
}
