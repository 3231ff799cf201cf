package practice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

// manualCountdown 手动驱动的倒计时，测试里用虚拟时间代替真实等待
type manualCountdown struct {
	mu        sync.Mutex
	remaining int
	onTick    func(int)
	onExpire  func()
	started   bool
	stopped   bool
}

func (c *manualCountdown) Start(seconds int, onTick func(int), onExpire func()) {
	c.mu.Lock()
	c.remaining = seconds
	c.onTick = onTick
	c.onExpire = onExpire
	c.started = true
	c.stopped = false
	c.mu.Unlock()
}

func (c *manualCountdown) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
}

// tick 推进一秒，归零时触发到期回调
func (c *manualCountdown) tick() {
	c.mu.Lock()
	if c.stopped || !c.started {
		c.mu.Unlock()
		return
	}
	c.remaining--
	if c.remaining < 0 {
		c.remaining = 0
	}
	remaining := c.remaining
	onTick, onExpire := c.onTick, c.onExpire
	c.mu.Unlock()

	onTick(remaining)
	if remaining == 0 {
		c.Stop()
		onExpire()
	}
}

// fireExpiry 模拟已入队的到期回调被投递
func (c *manualCountdown) fireExpiry() {
	c.mu.Lock()
	onExpire := c.onExpire
	c.mu.Unlock()
	if onExpire != nil {
		onExpire()
	}
}

type stubSource struct {
	exercises []Exercise
	err       error
}

func (s *stubSource) FetchByTopic(ctx context.Context, topicID uint) ([]Exercise, error) {
	return s.exercises, s.err
}

type captureSink struct {
	mu      sync.Mutex
	records []AttemptRecord
	err     error
}

func (s *captureSink) SaveAttempt(ctx context.Context, record AttemptRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, record)
	return nil
}

func (s *captureSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func newTestManager(source ExerciseSource, sink AttemptSink) (*Manager, *manualCountdown) {
	cd := &manualCountdown{}
	m := NewManager(source, sink, zap.NewNop())
	m.SetCountdownFactory(func() Countdown { return cd })
	return m, cd
}

func TestManagerStartEmptyTopic(t *testing.T) {
	// 场景：题目列表为空，不得构造会话、不得启动计时
	m, cd := newTestManager(&stubSource{}, &captureSink{})

	_, err := m.Start(context.Background(), 1, Topic{ID: 7}, 1)
	if !errors.Is(err, ErrNoExercises) {
		t.Fatalf("Start() error = %v, want ErrNoExercises", err)
	}
	if cd.started {
		t.Error("countdown started for empty exercise set")
	}
	if _, err := m.Get(1); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("Get() error = %v, want ErrNoActiveSession", err)
	}
}

func TestManagerStartRepositoryError(t *testing.T) {
	wantErr := errors.New("query failed")
	m, _ := newTestManager(&stubSource{err: wantErr}, &captureSink{})

	if _, err := m.Start(context.Background(), 1, Topic{ID: 7}, 1); !errors.Is(err, wantErr) {
		t.Fatalf("Start() error = %v, want %v", err, wantErr)
	}
}

func TestManagerUserFinishFlow(t *testing.T) {
	// 场景：5 题，答对 1,2,3，答错 4，跳过 5，用户确认结束
	sink := &captureSink{}
	m, _ := newTestManager(&stubSource{exercises: scoringExercises()}, sink)

	sess, err := m.Start(context.Background(), 1, Topic{ID: 7, Title: "Punteros", CourseID: 3}, 1)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	answerAndNext := func(option int) {
		t.Helper()
		if err := sess.Answer(option); err != nil {
			t.Fatalf("Answer(%d) error = %v", option, err)
		}
		if err := sess.Next(); err != nil && !errors.Is(err, ErrEndOfSequence) {
			t.Fatalf("Next() error = %v", err)
		}
	}
	answerAndNext(0) // 1 正确
	answerAndNext(1) // 2 正确
	answerAndNext(2) // 3 正确
	answerAndNext(0) // 4 错误

	res, err := m.Finish(context.Background(), 1)
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	if res.Answered != 4 || res.Skipped != 1 || res.Correct != 3 || res.Incorrect != 1 {
		t.Errorf("result = answered %d skipped %d correct %d incorrect %d, want 4/1/3/1",
			res.Answered, res.Skipped, res.Correct, res.Incorrect)
	}
	if res.Score != 60 {
		t.Errorf("score = %d, want 60", res.Score)
	}
	if res.FinishReason != FinishByUser {
		t.Errorf("finishReason = %q, want %q", res.FinishReason, FinishByUser)
	}

	if sink.count() != 1 {
		t.Fatalf("persisted %d attempts, want 1", sink.count())
	}
	rec := sink.records[0]
	if rec.UserID != 1 || rec.TopicID != 7 || rec.CourseID != 3 {
		t.Errorf("record ids = %d/%d/%d, want 1/7/3", rec.UserID, rec.TopicID, rec.CourseID)
	}
	if rec.TotalQuestions != 5 || rec.CorrectAnswers != 3 {
		t.Errorf("record counts = %d/%d, want 5/3", rec.TotalQuestions, rec.CorrectAnswers)
	}
	if rec.CompletionType != FinishByUser {
		t.Errorf("completionType = %q, want %q", rec.CompletionType, FinishByUser)
	}

	// 结束后不允许继续作答
	if err := sess.Answer(0); !errors.Is(err, ErrSessionFinished) {
		t.Errorf("Answer() after finish error = %v, want ErrSessionFinished", err)
	}
}

func TestManagerTimeExpiredFlow(t *testing.T) {
	// 场景：只答第 1 题，计时走完。上报用时必须恰好等于配置时长
	sink := &captureSink{}
	m, cd := newTestManager(&stubSource{exercises: scoringExercises()}, sink)

	sess, err := m.Start(context.Background(), 1, Topic{ID: 7, CourseID: 3}, 1)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := sess.Answer(0); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	for i := 0; i < 60; i++ {
		cd.tick()
	}

	if sess.Active() {
		t.Fatal("session still active after countdown expiry")
	}
	res := sess.Result()
	if res == nil {
		t.Fatal("no result after expiry")
	}
	if res.FinishReason != FinishByTime {
		t.Errorf("finishReason = %q, want %q", res.FinishReason, FinishByTime)
	}
	if res.TimeTakenSeconds != 60 {
		t.Errorf("timeTaken = %d, want exactly 60", res.TimeTakenSeconds)
	}
	if res.Answered != 1 || res.Skipped != 4 {
		t.Errorf("answered/skipped = %d/%d, want 1/4", res.Answered, res.Skipped)
	}

	if sink.count() != 1 {
		t.Errorf("persisted %d attempts, want 1", sink.count())
	}
	rec := sink.records[0]
	if got := rec.EndTime.Sub(rec.StartTime); got != time.Minute {
		t.Errorf("endTime-startTime = %v, want exactly 1m", got)
	}
}

func TestManagerFinalizationExclusive(t *testing.T) {
	// 用户结束与计时到期在同一轮内先后触发，只允许一次结算
	sink := &captureSink{}
	m, cd := newTestManager(&stubSource{exercises: scoringExercises()}, sink)

	if _, err := m.Start(context.Background(), 1, Topic{ID: 7}, 1); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	first, err := m.Finish(context.Background(), 1)
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	// 模拟已入队的到期回调仍被投递：必须静默退化为 no-op
	cd.fireExpiry()

	if sink.count() != 1 {
		t.Fatalf("persisted %d attempts, want exactly 1", sink.count())
	}

	sess, _ := m.Get(1)
	if sess.Result() != first {
		t.Error("second trigger replaced the finalized result")
	}
	if first.FinishReason != FinishByUser {
		t.Errorf("finishReason = %q, want the first trigger's %q", first.FinishReason, FinishByUser)
	}

	// 反方向再触发一次用户结束，同样只能是 no-op
	again, err := m.Finish(context.Background(), 1)
	if err != nil {
		t.Fatalf("second Finish() error = %v", err)
	}
	if again != first {
		t.Error("repeated Finish() recomputed the result")
	}
	if sink.count() != 1 {
		t.Errorf("persisted %d attempts after repeated finish, want 1", sink.count())
	}
}

func TestManagerPersistenceFailure(t *testing.T) {
	// 落库失败只作提示，结果保持有效
	wantErr := errors.New("insert rejected")
	m, _ := newTestManager(&stubSource{exercises: scoringExercises()}, &captureSink{err: wantErr})

	if _, err := m.Start(context.Background(), 1, Topic{ID: 7}, 1); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	res, err := m.Finish(context.Background(), 1)
	if !errors.Is(err, wantErr) {
		t.Errorf("Finish() error = %v, want persistence warning %v", err, wantErr)
	}
	if res == nil || res.TotalExercises != 5 {
		t.Fatal("result discarded on persistence failure")
	}

	sess, _ := m.Get(1)
	if sess.Active() {
		t.Error("session re-activated after persistence failure")
	}
}

func TestManagerRestartDiscardsPrevious(t *testing.T) {
	sink := &captureSink{}
	m := NewManager(&stubSource{exercises: scoringExercises()}, sink, zap.NewNop())

	// 每个会话一个独立的倒计时实例
	var countdowns []*manualCountdown
	m.SetCountdownFactory(func() Countdown {
		cd := &manualCountdown{}
		countdowns = append(countdowns, cd)
		return cd
	})

	first, err := m.Start(context.Background(), 1, Topic{ID: 7}, 1)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	second, err := m.Start(context.Background(), 1, Topic{ID: 8}, 2)
	if err != nil {
		t.Fatalf("second Start() error = %v", err)
	}
	if first == second {
		t.Fatal("expected a fresh session object")
	}

	got, err := m.Get(1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != second {
		t.Error("Get() returned the discarded session")
	}

	// 被丢弃会话的计时器已被停掉，继续打点不得产生任何结算
	for i := 0; i < 120; i++ {
		countdowns[0].tick()
	}
	if sink.count() != 0 {
		t.Errorf("discarded session persisted %d attempts, want 0", sink.count())
	}
}
