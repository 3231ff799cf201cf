package practice

import (
	"testing"
	"time"
)

func scoringExercises() []Exercise {
	// 5 道题，正确答案依次为 0,1,2,3,0
	return []Exercise{
		{ID: 1, Question: "q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0},
		{ID: 2, Question: "q2", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1},
		{ID: 3, Question: "q3", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2},
		{ID: 4, Question: "q4", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 3},
		{ID: 5, Question: "q5", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0},
	}
}

func TestComputeResultUserFinish(t *testing.T) {
	// 场景：答对 1,2,3，答错 4，跳过 5，用户主动结束
	answers := map[uint]string{
		1: "0",
		2: "1",
		3: "2",
		4: "0",
	}
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := start.Add(42 * time.Second)
	topic := Topic{ID: 7, Title: "Punteros", CourseID: 3}

	res := ComputeResult(scoringExercises(), answers, topic, start, now, 1, FinishByUser)

	if res.Answered != 4 || res.Skipped != 1 {
		t.Errorf("answered/skipped = %d/%d, want 4/1", res.Answered, res.Skipped)
	}
	if res.Correct != 3 || res.Incorrect != 1 {
		t.Errorf("correct/incorrect = %d/%d, want 3/1", res.Correct, res.Incorrect)
	}
	if res.Score != 60 {
		t.Errorf("score = %d, want 60", res.Score)
	}
	if res.AnsweredPercent != 80 {
		t.Errorf("answeredPercent = %d, want 80", res.AnsweredPercent)
	}
	if res.TimeTakenSeconds != 42 {
		t.Errorf("timeTaken = %d, want 42", res.TimeTakenSeconds)
	}
	if res.FinishReason != FinishByUser {
		t.Errorf("finishReason = %q, want %q", res.FinishReason, FinishByUser)
	}
	if res.TopicID != 7 || res.TopicName != "Punteros" {
		t.Errorf("topic = %d/%q, want 7/Punteros", res.TopicID, res.TopicName)
	}
	if len(res.Breakdown) != 5 {
		t.Fatalf("breakdown size = %d, want 5", len(res.Breakdown))
	}
	if !res.Breakdown[0].IsCorrect || res.Breakdown[3].IsCorrect {
		t.Error("breakdown correctness flags wrong")
	}
	if res.Breakdown[4].Answered {
		t.Error("skipped exercise marked answered")
	}
}

func TestComputeResultTimeExpired(t *testing.T) {
	// 场景：只答对第 1 题，计时归零结束。上报用时必须精确等于配置时长
	answers := map[uint]string{1: "0"}
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := start.Add(61*time.Second + 300*time.Millisecond) // 调度抖动

	res := ComputeResult(scoringExercises(), answers, Topic{ID: 7}, start, now, 1, FinishByTime)

	if res.TimeTakenSeconds != 60 {
		t.Errorf("timeTaken = %d, want exactly 60", res.TimeTakenSeconds)
	}
	if res.Answered != 1 || res.Skipped != 4 {
		t.Errorf("answered/skipped = %d/%d, want 1/4", res.Answered, res.Skipped)
	}
	if res.Correct != 1 || res.Score != 20 {
		t.Errorf("correct/score = %d/%d, want 1/20", res.Correct, res.Score)
	}
	if res.FinishReason != FinishByTime {
		t.Errorf("finishReason = %q, want %q", res.FinishReason, FinishByTime)
	}
}

func TestComputeResultInvariants(t *testing.T) {
	tests := []struct {
		name    string
		answers map[uint]string
	}{
		{name: "no answers", answers: map[uint]string{}},
		{name: "all answered", answers: map[uint]string{1: "0", 2: "1", 3: "2", 4: "3", 5: "0"}},
		{name: "all wrong", answers: map[uint]string{1: "3", 2: "3", 3: "3", 4: "0", 5: "3"}},
		{name: "mixed", answers: map[uint]string{2: "1", 4: "2"}},
	}

	start := time.Now()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ComputeResult(scoringExercises(), tt.answers, Topic{}, start, start.Add(time.Minute), 5, FinishByUser)

			if res.Correct+res.Incorrect != res.Answered {
				t.Errorf("correct+incorrect = %d, want answered = %d", res.Correct+res.Incorrect, res.Answered)
			}
			if res.Answered+res.Skipped != res.TotalExercises {
				t.Errorf("answered+skipped = %d, want total = %d", res.Answered+res.Skipped, res.TotalExercises)
			}
			if res.Score < 0 || res.Score > 100 {
				t.Errorf("score = %d, out of [0,100]", res.Score)
			}
		})
	}
}

func TestComputeResultEmptySet(t *testing.T) {
	start := time.Now()
	res := ComputeResult(nil, nil, Topic{}, start, start, 0, FinishByUser)
	if res.Score != 0 || res.AnsweredPercent != 0 {
		t.Errorf("score/answeredPercent on empty set = %d/%d, want 0/0", res.Score, res.AnsweredPercent)
	}
}

func TestComputeResultDeterministic(t *testing.T) {
	answers := map[uint]string{1: "0", 3: "1"}
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := start.Add(90 * time.Second)

	a := ComputeResult(scoringExercises(), answers, Topic{ID: 1}, start, now, 2, FinishByUser)
	b := ComputeResult(scoringExercises(), answers, Topic{ID: 1}, start, now, 2, FinishByUser)

	if a.Score != b.Score || a.TimeTakenSeconds != b.TimeTakenSeconds || a.Answered != b.Answered {
		t.Error("identical inputs produced different results")
	}
}
