package practice

import (
	"math"
	"strconv"
	"time"
)

// FinishReason 会话结束方式，持久化到 completion_type 列
type FinishReason string

const (
	FinishByUser FinishReason = "user"
	FinishByTime FinishReason = "time expired"
)

// ExerciseResult 单题结算明细
type ExerciseResult struct {
	ExerciseID    uint   `json:"exerciseId"`
	QuestionText  string `json:"questionText"`
	UserAnswer    string `json:"userAnswer,omitempty"`
	Answered      bool   `json:"answered"`
	CorrectAnswer int    `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

// Result 一次练习会话的结算结果，结算后不再修改
type Result struct {
	TopicID                 uint             `json:"topicId"`
	TopicName               string           `json:"topicName"`
	TotalExercises          int              `json:"totalExercises"`
	Answered                int              `json:"answered"`
	Skipped                 int              `json:"skipped"`
	Correct                 int              `json:"correct"`
	Incorrect               int              `json:"incorrect"`
	Score                   int              `json:"score"`
	AnsweredPercent         int              `json:"answeredPercent"`
	TimeTakenSeconds        int              `json:"timeTakenSeconds"`
	ExpectedDurationMinutes int              `json:"expectedDurationMinutes"`
	FinishReason            FinishReason     `json:"finishReason"`
	Breakdown               []ExerciseResult `json:"breakdown"`
}

// ComputeResult 由题目集和作答记录推导结算结果。纯函数：相同输入必得相同输出，
// 时间只来自显式传入的 startTime/now。
//
// 作答以字符串形式记录，判分前两侧统一转成整数再比较，
// 避免字符串与数字混用造成的误判。
func ComputeResult(
	exercises []Exercise,
	answers map[uint]string,
	topic Topic,
	startTime time.Time,
	now time.Time,
	expectedMinutes int,
	reason FinishReason,
) *Result {
	total := len(exercises)
	answered, correct := 0, 0

	breakdown := make([]ExerciseResult, 0, total)
	for _, ex := range exercises {
		raw, ok := answers[ex.ID]

		item := ExerciseResult{
			ExerciseID:    ex.ID,
			QuestionText:  ex.Question,
			CorrectAnswer: ex.CorrectAnswer,
		}

		if ok {
			answered++
			item.Answered = true
			item.UserAnswer = raw
			if idx, err := strconv.Atoi(raw); err == nil && idx == ex.CorrectAnswer {
				item.IsCorrect = true
				correct++
			}
		}
		breakdown = append(breakdown, item)
	}

	score, answeredPercent := 0, 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
		answeredPercent = int(math.Round(float64(answered) / float64(total) * 100))
	}

	// 超时结束时上报的用时严格等于配置时长，不受调度抖动影响；
	// 用户主动结束时保留墙钟差值的向下取整
	timeTaken := int(now.Sub(startTime).Seconds())
	if reason == FinishByTime {
		timeTaken = expectedMinutes * 60
	}

	return &Result{
		TopicID:                 topic.ID,
		TopicName:               topic.Title,
		TotalExercises:          total,
		Answered:                answered,
		Skipped:                 total - answered,
		Correct:                 correct,
		Incorrect:               answered - correct,
		Score:                   score,
		AnsweredPercent:         answeredPercent,
		TimeTakenSeconds:        timeTaken,
		ExpectedDurationMinutes: expectedMinutes,
		FinishReason:            reason,
		Breakdown:               breakdown,
	}
}
