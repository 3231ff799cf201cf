package practice

import (
	"math"
	"strconv"
)

// Recorder 记录用户在每道题上的选择。练习模式下允许反复改答，
// 且在会话结束前不暴露对错。答案按题目 ID 以字符串形式保存，
// 与持久化的作答记录保持同一种表示。
type Recorder struct {
	options map[uint]int // 题目 ID -> 选项数量，用于越界校验
	answers map[uint]string
}

func NewRecorder(exercises []Exercise) *Recorder {
	options := make(map[uint]int, len(exercises))
	for _, ex := range exercises {
		options[ex.ID] = len(ex.Options)
	}
	return &Recorder{
		options: options,
		answers: make(map[uint]string),
	}
}

// Record 保存或覆盖某道题的选择，越界输入返回 ErrInvalidOption 且不产生任何变更
func (r *Recorder) Record(exerciseID uint, optionIndex int) error {
	count, ok := r.options[exerciseID]
	if !ok {
		return ErrExerciseMissing
	}
	if optionIndex < 0 || optionIndex >= count {
		return ErrInvalidOption
	}
	r.answers[exerciseID] = strconv.Itoa(optionIndex)
	return nil
}

func (r *Recorder) IsAnswered(exerciseID uint) bool {
	_, ok := r.answers[exerciseID]
	return ok
}

// Answer 返回某道题已记录的选项下标
func (r *Recorder) Answer(exerciseID uint) (int, bool) {
	raw, ok := r.answers[exerciseID]
	if !ok {
		return 0, false
	}
	idx, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return idx, true
}

func (r *Recorder) AnsweredCount() int {
	return len(r.answers)
}

// ProgressPercent 已作答百分比，四舍五入到整数，没有题目时为 0
func (r *Recorder) ProgressPercent(total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(len(r.answers)) / float64(total) * 100))
}

// Snapshot 返回当前作答的副本，供结算使用
func (r *Recorder) Snapshot() map[uint]string {
	out := make(map[uint]string, len(r.answers))
	for id, ans := range r.answers {
		out[id] = ans
	}
	return out
}
