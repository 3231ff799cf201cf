package practice

import "errors"

var (
	ErrNoExercises     = errors.New("该主题没有可用的练习题")
	ErrExerciseMissing = errors.New("练习题不存在")
	ErrEndOfSequence   = errors.New("已经是最后一题")
	ErrInvalidOption   = errors.New("所选选项超出范围")
	ErrSessionFinished = errors.New("练习会话已结束")
	ErrNoActiveSession = errors.New("当前没有进行中的练习会话")
)
