package model

import "time"

// PracticeAttempt 一次练习的最终成绩记录
// swagger:model PracticeAttempt
type PracticeAttempt struct {
	BaseModel
	UserID                  uint      `gorm:"index;not null" json:"userId"`
	TopicID                 uint      `gorm:"index;not null" json:"topicId"`
	CourseID                uint      `gorm:"index" json:"courseId"`
	StartTime               time.Time `gorm:"not null" json:"startTime"`
	EndTime                 time.Time `gorm:"not null" json:"endTime"`
	ExpectedDurationMinutes int       `gorm:"not null" json:"expectedDurationMinutes"`
	CompletionType          string    `gorm:"size:20;not null" json:"completionType"` // user / time expired
	TotalQuestions          int       `gorm:"not null" json:"totalQuestions"`
	CorrectAnswers          int       `gorm:"not null" json:"correctAnswers"`
}

func (PracticeAttempt) TableName() string {
	return "practice_attempts"
}

// Score 按正确数换算百分制得分
func (a *PracticeAttempt) Score() int {
	if a.TotalQuestions <= 0 {
		return 0
	}
	return int(float64(a.CorrectAnswers)/float64(a.TotalQuestions)*100 + 0.5)
}

// Approved 正确率达到 80% 视为通过该主题
func (a *PracticeAttempt) Approved() bool {
	return a.TotalQuestions > 0 && float64(a.CorrectAnswers)/float64(a.TotalQuestions) >= 0.8
}
