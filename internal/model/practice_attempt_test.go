package model

import "testing"

func TestAttemptScore(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		correct int
		want    int
	}{
		{"满分", 5, 5, 100},
		{"五分之三四舍五入", 5, 3, 60},
		{"三分之一四舍五入", 3, 1, 33},
		{"三分之二四舍五入", 3, 2, 67},
		{"零题不除零", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := PracticeAttempt{TotalQuestions: tt.total, CorrectAnswers: tt.correct}
			if got := a.Score(); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAttemptApproved(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		correct int
		want    bool
	}{
		{"正好八成通过", 5, 4, true},
		{"低于八成不通过", 5, 3, false},
		{"满分通过", 4, 4, true},
		{"零题不通过", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := PracticeAttempt{TotalQuestions: tt.total, CorrectAnswers: tt.correct}
			if got := a.Approved(); got != tt.want {
				t.Errorf("Approved() = %v, want %v", got, tt.want)
			}
		})
	}
}
