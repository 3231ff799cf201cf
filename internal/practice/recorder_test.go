package practice

import (
	"errors"
	"testing"
)

func TestRecorderOverwrite(t *testing.T) {
	rec := NewRecorder(sampleExercises(2))

	if err := rec.Record(1, 0); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := rec.Record(1, 2); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if rec.AnsweredCount() != 1 {
		t.Errorf("AnsweredCount() = %d, want 1", rec.AnsweredCount())
	}
	if idx, ok := rec.Answer(1); !ok || idx != 2 {
		t.Errorf("Answer(1) = %d,%v, want 2,true", idx, ok)
	}

	// 重复记录同一答案等价于记录一次
	if err := rec.Record(1, 2); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if rec.AnsweredCount() != 1 {
		t.Errorf("AnsweredCount() after repeat = %d, want 1", rec.AnsweredCount())
	}
}

func TestRecorderInvalidOption(t *testing.T) {
	rec := NewRecorder(sampleExercises(1))

	if err := rec.Record(1, 1); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	tests := []struct {
		name    string
		id      uint
		index   int
		wantErr error
	}{
		{name: "index past options", id: 1, index: 7, wantErr: ErrInvalidOption},
		{name: "negative index", id: 1, index: -1, wantErr: ErrInvalidOption},
		{name: "unknown exercise", id: 42, index: 0, wantErr: ErrExerciseMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := rec.Record(tt.id, tt.index); !errors.Is(err, tt.wantErr) {
				t.Errorf("Record() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// 越界输入不改变已有记录
	if idx, ok := rec.Answer(1); !ok || idx != 1 {
		t.Errorf("Answer(1) after rejected input = %d,%v, want 1,true", idx, ok)
	}
}

func TestRecorderProgressPercent(t *testing.T) {
	tests := []struct {
		name     string
		answered int
		total    int
		want     int
	}{
		{name: "no exercises", answered: 0, total: 0, want: 0},
		{name: "none answered", answered: 0, total: 5, want: 0},
		{name: "partial rounds", answered: 1, total: 3, want: 33},
		{name: "partial rounds up", answered: 2, total: 3, want: 67},
		{name: "all answered", answered: 5, total: 5, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecorder(sampleExercises(tt.total))
			for i := 0; i < tt.answered; i++ {
				if err := rec.Record(uint(i+1), 0); err != nil {
					t.Fatalf("Record() error = %v", err)
				}
			}
			got := rec.ProgressPercent(tt.total)
			if got != tt.want {
				t.Errorf("ProgressPercent() = %d, want %d", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("ProgressPercent() = %d, out of [0,100]", got)
			}
			if (got == 100) != (tt.total > 0 && tt.answered == tt.total) {
				t.Errorf("ProgressPercent() == 100 must mean every exercise answered")
			}
		})
	}
}
