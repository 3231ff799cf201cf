package practice

import (
	"errors"
	"testing"
)

func sampleExercises(n int) []Exercise {
	out := make([]Exercise, n)
	for i := range out {
		out[i] = Exercise{
			ID:            uint(i + 1),
			Question:      "q",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: 0,
		}
	}
	return out
}

func TestNavigatorFirst(t *testing.T) {
	nav := NewNavigator(sampleExercises(3))
	first, err := nav.First()
	if err != nil {
		t.Fatalf("First() error = %v", err)
	}
	if first != 1 {
		t.Errorf("First() = %d, want 1", first)
	}
}

func TestNavigatorFirstEmpty(t *testing.T) {
	nav := NewNavigator(nil)
	if _, err := nav.First(); !errors.Is(err, ErrNoExercises) {
		t.Errorf("First() error = %v, want ErrNoExercises", err)
	}
}

func TestNavigatorBoundaries(t *testing.T) {
	nav := NewNavigator(sampleExercises(3))

	tests := []struct {
		name    string
		current uint
		move    string
		want    uint
		wantErr error
	}{
		{name: "previous from first stays put", current: 1, move: "prev", want: 1},
		{name: "previous from middle", current: 2, move: "prev", want: 1},
		{name: "next from middle", current: 2, move: "next", want: 3},
		{name: "next from last signals end", current: 3, move: "next", want: 3, wantErr: ErrEndOfSequence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got uint
			var err error
			switch tt.move {
			case "prev":
				got = nav.Previous(tt.current)
			case "next":
				got, err = nav.Next(tt.current)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got id %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNavigatorPosition(t *testing.T) {
	nav := NewNavigator(sampleExercises(3))

	if pos := nav.Position(2); pos != 2 {
		t.Errorf("Position(2) = %d, want 2", pos)
	}
	if !nav.IsFirst(1) || nav.IsFirst(2) {
		t.Error("IsFirst misclassified")
	}
	if !nav.IsLast(3) || nav.IsLast(2) {
		t.Error("IsLast misclassified")
	}
	if nav.Contains(99) {
		t.Error("Contains(99) = true, want false")
	}
}

func TestDedupExercises(t *testing.T) {
	in := []Exercise{{ID: 1}, {ID: 2}, {ID: 1}, {ID: 3}, {ID: 2}}
	out := dedupExercises(in)
	if len(out) != 3 {
		t.Fatalf("dedup kept %d exercises, want 3", len(out))
	}
	for i, want := range []uint{1, 2, 3} {
		if out[i].ID != want {
			t.Errorf("out[%d].ID = %d, want %d", i, out[i].ID, want)
		}
	}
}
