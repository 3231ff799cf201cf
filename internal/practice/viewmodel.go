package practice

// lowTimeThreshold 剩余秒数低于该值时给出"时间不多"的展示提示
const lowTimeThreshold = 60

type OptionView struct {
	Index      int    `json:"index"`
	Text       string `json:"text"`
	IsSelected bool   `json:"isSelected"`
}

// ExerciseView 当前题目的展示模型，引擎只产出数据不产出标记
type ExerciseView struct {
	ExerciseID   uint         `json:"exerciseId"`
	QuestionText string       `json:"questionText"`
	Options      []OptionView `json:"options"`
	Position     int          `json:"position"`
	Total        int          `json:"total"`
	IsFirst      bool         `json:"isFirst"`
	IsLast       bool         `json:"isLast"`
}

type ProgressView struct {
	AnsweredCount int `json:"answeredCount"`
	TotalCount    int `json:"totalCount"`
	Percent       int `json:"percent"`
}

type TimerView struct {
	RemainingSeconds int  `json:"remainingSeconds"`
	LowTime          bool `json:"lowTime"`
}

// SidebarItem 侧边栏题目列表项，练习模式只标记"已作答"不标记对错
type SidebarItem struct {
	ExerciseID uint `json:"exerciseId"`
	Position   int  `json:"position"`
	Answered   bool `json:"answered"`
	Current    bool `json:"current"`
}

// CurrentExercise 当前题目视图
func (s *Session) CurrentExercise() ExerciseView {
	s.mu.Lock()
	defer s.mu.Unlock()

	var view ExerciseView
	for _, ex := range s.exercises {
		if ex.ID != s.currentID {
			continue
		}
		selected, answered := s.rec.Answer(ex.ID)
		options := make([]OptionView, len(ex.Options))
		for i, text := range ex.Options {
			options[i] = OptionView{
				Index:      i,
				Text:       text,
				IsSelected: answered && i == selected,
			}
		}
		view = ExerciseView{
			ExerciseID:   ex.ID,
			QuestionText: ex.Question,
			Options:      options,
			Position:     s.nav.Position(ex.ID),
			Total:        len(s.exercises),
			IsFirst:      s.nav.IsFirst(ex.ID),
			IsLast:       s.nav.IsLast(ex.ID),
		}
		break
	}
	return view
}

func (s *Session) Progress() ProgressView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ProgressView{
		AnsweredCount: s.rec.AnsweredCount(),
		TotalCount:    len(s.exercises),
		Percent:       s.rec.ProgressPercent(len(s.exercises)),
	}
}

func (s *Session) Timer() TimerView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TimerView{
		RemainingSeconds: s.remaining,
		LowTime:          s.remaining <= lowTimeThreshold,
	}
}

func (s *Session) Sidebar() []SidebarItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]SidebarItem, len(s.exercises))
	for i, ex := range s.exercises {
		items[i] = SidebarItem{
			ExerciseID: ex.ID,
			Position:   i + 1,
			Answered:   s.rec.IsAnswered(ex.ID),
			Current:    ex.ID == s.currentID,
		}
	}
	return items
}
