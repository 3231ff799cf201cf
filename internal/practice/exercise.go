package practice

// Exercise 练习会话持有的题目快照，加载后不可变
type Exercise struct {
	ID            uint     `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"-"`
	Explanation   string   `json:"-"`
}

// Topic 会话创建时绑定的主题信息
type Topic struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	CourseID uint   `json:"courseId"`
}

// dedupExercises 按出现顺序去重，重复 ID 只保留第一个
func dedupExercises(exercises []Exercise) []Exercise {
	seen := make(map[uint]bool, len(exercises))
	out := make([]Exercise, 0, len(exercises))
	for _, ex := range exercises {
		if seen[ex.ID] {
			continue
		}
		seen[ex.ID] = true
		out = append(out, ex)
	}
	return out
}
