package practice

// Navigator 在已加载的题目序列上做顺序遍历，不修改任何作答状态
type Navigator struct {
	exercises []Exercise
}

func NewNavigator(exercises []Exercise) *Navigator {
	return &Navigator{exercises: exercises}
}

// First 返回第一题的 ID，题目列表为空时返回 ErrNoExercises
func (n *Navigator) First() (uint, error) {
	if len(n.exercises) == 0 {
		return 0, ErrNoExercises
	}
	return n.exercises[0].ID, nil
}

// Previous 返回序列中前一题的 ID，已在第一题时原样返回
func (n *Navigator) Previous(currentID uint) uint {
	idx := n.indexOf(currentID)
	if idx <= 0 {
		return currentID
	}
	return n.exercises[idx-1].ID
}

// Next 返回序列中后一题的 ID，已在最后一题时返回 ErrEndOfSequence
func (n *Navigator) Next(currentID uint) (uint, error) {
	idx := n.indexOf(currentID)
	if idx < 0 || idx >= len(n.exercises)-1 {
		return currentID, ErrEndOfSequence
	}
	return n.exercises[idx+1].ID, nil
}

// Position 返回 1 起始的题号，未找到时返回 0
func (n *Navigator) Position(id uint) int {
	return n.indexOf(id) + 1
}

func (n *Navigator) IsFirst(id uint) bool {
	return n.indexOf(id) == 0
}

func (n *Navigator) IsLast(id uint) bool {
	return n.indexOf(id) == len(n.exercises)-1
}

func (n *Navigator) Contains(id uint) bool {
	return n.indexOf(id) >= 0
}

func (n *Navigator) indexOf(id uint) int {
	for i, ex := range n.exercises {
		if ex.ID == id {
			return i
		}
	}
	return -1
}
