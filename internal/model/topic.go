package model

// swagger:model Topic
type Topic struct {
	BaseModel
	CourseID        uint       `gorm:"index;not null" json:"courseId"`
	Title           string     `gorm:"size:200;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	SortOrder       int        `gorm:"default:0" json:"sortOrder"`
	DurationMinutes int        `gorm:"default:10" json:"durationMinutes"` // 该主题练习的推荐时长
	Theories        []Theory   `gorm:"foreignKey:TopicID" json:"theories,omitempty"`
	Exercises       []Exercise `gorm:"foreignKey:TopicID" json:"exercises,omitempty"`
}

func (Topic) TableName() string {
	return "topics"
}
