package model

// swagger:model Theory
type Theory struct {
	BaseModel
	TopicID   uint   `gorm:"index;not null" json:"topicId"`
	Title     string `gorm:"size:200;not null" json:"title"`
	Content   string `gorm:"type:longtext" json:"content"` // Markdown 正文
	MediaURL  string `gorm:"size:500" json:"mediaUrl"`     // 配图/视频，存对象存储路径
	SortOrder int    `gorm:"default:0" json:"sortOrder"`
}

func (Theory) TableName() string {
	return "theories"
}
