package model

// swagger:model Course
type Course struct {
	BaseModel
	Title       string  `gorm:"size:200;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Language    string  `gorm:"size:10;default:'es'" json:"language"`
	CoverImage  string  `gorm:"size:255" json:"coverImage"`
	SortOrder   int     `gorm:"default:0" json:"sortOrder"`
	Published   bool    `gorm:"default:true" json:"published"`
	Topics      []Topic `gorm:"foreignKey:CourseID" json:"topics,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
