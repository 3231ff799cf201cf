package model

import "encoding/json"

// swagger:model Exercise
type Exercise struct {
	BaseModel
	TopicID       uint            `gorm:"index;not null" json:"topicId"`
	Question      string          `gorm:"type:text;not null" json:"question"`
	Options       json.RawMessage `gorm:"type:json" json:"options"` // JSON: []string
	CorrectAnswer int             `gorm:"not null" json:"-"`        // 选项下标，客户端不可见
	Explanation   string          `gorm:"type:text" json:"-"`
	SortOrder     int             `gorm:"default:0" json:"sortOrder"`
}

func (Exercise) TableName() string {
	return "exercises"
}

// DecodeOptions 反序列化选项列表
func (e *Exercise) DecodeOptions() ([]string, error) {
	var opts []string
	if len(e.Options) == 0 {
		return opts, nil
	}
	if err := json.Unmarshal(e.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}
