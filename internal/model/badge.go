package model

import "time"

// swagger:model Badge
type Badge struct {
	BaseModel
	Code        string `gorm:"size:50;unique;not null" json:"code"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Icon        string `gorm:"size:255" json:"icon"`
	Threshold   int    `gorm:"default:0" json:"threshold"` // 达成条件的数值门槛
}

func (Badge) TableName() string {
	return "badges"
}

// swagger:model UserBadge
type UserBadge struct {
	BaseModel
	UserID    uint      `gorm:"index:idx_user_badge,unique;not null" json:"userId"`
	BadgeID   uint      `gorm:"index:idx_user_badge,unique;not null" json:"badgeId"`
	AwardedAt time.Time `gorm:"not null" json:"awardedAt"`
	Badge     Badge     `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
