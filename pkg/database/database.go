package database

import (
	"encoding/json"
	"fmt"
	"log"

	"aprendo_backend/internal/config"
	"aprendo_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbc := &cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbc.User,
		dbc.Password,
		dbc.Host,
		dbc.Port,
		dbc.DBName,
		dbc.Charset,
		dbc.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认跳过迁移，--migrate 强制执行
	if cfg.Server.Mode == "release" && !cfg.ForceMigrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Topic{},
		&model.Theory{},
		&model.Exercise{},
		&model.PracticeAttempt{},
		&model.Badge{},
		&model.UserBadge{},
	)
	if err != nil {
		return nil, err
	}

	if err := seedBadges(db); err != nil {
		return nil, err
	}
	if err := seedDemoContent(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedBadges 初始化默认徽章，已存在则跳过
func seedBadges(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Badge{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	badges := []model.Badge{
		{Code: "first_practice", Name: "初试锋芒", Description: "完成第一次练习", Icon: "badges/first_practice.png", Threshold: 1},
		{Code: "ten_practices", Name: "勤学不辍", Description: "累计完成 10 次练习", Icon: "badges/ten_practices.png", Threshold: 10},
		{Code: "topic_master", Name: "主题达人", Description: "单次练习正确率达到 80%", Icon: "badges/topic_master.png", Threshold: 80},
		{Code: "perfect_score", Name: "满分选手", Description: "单次练习获得满分", Icon: "badges/perfect_score.png", Threshold: 100},
	}
	return db.Create(&badges).Error
}

// seedDemoContent 空库时写入一套演示课程，方便本地联调
func seedDemoContent(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	course := model.Course{
		Title:       "C 语言入门",
		Description: "从零开始的 C 语言基础课程",
		Language:    "es",
		SortOrder:   1,
		Published:   true,
	}
	if err := db.Create(&course).Error; err != nil {
		return err
	}

	topic := model.Topic{
		CourseID:        course.ID,
		Title:           "指针基础",
		Description:     "指针的声明、解引用与算术",
		SortOrder:       1,
		DurationMinutes: 10,
	}
	if err := db.Create(&topic).Error; err != nil {
		return err
	}

	theory := model.Theory{
		TopicID:   topic.ID,
		Title:     "什么是指针",
		Content:   "指针是保存内存地址的变量……",
		SortOrder: 1,
	}
	if err := db.Create(&theory).Error; err != nil {
		return err
	}

	exercises := []model.Exercise{
		{
			TopicID:       topic.ID,
			Question:      "声明一个指向 int 的指针，正确的写法是？",
			Options:       json.RawMessage(`["int *p;","int p*;","ptr int p;","*int p;"]`),
			CorrectAnswer: 0,
			Explanation:   "星号跟在类型之后、变量名之前。",
			SortOrder:     1,
		},
		{
			TopicID:       topic.ID,
			Question:      "对指针 p 解引用使用哪个运算符？",
			Options:       json.RawMessage(`["&","*","->","."]`),
			CorrectAnswer: 1,
			Explanation:   "* 取指针指向的值，& 取变量地址。",
			SortOrder:     2,
		},
		{
			TopicID:       topic.ID,
			Question:      "int a; int *p = &a; 此时 *p 等价于？",
			Options:       json.RawMessage(`["p 的地址","a 的值","a 的地址","未定义"]`),
			CorrectAnswer: 1,
			Explanation:   "p 保存 a 的地址，*p 即 a 本身。",
			SortOrder:     3,
		},
	}
	return db.Create(&exercises).Error
}
