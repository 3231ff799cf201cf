package service

import (
	"time"

	"aprendo_backend/internal/model"
	"aprendo_backend/internal/repository"
)

type ProgressService struct {
	AttemptRepo *repository.AttemptRepository
	TopicRepo   *repository.TopicRepository
	BadgeRepo   *repository.BadgeRepository
}

func NewProgressService(attemptRepo *repository.AttemptRepository, topicRepo *repository.TopicRepository, badgeRepo *repository.BadgeRepository) *ProgressService {
	return &ProgressService{
		AttemptRepo: attemptRepo,
		TopicRepo:   topicRepo,
		BadgeRepo:   badgeRepo,
	}
}

// MonthlyProgress 某个自然月的练习汇总
type MonthlyProgress struct {
	Month           string `json:"month"` // YYYY-MM
	PracticeMinutes int    `json:"practiceMinutes"`
	Attempts        int    `json:"attempts"`
	AverageScore    int    `json:"averageScore"`
}

type BadgeView struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	AwardedAt   time.Time `json:"awardedAt"`
}

// ProgressOverview 学习进度总览
type ProgressOverview struct {
	TotalAttempts  int               `json:"totalAttempts"`
	ApprovedTopics int               `json:"approvedTopics"`
	TotalTopics    int               `json:"totalTopics"`
	ApprovedRatio  float64           `json:"approvedRatio"`
	Monthly        []MonthlyProgress `json:"monthly"`
	Badges         []BadgeView       `json:"badges"`
}

// Overview 汇总近一年的练习数据：每月练习时长与成绩、
// 已通过主题数（任一次正确率达 80% 即视为通过）、已获徽章。
func (s *ProgressService) Overview(userID uint) (*ProgressOverview, error) {
	since := time.Now().AddDate(-1, 0, 0)
	attempts, err := s.AttemptRepo.FindByUserSince(userID, since)
	if err != nil {
		return nil, err
	}

	totalTopics, err := s.TopicRepo.CountAll()
	if err != nil {
		return nil, err
	}

	awards, err := s.BadgeRepo.FindUserBadges(userID)
	if err != nil {
		return nil, err
	}

	overview := &ProgressOverview{
		TotalAttempts: len(attempts),
		TotalTopics:   int(totalTopics),
		Monthly:       aggregateMonthly(attempts),
	}

	approved := make(map[uint]bool)
	for i := range attempts {
		if attempts[i].Approved() {
			approved[attempts[i].TopicID] = true
		}
	}
	overview.ApprovedTopics = len(approved)
	if totalTopics > 0 {
		overview.ApprovedRatio = float64(overview.ApprovedTopics) / float64(totalTopics)
	}

	for _, award := range awards {
		overview.Badges = append(overview.Badges, BadgeView{
			Code:        award.Badge.Code,
			Name:        award.Badge.Name,
			Description: award.Badge.Description,
			Icon:        award.Badge.Icon,
			AwardedAt:   award.AwardedAt,
		})
	}
	return overview, nil
}

// Badges 用户已获得的徽章
func (s *ProgressService) Badges(userID uint) ([]BadgeView, error) {
	awards, err := s.BadgeRepo.FindUserBadges(userID)
	if err != nil {
		return nil, err
	}
	views := make([]BadgeView, 0, len(awards))
	for _, award := range awards {
		views = append(views, BadgeView{
			Code:        award.Badge.Code,
			Name:        award.Badge.Name,
			Description: award.Badge.Description,
			Icon:        award.Badge.Icon,
			AwardedAt:   award.AwardedAt,
		})
	}
	return views, nil
}

// aggregateMonthly 按结束时间所在自然月分组，输入须按时间升序
func aggregateMonthly(attempts []model.PracticeAttempt) []MonthlyProgress {
	type bucket struct {
		minutes  int
		attempts int
		scoreSum int
	}

	buckets := make(map[string]*bucket)
	var order []string
	for i := range attempts {
		a := &attempts[i]
		month := a.EndTime.Format("2006-01")
		b, ok := buckets[month]
		if !ok {
			b = &bucket{}
			buckets[month] = b
			order = append(order, month)
		}
		b.minutes += int(a.EndTime.Sub(a.StartTime).Minutes())
		b.attempts++
		b.scoreSum += a.Score()
	}

	monthly := make([]MonthlyProgress, 0, len(order))
	for _, month := range order {
		b := buckets[month]
		avg := 0
		if b.attempts > 0 {
			avg = b.scoreSum / b.attempts
		}
		monthly = append(monthly, MonthlyProgress{
			Month:           month,
			PracticeMinutes: b.minutes,
			Attempts:        b.attempts,
			AverageScore:    avg,
		})
	}
	return monthly
}
