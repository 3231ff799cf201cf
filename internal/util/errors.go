package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUserAlreadyExists  = errors.New("用户已存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrInvalidToken       = errors.New("无效的令牌")
	ErrTokenExpired       = errors.New("令牌已过期")
	ErrCourseNotFound     = errors.New("课程不存在")
	ErrTopicNotFound      = errors.New("主题不存在")
	ErrTheoryNotFound     = errors.New("理论内容不存在")
	ErrPermissionDenied   = errors.New("没有权限执行此操作")
	ErrInvalidDuration    = errors.New("练习时长不合法")
)
