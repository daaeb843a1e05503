package service

import (
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service 基础服务，包含数据库、Redis 和公共依赖
type Service struct {
	DB     *gorm.DB
	RDB    *redis.Client
	Logger *zap.Logger

	// Notifier 用于向 /ws 订阅者广播事件的回调函数
	// 避免循环依赖，通过函数注入的方式
	Notifier func(eventType string, payload any)

	// Location 生成公告日期使用的时区，nil 时使用 time.Local
	Location *time.Location

	// Now 时钟，测试时可替换
	Now func() time.Time
}

func (s *Service) log() *zap.Logger {
	if s == nil || s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Service) now() time.Time {
	var t time.Time
	if s.Now != nil {
		t = s.Now()
	} else {
		t = time.Now()
	}
	if s.Location != nil {
		t = t.In(s.Location)
	}
	return t
}

func (s *Service) notify(eventType string, payload any) {
	if s.Notifier != nil {
		s.Notifier(eventType, payload)
	}
}
