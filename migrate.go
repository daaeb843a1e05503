package stay_site

import (
	"go.uber.org/zap"
)

// EnsureSchema 启动时建表（CREATE TABLE IF NOT EXISTS）。
// 失败不致命：各 store 在下次操作前会重试。
func (e *SiteEngine) EnsureSchema() error {
	e.log.Info("ensure schema...")
	if err := e.NoticeService.EnsureSchema(); err != nil {
		e.log.Error("ensure notice schema failed", zap.Error(err))
		return err
	}
	if err := e.PreRegistrationService.EnsureSchema(); err != nil {
		e.log.Error("ensure pre-registration schema failed", zap.Error(err))
		return err
	}
	return nil
}
