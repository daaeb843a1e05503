package service

import (
	"strings"

	"github.com/zuu3/stay-site/cons"
	"github.com/zuu3/stay-site/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PreRegistrationStatus struct {
	Count        int64 `json:"count"`
	IsRegistered bool  `json:"isRegistered"`
}

type RegisterResult struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
}

// PreRegistrationService 预约登记：按外部身份幂等登记 + 实时计数。
// 幂等由 external_user_id 主键保证，不做“先查后插”。
type PreRegistrationService struct {
	*Service
	schema schemaGuard
}

func NewPreRegistrationService(s *Service) *PreRegistrationService {
	return &PreRegistrationService{Service: s}
}

func (s *PreRegistrationService) EnsureSchema() error {
	return s.schema.ensure(func() error {
		if err := s.DB.Exec(createPreRegistrationTableSQL).Error; err != nil {
			s.log().Error("ensure pre-registration schema failed", zap.Error(err))
			return persistErr("ensure pre-registration schema", err)
		}
		return nil
	})
}

// GetStatus 总人数 + 当前身份是否已登记。externalUserID 为空时 IsRegistered 恒为 false。
func (s *PreRegistrationService) GetStatus(externalUserID string) (*PreRegistrationStatus, error) {
	if err := s.EnsureSchema(); err != nil {
		return &PreRegistrationStatus{}, err
	}

	var total int64
	if err := s.DB.Model(&models.PreRegistration{}).Count(&total).Error; err != nil {
		s.log().Error("count pre-registrations failed", zap.Error(err))
		return &PreRegistrationStatus{}, persistErr("count pre-registrations", err)
	}

	out := &PreRegistrationStatus{Count: total}
	externalUserID = strings.TrimSpace(externalUserID)
	if externalUserID == "" {
		return out, nil
	}

	var mine int64
	if err := s.DB.Model(&models.PreRegistration{}).
		Where("external_user_id = ?", externalUserID).
		Count(&mine).Error; err != nil {
		s.log().Error("lookup pre-registration failed", zap.String("external_user_id", externalUserID), zap.Error(err))
		return &PreRegistrationStatus{Count: total}, persistErr("lookup pre-registration", err)
	}
	out.IsRegistered = mine > 0
	return out, nil
}

// Register 登记当前身份。插入与计数在同一事务内完成；
// 主键冲突即视为重复登记，返回 ErrAlreadyRegistered。
func (s *PreRegistrationService) Register(externalUserID string) (*RegisterResult, error) {
	externalUserID = strings.TrimSpace(externalUserID)
	if externalUserID == "" {
		return nil, ErrUnauthorized
	}
	if err := s.EnsureSchema(); err != nil {
		return nil, err
	}

	var total int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		row := &models.PreRegistration{ExternalUserID: externalUserID, CreatedAt: s.now()}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return tx.Model(&models.PreRegistration{}).Count(&total).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			s.log().Info("duplicate pre-registration", zap.String("external_user_id", externalUserID))
			return nil, ErrAlreadyRegistered
		}
		s.log().Error("pre-register failed", zap.String("external_user_id", externalUserID), zap.Error(err))
		return nil, persistErr("register", err)
	}

	s.log().Info("pre-registered", zap.String("external_user_id", externalUserID), zap.Int64("count", total))
	s.notify(cons.EventPreRegistrationCount, map[string]any{"count": total})
	return &RegisterResult{Success: true, Count: total}, nil
}
