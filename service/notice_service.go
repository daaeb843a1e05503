package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/zuu3/stay-site/cons"
	"github.com/zuu3/stay-site/models"
	"go.uber.org/zap"
)

// NoticeDateLayout 公告日期格式 YYYY.MM.DD
const NoticeDateLayout = "2006.01.02"

type NoticeDTO struct {
	ID       string          `json:"id"`
	Tag      string          `json:"tag"`
	TagLabel string          `json:"tagLabel"`
	Date     string          `json:"date"`
	Title    string          `json:"title"`
	Summary  string          `json:"summary"`
	Content  models.Document `json:"content"`
}

func toNoticeDTO(n *models.Notice) (*NoticeDTO, error) {
	if n == nil {
		return nil, nil
	}
	doc, err := models.DecodeDocument(n.Content)
	if err != nil {
		return nil, err
	}
	return &NoticeDTO{
		ID:       n.ID,
		Tag:      n.Tag,
		TagLabel: cons.TagLabels[n.Tag],
		Date:     n.Date,
		Title:    n.Title,
		Summary:  n.Summary,
		Content:  doc,
	}, nil
}

// CreateNoticeReq 新建公告的字段，id/date 由服务端生成
type CreateNoticeReq struct {
	Tag     string          `json:"tag"`
	Title   string          `json:"title"`
	Summary string          `json:"summary"`
	Content models.Document `json:"content"`
}

// UpdateNoticeReq 稀疏更新：nil 字段保持不变
type UpdateNoticeReq struct {
	Tag     *string          `json:"tag"`
	Title   *string          `json:"title"`
	Summary *string          `json:"summary"`
	Content *models.Document `json:"content"`
}

// IsEmpty 是否没有携带任何字段
func (r UpdateNoticeReq) IsEmpty() bool {
	return r.Tag == nil && r.Title == nil && r.Summary == nil && r.Content == nil
}

type NoticeService struct {
	*Service
	schema schemaGuard
}

func NewNoticeService(s *Service) *NoticeService { return &NoticeService{Service: s} }

// EnsureSchema 幂等建表（CREATE TABLE IF NOT EXISTS），可在每次操作前调用。
func (s *NoticeService) EnsureSchema() error {
	return s.schema.ensure(func() error {
		if err := s.DB.Exec(createNoticeTableSQL).Error; err != nil {
			s.log().Error("ensure notice schema failed", zap.Error(err))
			return persistErr("ensure notice schema", err)
		}
		return nil
	})
}

// ListNotices 全部公告，最新在前。没有数据时返回空切片。
func (s *NoticeService) ListNotices() ([]NoticeDTO, error) {
	if err := s.EnsureSchema(); err != nil {
		return []NoticeDTO{}, err
	}

	var rows []models.Notice
	if err := s.DB.Model(&models.Notice{}).
		Order("created_at desc").
		Order("id desc").
		Find(&rows).Error; err != nil {
		s.log().Error("list notices failed", zap.Error(err))
		return []NoticeDTO{}, persistErr("list notices", err)
	}

	out := make([]NoticeDTO, 0, len(rows))
	for i := range rows {
		dto, err := toNoticeDTO(&rows[i])
		if err != nil {
			s.log().Warn("skip notice with unreadable content", zap.String("id", rows[i].ID), zap.Error(err))
			continue
		}
		out = append(out, *dto)
	}
	return out, nil
}

// GetNotice 按 id 查询；不存在返回 (nil, nil)。
func (s *NoticeService) GetNotice(id string) (*NoticeDTO, error) {
	if err := s.EnsureSchema(); err != nil {
		return nil, err
	}
	row, err := s.findNotice(id)
	if err != nil || row == nil {
		return nil, err
	}
	dto, err := toNoticeDTO(row)
	if err != nil {
		return nil, persistErr("decode notice content", err)
	}
	return dto, nil
}

func (s *NoticeService) findNotice(id string) (*models.Notice, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	var rows []models.Notice
	if err := s.DB.Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		s.log().Error("get notice failed", zap.String("id", id), zap.Error(err))
		return nil, persistErr("get notice", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// CreateNotice 发布一条公告。id 为 UUIDv7，date 取当前日期。
func (s *NoticeService) CreateNotice(req CreateNoticeReq) (*NoticeDTO, error) {
	if err := validateTag(req.Tag); err != nil {
		return nil, err
	}
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	content, err := models.EncodeDocument(req.Content)
	if err != nil {
		return nil, &ValidationError{Field: "content", Msg: err.Error()}
	}
	if err := s.EnsureSchema(); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, persistErr("generate notice id", err)
	}
	now := s.now()
	n := &models.Notice{
		ID:        id.String(),
		Tag:       req.Tag,
		Date:      now.Format(NoticeDateLayout),
		Title:     strings.TrimSpace(req.Title),
		Summary:   req.Summary,
		Content:   content,
		CreatedAt: now,
	}
	if err := s.DB.Create(n).Error; err != nil {
		s.log().Error("create notice failed", zap.Error(err))
		return nil, persistErr("create notice", err)
	}

	s.log().Info("notice created", zap.String("id", n.ID), zap.String("tag", n.Tag))
	s.notify(cons.EventNoticeCreated, map[string]any{"id": n.ID})

	dto, err := toNoticeDTO(n)
	if err != nil {
		return nil, persistErr("decode notice content", err)
	}
	return dto, nil
}

// UpdateNotice 稀疏更新。先确认 id 存在：不存在返回 (nil, nil)，与 patch 内容无关；
// 存在时再校验字段。空 patch 直接返回原值，不写库。
func (s *NoticeService) UpdateNotice(id string, req UpdateNoticeReq) (*NoticeDTO, error) {
	if err := s.EnsureSchema(); err != nil {
		return nil, err
	}
	existing, err := s.findNotice(id)
	if err != nil || existing == nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Tag != nil {
		if err := validateTag(*req.Tag); err != nil {
			return nil, err
		}
		fields["tag"] = *req.Tag
	}
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Summary != nil {
		fields["summary"] = *req.Summary
	}
	if req.Content != nil {
		content, err := models.EncodeDocument(*req.Content)
		if err != nil {
			return nil, &ValidationError{Field: "content", Msg: err.Error()}
		}
		fields["content"] = string(content)
	}

	if len(fields) == 0 {
		dto, err := toNoticeDTO(existing)
		if err != nil {
			return nil, persistErr("decode notice content", err)
		}
		return dto, nil
	}

	if err := s.DB.Model(&models.Notice{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		s.log().Error("update notice failed", zap.String("id", id), zap.Error(err))
		return nil, persistErr("update notice", err)
	}

	updated, err := s.findNotice(id)
	if err != nil || updated == nil {
		return nil, err
	}
	s.notify(cons.EventNoticeUpdated, map[string]any{"id": id})

	dto, err := toNoticeDTO(updated)
	if err != nil {
		return nil, persistErr("decode notice content", err)
	}
	return dto, nil
}

// DeleteNotice 删除公告，返回是否确实删除了一行。
func (s *NoticeService) DeleteNotice(id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, nil
	}
	if err := s.EnsureSchema(); err != nil {
		return false, err
	}
	res := s.DB.Where("id = ?", id).Delete(&models.Notice{})
	if res.Error != nil {
		s.log().Error("delete notice failed", zap.String("id", id), zap.Error(res.Error))
		return false, persistErr("delete notice", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	s.log().Info("notice deleted", zap.String("id", id))
	s.notify(cons.EventNoticeDeleted, map[string]any{"id": id})
	return true, nil
}

func validateTag(tag string) error {
	if !cons.IsValidTag(tag) {
		return &ValidationError{Field: "tag", Msg: "must be one of Notice, Patch, Event"}
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Msg: "is required"}
	}
	return nil
}
