package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	prefix = "stay_"
)

// Notice 公告/补丁/活动帖子。
// - ID 创建时生成（UUIDv7，按时间有序），之后不再变化
// - Date 创建时按服务器时区写入 YYYY.MM.DD，不允许编辑
// - Content 为富文本 block 树的 JSON 文本，存储层不解析其结构
type Notice struct {
	ID      string         `gorm:"primaryKey;size:64"`
	Tag     string         `gorm:"size:16;not null"`
	Date    string         `gorm:"size:20;not null"`
	Title   string         `gorm:"size:255;not null"`
	Summary string         `gorm:"type:text"`
	Content datatypes.JSON `gorm:"type:longtext;not null"`

	CreatedAt time.Time `gorm:"index"`
}

func (Notice) TableName() string { return prefix + "notice" }

// PreRegistration 预约登记，行存在即表示已登记。
// external_user_id 为身份提供方（Discord）的 subject id，主键保证同一身份只会有一行。
type PreRegistration struct {
	ExternalUserID string `gorm:"primaryKey;size:64;column:external_user_id"`
	CreatedAt      time.Time
}

func (PreRegistration) TableName() string { return prefix + "pre_registration" }
