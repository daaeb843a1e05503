package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB 用 go-sqlmock 创建一个可被 GORM 使用的 *gorm.DB。
// 说明：我们用 mysql dialector 只是为了让 GORM 生成的 SQL/占位符风格稳定（? 占位符），
// 实际不会连接真实 MySQL。
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	sqldb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	// SkipDefaultTransaction: 避免 GORM 默认在每次写操作开启事务，简化 sqlmock 断言
	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqldb, SkipInitializeWithVersion: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = sqldb.Close()
		t.Fatalf("gorm.Open: %v", err)
	}

	return db, mock, sqldb
}

// fixedClock 2026-10-14 23:30 UTC，即首尔时间 2026-10-15
var fixedClock = time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC)

var kst = time.FixedZone("KST", 9*60*60)

func newTestBase(db *gorm.DB) *Service {
	return &Service{
		DB:       db,
		Location: kst,
		Now:      func() time.Time { return fixedClock },
	}
}

func expectNoticeSchema(mock sqlmock.Sqlmock) {
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS `stay_notice`").
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func expectPreRegistrationSchema(mock sqlmock.Sqlmock) {
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS `stay_pre_registration`").
		WillReturnResult(sqlmock.NewResult(0, 0))
}

var noticeColumns = []string{"id", "tag", "date", "title", "summary", "content", "created_at"}
