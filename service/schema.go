package service

import (
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// schemaGuard 建表守卫：成功一次后后续调用直接返回。
// 并发调用合并为同一次 DDL，失败时所有等待者拿到同一个错误，由之后的调用重试。
type schemaGuard struct {
	done atomic.Bool
	sf   singleflight.Group
}

func (g *schemaGuard) ensure(create func() error) error {
	if g.done.Load() {
		return nil
	}
	_, err, _ := g.sf.Do("schema", func() (any, error) {
		if g.done.Load() {
			return nil, nil
		}
		if err := create(); err != nil {
			return nil, err
		}
		g.done.Store(true)
		return nil, nil
	})
	return err
}

const createNoticeTableSQL = "CREATE TABLE IF NOT EXISTS `stay_notice` (" +
	"`id` VARCHAR(64) NOT NULL PRIMARY KEY," +
	"`tag` VARCHAR(16) NOT NULL," +
	"`date` VARCHAR(20) NOT NULL," +
	"`title` VARCHAR(255) NOT NULL," +
	"`summary` TEXT," +
	"`content` LONGTEXT NOT NULL," +
	"`created_at` DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3)," +
	"INDEX `idx_stay_notice_created_at` (`created_at`)" +
	") DEFAULT CHARSET=utf8mb4"

const createPreRegistrationTableSQL = "CREATE TABLE IF NOT EXISTS `stay_pre_registration` (" +
	"`external_user_id` VARCHAR(64) NOT NULL PRIMARY KEY," +
	"`created_at` DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3)" +
	") DEFAULT CHARSET=utf8mb4"
