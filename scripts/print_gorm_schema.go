package main

import (
	"fmt"
	"log"
	"os"

	"github.com/zuu3/stay-site/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 对比 GORM 模型解析出的列与线上表结构，排查建表 SQL 与模型不一致。
//
// Usage:
//
//	MYSQL_DSN='user:pass@tcp(127.0.0.1:3306)/stay?charset=utf8mb4&parseTime=true' go run ./scripts/print_gorm_schema.go
func main() {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		log.Fatal("MYSQL_DSN is empty")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	for _, m := range []any{&models.Notice{}, &models.PreRegistration{}} {
		if err := printModel(db, m); err != nil {
			log.Fatal(err)
		}
	}
}

type column struct {
	Field string
	Type  string
	Null  string
	Key   string
}

func printModel(db *gorm.DB, m any) error {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(m); err != nil {
		return fmt.Errorf("parse %T: %w", m, err)
	}
	table := stmt.Schema.Table

	// GORM field metadata + dialect SQL type
	fmt.Printf("=== %s: GORM Parsed Fields ===\n", table)
	for _, f := range stmt.Schema.Fields {
		if f.DBName == "" {
			continue
		}
		fmt.Printf("%s\t%s\t%s\n", f.DBName, f.DataType, db.Dialector.DataTypeOf(f))
	}

	if !db.Migrator().HasTable(table) {
		fmt.Printf("table %s does not exist yet\n\n", table)
		return nil
	}
	var cols []column
	if err := db.Raw("SHOW COLUMNS FROM `" + table + "`").Scan(&cols).Error; err != nil {
		return fmt.Errorf("show columns from %s: %w", table, err)
	}
	fmt.Printf("=== SHOW COLUMNS FROM %s ===\n", table)
	for _, c := range cols {
		fmt.Printf("%s\t%s\t%s\t%s\n", c.Field, c.Type, c.Null, c.Key)
	}
	fmt.Println()
	return nil
}
