package character

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate 建表或对已有表做增量迁移。
// 已存在的表只会追加缺失的列，不会修改或删除已有的列和数据。
func Migrate(db *gorm.DB) error {
	for _, model := range []any{&Character{}, &LearningRecord{}} {
		if err := migrateModel(db, model); err != nil {
			return err
		}
	}
	return nil
}

func migrateModel(db *gorm.DB, model any) error {
	m := db.Migrator()
	if !m.HasTable(model) {
		if err := m.CreateTable(model); err != nil {
			return fmt.Errorf("无法创建表: %w", err)
		}
		return nil
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return fmt.Errorf("无法解析模型: %w", err)
	}
	for _, name := range stmt.Schema.DBNames {
		if m.HasColumn(model, name) {
			continue
		}
		if err := m.AddColumn(model, stmt.Schema.FieldsByDBName[name].Name); err != nil {
			return fmt.Errorf("无法为表 %s 添加列 %s: %w", stmt.Schema.Table, name, err)
		}
	}
	for _, idx := range stmt.Schema.ParseIndexes() {
		if m.HasIndex(model, idx.Name) {
			continue
		}
		if err := m.CreateIndex(model, idx.Name); err != nil {
			return fmt.Errorf("无法为表 %s 创建索引 %s: %w", stmt.Schema.Table, idx.Name, err)
		}
	}
	return nil
}
