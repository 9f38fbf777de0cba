package character

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository 封装了 characters 和 learning_records 两张表的读写
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建仓库实例
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Transaction 在同一个事务中执行 fn，fn 返回错误时整体回滚
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// SavePoint 在当前事务中设置保存点，配合 RollbackTo 实现逐行回滚
func (r *Repository) SavePoint(name string) error {
	return r.db.SavePoint(name).Error
}

// RollbackTo 回滚到指定的保存点
func (r *Repository) RollbackTo(name string) error {
	return r.db.RollbackTo(name).Error
}

// List 按创建时间从新到旧返回所有汉字
func (r *Repository) List(ctx context.Context) ([]Character, error) {
	var chars []Character
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&chars).Error; err != nil {
		return nil, fmt.Errorf("无法读取汉字列表: %w", err)
	}
	return chars, nil
}

// ListByGlyph 按汉字排序返回所有汉字，用于导出
func (r *Repository) ListByGlyph(ctx context.Context) ([]Character, error) {
	var chars []Character
	if err := r.db.WithContext(ctx).Order("character ASC").Find(&chars).Error; err != nil {
		return nil, fmt.Errorf("无法读取汉字列表: %w", err)
	}
	return chars, nil
}

// Get 按ID获取汉字，不存在时返回 ErrNotFound
func (r *Repository) Get(ctx context.Context, id uint) (*Character, error) {
	var c Character
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("无法读取汉字 %d: %w", id, err)
	}
	return &c, nil
}

// FindByGlyph 按汉字本身查找，不存在时返回 (nil, nil)
func (r *Repository) FindByGlyph(ctx context.Context, glyph string) (*Character, error) {
	var c Character
	err := r.db.WithContext(ctx).Where("character = ?", glyph).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法查找汉字 %q: %w", glyph, err)
	}
	return &c, nil
}

// Create 插入一个新汉字，重复时返回 ErrDuplicate
func (r *Repository) Create(ctx context.Context, c *Character) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("无法添加汉字 %q: %w", c.Glyph, err)
	}
	return nil
}

// CreateIfAbsent 插入汉字，已存在时什么也不做并返回 false
func (r *Repository) CreateIfAbsent(ctx context.Context, glyph string) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "character"}}, DoNothing: true}).
		Create(&Character{Glyph: glyph})
	if res.Error != nil {
		return false, fmt.Errorf("无法添加汉字 %q: %w", glyph, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Save 更新汉字的所有可变字段
func (r *Repository) Save(ctx context.Context, c *Character) error {
	err := r.db.WithContext(ctx).Model(c).Select(
		"RecognitionCount", "IsMastered", "Pinyin", "Definition", "Words", "Sentences", "UpdatedAt",
	).Updates(c).Error
	if err != nil {
		return fmt.Errorf("无法更新汉字 %q: %w", c.Glyph, err)
	}
	return nil
}

// UpdateDetails 覆盖详情字段，nil 字段会被清空
func (r *Repository) UpdateDetails(ctx context.Context, id uint, d Details) error {
	res := r.db.WithContext(ctx).Model(&Character{ID: id}).
		Select("Pinyin", "Definition", "Words", "Sentences", "UpdatedAt").
		Updates(&Character{Pinyin: d.Pinyin, Definition: d.Definition, Words: d.Words, Sentences: d.Sentences})
	if res.Error != nil {
		return fmt.Errorf("无法更新汉字 %d 的详情: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateDetailsByGlyph 按汉字覆盖详情字段，返回是否找到了该汉字
func (r *Repository) UpdateDetailsByGlyph(ctx context.Context, glyph string, d Details) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Character{}).Where("character = ?", glyph).
		Select("Pinyin", "Definition", "Words", "Sentences", "UpdatedAt").
		Updates(&Character{Pinyin: d.Pinyin, Definition: d.Definition, Words: d.Words, Sentences: d.Sentences})
	if res.Error != nil {
		return false, fmt.Errorf("无法更新汉字 %q 的详情: %w", glyph, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// SaveProgress 持久化学习状态
func (r *Repository) SaveProgress(ctx context.Context, id uint, p Progress) error {
	err := r.db.WithContext(ctx).Model(&Character{ID: id}).
		Select("RecognitionCount", "IsMastered", "UpdatedAt").
		Updates(&Character{RecognitionCount: p.RecognitionCount, IsMastered: p.IsMastered}).Error
	if err != nil {
		return fmt.Errorf("无法更新汉字 %d 的学习状态: %w", id, err)
	}
	return nil
}

// AddRecord 追加一条学习记录
func (r *Repository) AddRecord(ctx context.Context, characterID uint, recognized bool, at time.Time) error {
	rec := LearningRecord{CharacterID: characterID, Recognized: recognized, RecordedAt: at}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		return fmt.Errorf("无法写入学习记录: %w", err)
	}
	return nil
}

// Delete 删除汉字，先删除它的全部学习记录以满足外键约束
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.Transaction(ctx, func(tx *Repository) error {
		if err := tx.db.Where("character_id = ?", id).Delete(&LearningRecord{}).Error; err != nil {
			return fmt.Errorf("无法删除汉字 %d 的学习记录: %w", id, err)
		}
		if err := tx.db.Delete(&Character{}, id).Error; err != nil {
			return fmt.Errorf("无法删除汉字 %d: %w", id, err)
		}
		return nil
	})
}

// PickRandom 在指定掌握状态的汉字中均匀随机选取一个，没有符合条件的汉字时返回 (nil, nil)
func (r *Repository) PickRandom(ctx context.Context, mastered bool) (*Character, error) {
	var chars []Character
	err := r.db.WithContext(ctx).Where("is_mastered = ?", mastered).
		Order("RANDOM()").Limit(1).Find(&chars).Error
	if err != nil {
		return nil, fmt.Errorf("无法随机选取汉字: %w", err)
	}
	if len(chars) == 0 {
		return nil, nil
	}
	return &chars[0], nil
}

// Count 返回汉字总数
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Character{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("无法统计汉字数量: %w", err)
	}
	return n, nil
}
