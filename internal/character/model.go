package character

import "time"

// Character 定义了数据库中一个正在学习的汉字
type Character struct {
	ID uint `gorm:"primarykey" json:"id"`

	// Glyph 是单个汉字本身，在整张表中唯一
	Glyph string `gorm:"column:character;uniqueIndex;not null" json:"character"`

	// RecognitionCount 是自上次清零以来连续认识的次数，范围 [0, MasteryThreshold]
	RecognitionCount int `gorm:"not null;default:0" json:"recognition_count"`

	// IsMastered 在连续认识达到阈值时置为true，只有重置才会清除
	IsMastered bool `gorm:"not null;default:false" json:"is_mastered"`

	// --- 以下是可选的详情字段 ---

	Pinyin     *string `json:"pinyin"`
	Definition *string `json:"definition"`
	Words      *string `json:"words"`     // 组词，按行分隔
	Sentences  *string `json:"sentences"` // 造句，按行分隔

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Progress 返回当前的学习进度
func (c *Character) Progress() Progress {
	return Progress{RecognitionCount: c.RecognitionCount, IsMastered: c.IsMastered}
}

// LearningRecord 是一次认识/不认识的判定记录，创建后不再修改
type LearningRecord struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	CharacterID uint       `gorm:"not null;index" json:"character_id"`
	Character   *Character `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Recognized  bool       `gorm:"not null" json:"recognized"`
	RecordedAt  time.Time  `gorm:"not null;index" json:"recorded_at"`
}

// Details 是可以通过编辑接口修改的详情字段，nil 表示清空
type Details struct {
	Pinyin     *string `json:"pinyin"`
	Definition *string `json:"definition"`
	Words      *string `json:"words"`
	Sentences  *string `json:"sentences"`
}
