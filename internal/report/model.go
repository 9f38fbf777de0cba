package report

import "time"

// Stats 是学习进度的汇总。
// Mastered、Learning、NotStarted 的判定条件彼此独立，不保证加起来等于 Total。
type Stats struct {
	Total      int `json:"total"`
	Mastered   int `json:"mastered"`
	Learning   int `json:"learning"`   // 未掌握且计数大于0
	NotStarted int `json:"not_started"` // 计数为0，包括掌握后又答错的

	TodayCount      int      `json:"today_count"`
	TodayRecognized []string `json:"today_recognized"` // 今日认识的汉字，最近的在前

	Progress float64 `json:"progress"` // 已掌握百分比，保留两位小数
}

// RecentRecord 是带有汉字本身的学习记录
type RecentRecord struct {
	ID         uint      `db:"id" json:"id"`
	Recognized bool      `db:"recognized" json:"recognized"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
	Character  string    `db:"character" json:"character"`
}

// Mistake 是错题库中的一项：一次都没答对过的未掌握汉字
type Mistake struct {
	ID               uint    `db:"id" json:"id"`
	Character        string  `db:"character" json:"character"`
	RecognitionCount int     `db:"recognition_count" json:"recognition_count"`
	IsMastered       bool    `db:"is_mastered" json:"is_mastered"`
	Pinyin           *string `db:"pinyin" json:"pinyin"`
	Definition       *string `db:"definition" json:"definition"`
	Words            *string `db:"words" json:"words"`
	Sentences        *string `db:"sentences" json:"sentences"`

	MistakeCount    int       `db:"mistake_count" json:"mistake_count"`
	LastMistakeTime time.Time `db:"-" json:"last_mistake_time"`
}
