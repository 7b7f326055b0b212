package model

import "time"

// Event 日历日程模型
type Event struct {
	ID      int64      `db:"id" json:"id"`
	Title   string     `db:"title" json:"title"`
	StartAt time.Time  `db:"start_at" json:"start"`
	EndAt   *time.Time `db:"end_at" json:"end"`
	AllDay  bool       `db:"all_day" json:"allDay"`
}
