package model

import "time"

// Announcement 公告模型
// ImageURL为空字符串表示没有附件图片
type Announcement struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AnnouncementWithAuthor 带作者资料的公告，用于展示时的读时关联
type AnnouncementWithAuthor struct {
	Announcement
	AuthorName      string  `db:"author_name" json:"author_name"`
	AuthorAvatarURL *string `db:"author_avatar_url" json:"author_avatar_url"`
	AuthorIntroduce *string `db:"author_introduce" json:"author_introduce"`
}

// PaginatedAnnouncements 分页公告结果
type PaginatedAnnouncements struct {
	Total int64                    `json:"total"`
	Items []AnnouncementWithAuthor `json:"items"`
}
