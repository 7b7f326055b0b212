package model

// Profile 个人资料模型
// ID与所属用户ID一致，注册时隐式创建，不会被删除
type Profile struct {
	ID        int64   `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Introduce *string `db:"introduce" json:"introduce"`
	AvatarURL *string `db:"avatar_url" json:"avatar_url"`
}
