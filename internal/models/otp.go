package models

import "time"

// OneTimeCode одноразовый код подтверждения.
// Email уникален: повторная выдача перезаписывает код и срок (upsert),
// поэтому для адреса всегда действует не более одного кода.
type OneTimeCode struct {
	BaseModel
	Email  string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Code   string    `gorm:"type:varchar(16);not null" json:"-"`
	Expiry time.Time `gorm:"not null" json:"expiry"`
}

func (OneTimeCode) TableName() string {
	return "one_time_codes"
}

// IsExpired проверяет, истек ли срок действия кода
func (c *OneTimeCode) IsExpired(now time.Time) bool {
	return !now.Before(c.Expiry)
}
