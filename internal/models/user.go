package models

import "time"

// User учетная запись пользователя.
// Token хранит текущий выданный JWT: logout обнуляет его,
// и все ранее выданные токены перестают приниматься.
type User struct {
	BaseModel
	Email         string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name          string   `gorm:"type:varchar(255)" json:"name"`
	PasswordHash  string   `gorm:"type:varchar(255);not null" json:"-"`
	Token         *string  `gorm:"type:text" json:"-"`
	ProfileImg    *string  `gorm:"type:text" json:"profile_img,omitempty"`
	Number        *string  `gorm:"type:varchar(32)" json:"number,omitempty"`
	FreeDownloads int      `gorm:"default:3" json:"free_downloads"`
	Role          UserRole `gorm:"type:varchar(16);default:'USER'" json:"role"`

	Templates []Template `gorm:"foreignKey:UserID" json:"templates,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin сообщает, является ли пользователь администратором
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DownloadHistory запись о скачивании шаблона.
// Email позволяет учитывать и гостевые скачивания без учетной записи.
type DownloadHistory struct {
	BaseModel
	Email      string    `gorm:"type:varchar(255);index;not null" json:"email"`
	TemplateID string    `gorm:"type:uuid;index;not null" json:"template_id"`
	UserID     *string   `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Downloaded time.Time `gorm:"not null" json:"downloaded"`

	Template *Template `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
}

func (DownloadHistory) TableName() string {
	return "download_histories"
}
