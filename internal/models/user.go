package models

// Role is the single role a user carries.
type Role struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(20);uniqueIndex;not null"`
}

// Role name constants.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered user of the catalog.
type User struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"type:varchar(30);uniqueIndex;not null" validate:"required"`
	Password string `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	RoleID   int64  `json:"-"`
	Role     Role   `json:"role"`
}
