package models

// Tag labels certificates. Names are unique case-insensitively, enforced by
// a unique index on LOWER(name) created at migration time; certificates
// reference tag identity, never the name string.
type Tag struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string `json:"name" gorm:"type:varchar(25);index;not null"`
	IsDeleted bool   `json:"-" gorm:"not null;default:false;index"`
}
