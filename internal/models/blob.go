package models

import "time"

// Blob is a stored binary file addressed by a unique name.
type Blob struct {
	Name        string    `json:"name" gorm:"primaryKey;type:varchar(100)"`
	ContentType string    `json:"content_type" gorm:"type:varchar(100)"`
	Size        int64     `json:"size"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
