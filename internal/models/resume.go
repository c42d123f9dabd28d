package models

import "time"

// Resume is replaced in place on every upload; there is at most one per user.
type Resume struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	UserID           uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	FileURL          string     `gorm:"size:1024" json:"file_url,omitempty"`
	FileKey          string     `gorm:"size:1024" json:"file_key,omitempty"`
	OriginalFilename string     `gorm:"size:255" json:"original_filename,omitempty"`
	MimeType         string     `gorm:"size:100" json:"mime_type,omitempty"`
	ParsedText       string     `gorm:"type:text" json:"parsed_text,omitempty"`
	ParsedAt         *time.Time `json:"parsed_at,omitempty"`
}

// Text returns the extracted body, empty when the resume is missing.
func (r *Resume) Text() string {
	if r == nil {
		return ""
	}
	return r.ParsedText
}
