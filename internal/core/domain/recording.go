package domain

import "time"

// Recording is a single uploaded audio memo. The blob itself lives behind the
// storage backend; StorageKey is the opaque reference used to serve or delete it.
type Recording struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	StorageKey   string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	Duration     *float64  `json:"duration"`
	CreatedAt    time.Time `json:"created_at"`
}
