package domain

import "time"

// Comment is a per-task discussion entry, fetched on demand.
type Comment struct {
	ID        string    `json:"_id"`
	TaskID    string    `json:"taskId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	IsEdited  bool      `json:"isEdited,omitempty"`
}
