package models

import "time"

type World struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Boss struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RawUpload is one entry of the append-only audit log of submitted dumps.
type RawUpload struct {
	ID         int64     `json:"id"`
	WorldID    *int64    `json:"world_id"`
	World      string    `json:"world,omitempty"`
	RawText    string    `json:"raw_text"`
	UploadedAt time.Time `json:"uploaded_at"`
}
