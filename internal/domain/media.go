package domain

import "time"

type Media struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	PublicID  string    `json:"publicId,omitempty"`
	Filename  string    `json:"filename"`
	MimeType  string    `json:"mimeType"`
	Size      int64     `json:"size"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	Alt       string    `json:"alt,omitempty"`
	Caption   string    `json:"caption,omitempty"`
	Category  string    `json:"category,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type MediaInput struct {
	URL      string   `json:"url" validate:"required,url"`
	PublicID string   `json:"publicId"`
	Filename string   `json:"filename" validate:"required"`
	MimeType string   `json:"mimeType" validate:"required"`
	Size     int64    `json:"size" validate:"gte=0"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Alt      string   `json:"alt"`
	Caption  string   `json:"caption"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}
