package models

import (
	"time"

	"github.com/maeva/realestate/internal/media"
	"gorm.io/datatypes"
)

type Post struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	Title    string         `gorm:"size:200;not null" json:"title"`
	Content  string         `gorm:"type:text;not null" json:"content"`
	Featured bool           `gorm:"default:false" json:"featured"`
	Tags     datatypes.JSON `json:"tags,omitempty"`

	ImagePath        string `gorm:"size:300" json:"image_path,omitempty"`
	ImageData        []byte `json:"-"`
	ImageFilename    string `gorm:"size:255" json:"-"`
	ImageContentType string `gorm:"size:100" json:"-"`

	VideoPath        string `gorm:"size:300" json:"video_path,omitempty"`
	VideoData        []byte `json:"-"`
	VideoFilename    string `gorm:"size:255" json:"-"`
	VideoContentType string `gorm:"size:100" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *Post) ImageRef() media.AssetRef {
	return media.RefFromRecord(p.ImagePath, p.ImageData, p.ImageFilename, p.ImageContentType)
}

func (p *Post) VideoRef() media.AssetRef {
	return media.RefFromRecord(p.VideoPath, p.VideoData, p.VideoFilename, p.VideoContentType)
}
