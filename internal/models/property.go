package models

import (
	"time"

	"github.com/maeva/realestate/internal/media"
)

type Property struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Title        string `gorm:"size:200;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	PropertyType string `gorm:"size:100" json:"property_type"` // apartment, house, commercial
	Price        string `gorm:"size:100" json:"price"`
	Location     string `gorm:"size:200" json:"location"`
	Featured     bool   `gorm:"default:false" json:"featured"`

	// Legacy single-image reference, kept for backward compatibility with
	// records created before the ordered image collection existed.
	ImagePath string `gorm:"size:300" json:"image_path,omitempty"`

	VideoPath        string `gorm:"size:300" json:"video_path,omitempty"`
	VideoData        []byte `json:"-"`
	VideoFilename    string `gorm:"size:255" json:"-"`
	VideoContentType string `gorm:"size:100" json:"-"`

	Images    []PropertyImage `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type PropertyImage struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PropertyID uint `gorm:"not null;index" json:"property_id"`

	ImagePath        string `gorm:"size:300" json:"image_path,omitempty"`
	ImageData        []byte `json:"-"`
	ImageFilename    string `gorm:"size:255" json:"-"`
	ImageContentType string `gorm:"size:100" json:"-"`

	IsPrimary  bool      `gorm:"default:false" json:"is_primary"`
	OrderIndex int       `gorm:"default:0" json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}

// VideoRef returns the property's video asset; the blob wins over a legacy
// path recorded on the same row.
func (p *Property) VideoRef() media.AssetRef {
	return media.RefFromRecord(p.VideoPath, p.VideoData, p.VideoFilename, p.VideoContentType)
}

// HasVideo reports whether any video asset is attached.
func (p *Property) HasVideo() bool {
	return !p.VideoRef().IsAbsent()
}

// Ref returns the image asset of a child row.
func (pi *PropertyImage) Ref() media.AssetRef {
	return media.RefFromRecord(pi.ImagePath, pi.ImageData, pi.ImageFilename, pi.ImageContentType)
}

// PrimaryImageRef picks the representative image for a property: the child
// flagged is_primary, else the child with the smallest order_index, else the
// legacy single-image field. Images must be preloaded.
func (p *Property) PrimaryImageRef() media.AssetRef {
	var fallback *PropertyImage
	for i := range p.Images {
		img := &p.Images[i]
		if img.IsPrimary {
			return img.Ref()
		}
		if fallback == nil || img.OrderIndex < fallback.OrderIndex {
			fallback = img
		}
	}
	if fallback != nil {
		return fallback.Ref()
	}
	return media.RefFromRecord(p.ImagePath, nil, "", "")
}
