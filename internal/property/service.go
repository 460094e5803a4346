package property

import (
	"errors"
	"mime/multipart"
	"strings"

	"github.com/maeva/realestate/internal/config"
	"github.com/maeva/realestate/internal/media"
	"github.com/maeva/realestate/internal/models"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var policy = bluemonday.UGCPolicy()

type Service struct {
	db       *gorm.DB
	pipeline *media.Pipeline
}

func NewService(db *gorm.DB, pipeline *media.Pipeline) *Service {
	return &Service{db: db, pipeline: pipeline}
}

// Fields are the form values of a create or update submission. On update, an
// empty string means "no change", never "clear this field".
type Fields struct {
	Title        string
	Description  string
	PropertyType string
	Price        string
	Location     string
	Featured     *bool
}

// Create persists the property row first to obtain an id, then runs each
// image through the upload pipeline inside one transaction. An image failure
// rolls back the batch and surfaces the per-file reason, but the already
// committed property row stays behind.
func (s *Service) Create(fields Fields, video *multipart.FileHeader, images []*multipart.FileHeader) (*models.Property, error) {
	prop := &models.Property{
		Title:        policy.Sanitize(fields.Title),
		Description:  policy.Sanitize(fields.Description),
		PropertyType: policy.Sanitize(fields.PropertyType),
		Price:        policy.Sanitize(fields.Price),
		Location:     policy.Sanitize(fields.Location),
		Featured:     fields.Featured != nil && *fields.Featured,
	}

	// The video is ingested before the parent row exists, so an oversized or
	// mistyped video leaves no property behind.
	var videoRef media.AssetRef
	if video != nil {
		ref, err := s.pipeline.Ingest(video)
		if err != nil {
			return nil, err
		}
		videoRef = ref
		applyVideoRef(prop, ref)
	}

	if err := s.db.Create(prop).Error; err != nil {
		s.pipeline.Store.Delete(videoRef)
		return nil, err
	}

	if len(images) > config.MaxImagesPerProperty {
		images = images[:config.MaxImagesPerProperty]
	}

	var stored []media.AssetRef
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i, fh := range images {
			ref, err := s.pipeline.Ingest(fh)
			if err != nil {
				return err
			}
			stored = append(stored, ref)

			img := models.PropertyImage{
				PropertyID: prop.ID,
				IsPrimary:  i == 0,
				OrderIndex: i,
			}
			applyImageRef(&img, ref)
			if err := tx.Create(&img).Error; err != nil {
				return err
			}

			if i == 0 && ref.Kind == media.FilePath {
				if err := tx.Model(prop).Update("image_path", ref.Path).Error; err != nil {
					return err
				}
				prop.ImagePath = ref.Path
			}
		}
		return nil
	})
	if err != nil {
		for _, ref := range stored {
			s.pipeline.Store.Delete(ref)
		}
		return nil, err
	}

	s.db.Preload("Images", orderImages).First(prop, prop.ID)
	return prop, nil
}

// Update overwrites only the non-empty submitted fields; created_at is never
// touched. A new video replaces the old asset.
func (s *Service) Update(id uint, fields Fields, video *multipart.FileHeader) (*models.Property, error) {
	var prop models.Property
	if err := s.db.First(&prop, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setIfPresent(updates, "title", fields.Title)
	setIfPresent(updates, "description", fields.Description)
	setIfPresent(updates, "property_type", fields.PropertyType)
	setIfPresent(updates, "price", fields.Price)
	setIfPresent(updates, "location", fields.Location)
	if fields.Featured != nil {
		updates["featured"] = *fields.Featured
	}

	var oldVideo media.AssetRef
	if video != nil {
		ref, err := s.pipeline.Ingest(video)
		if err != nil {
			return nil, err
		}
		oldVideo = prop.VideoRef()
		setVideoUpdates(updates, ref)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&prop).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.pipeline.Store.Delete(oldVideo)
	}

	s.db.Preload("Images", orderImages).First(&prop, id)
	return &prop, nil
}

// Delete removes the property, its child images, and the video in one unit of
// work, then unlinks any referenced files best-effort. Deleting an absent
// property is a no-op.
func (s *Service) Delete(id uint) error {
	var prop models.Property
	if err := s.db.Preload("Images").First(&prop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Property{}, id).Error
	})
	if err != nil {
		return err
	}

	for i := range prop.Images {
		s.pipeline.Store.Delete(prop.Images[i].Ref())
	}
	s.pipeline.Store.Delete(prop.VideoRef())
	s.pipeline.Store.Delete(media.RefFromRecord(prop.ImagePath, nil, "", ""))
	return nil
}

func (s *Service) Get(id uint) (*models.Property, error) {
	var prop models.Property
	if err := s.db.Preload("Images", orderImages).First(&prop, id).Error; err != nil {
		return nil, err
	}
	return &prop, nil
}

func (s *Service) List() ([]models.Property, error) {
	var props []models.Property
	err := s.db.Preload("Images", orderImages).Order("created_at DESC").Find(&props).Error
	return props, err
}

func (s *Service) Featured() ([]models.Property, error) {
	var props []models.Property
	err := s.db.Preload("Images", orderImages).
		Where("featured = ?", true).
		Order("created_at DESC").
		Limit(6).
		Find(&props).Error
	return props, err
}

func orderImages(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC")
}

func setIfPresent(updates map[string]interface{}, column, value string) {
	if strings.TrimSpace(value) != "" {
		updates[column] = policy.Sanitize(value)
	}
}

func applyVideoRef(p *models.Property, ref media.AssetRef) {
	switch ref.Kind {
	case media.FilePath:
		p.VideoPath = ref.Path
	case media.Blob:
		p.VideoData = ref.Data
		p.VideoFilename = ref.Filename
		p.VideoContentType = ref.ContentType
	}
}

func applyImageRef(img *models.PropertyImage, ref media.AssetRef) {
	switch ref.Kind {
	case media.FilePath:
		img.ImagePath = ref.Path
	case media.Blob:
		img.ImageData = ref.Data
		img.ImageFilename = ref.Filename
		img.ImageContentType = ref.ContentType
	}
}

func setVideoUpdates(updates map[string]interface{}, ref media.AssetRef) {
	switch ref.Kind {
	case media.FilePath:
		updates["video_path"] = ref.Path
		updates["video_data"] = nil
		updates["video_filename"] = ""
		updates["video_content_type"] = ""
	case media.Blob:
		updates["video_path"] = ""
		updates["video_data"] = ref.Data
		updates["video_filename"] = ref.Filename
		updates["video_content_type"] = ref.ContentType
	}
}
