package post

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"strings"

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

type Fields struct {
	Title    string
	Content  string
	Tags     []string
	Featured *bool
}

// Create ingests the optional image and video before the post row is
// committed, so a rejected file leaves nothing behind.
func (s *Service) Create(fields Fields, image, video *multipart.FileHeader) (*models.Post, error) {
	p := &models.Post{
		Title:    policy.Sanitize(fields.Title),
		Content:  policy.Sanitize(fields.Content),
		Featured: fields.Featured != nil && *fields.Featured,
	}
	if len(fields.Tags) > 0 {
		tagsJSON, _ := json.Marshal(fields.Tags)
		p.Tags = tagsJSON
	}

	var stored []media.AssetRef
	if image != nil {
		ref, err := s.pipeline.Ingest(image)
		if err != nil {
			return nil, err
		}
		stored = append(stored, ref)
		applyImageRef(p, ref)
	}
	if video != nil {
		ref, err := s.pipeline.Ingest(video)
		if err != nil {
			cleanup(s.pipeline.Store, stored)
			return nil, err
		}
		stored = append(stored, ref)
		applyVideoRef(p, ref)
	}

	if err := s.db.Create(p).Error; err != nil {
		cleanup(s.pipeline.Store, stored)
		return nil, err
	}
	return p, nil
}

// Update overwrites only the non-empty submitted fields. New files replace
// the old assets; created_at is never touched.
func (s *Service) Update(id uint, fields Fields, image, video *multipart.FileHeader) (*models.Post, error) {
	var p models.Post
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if strings.TrimSpace(fields.Title) != "" {
		updates["title"] = policy.Sanitize(fields.Title)
	}
	if strings.TrimSpace(fields.Content) != "" {
		updates["content"] = policy.Sanitize(fields.Content)
	}
	if fields.Featured != nil {
		updates["featured"] = *fields.Featured
	}
	if len(fields.Tags) > 0 {
		tagsJSON, _ := json.Marshal(fields.Tags)
		updates["tags"] = tagsJSON
	}

	var replaced []media.AssetRef
	if image != nil {
		ref, err := s.pipeline.Ingest(image)
		if err != nil {
			return nil, err
		}
		replaced = append(replaced, p.ImageRef())
		setAssetUpdates(updates, "image", ref)
	}
	if video != nil {
		ref, err := s.pipeline.Ingest(video)
		if err != nil {
			return nil, err
		}
		replaced = append(replaced, p.VideoRef())
		setAssetUpdates(updates, "video", ref)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&p).Updates(updates).Error; err != nil {
			return nil, err
		}
		cleanup(s.pipeline.Store, replaced)
	}
	return &p, nil
}

// Delete removes the post row and unlinks any referenced files best-effort.
// Deleting an absent post is a no-op.
func (s *Service) Delete(id uint) error {
	var p models.Post
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if err := s.db.Delete(&models.Post{}, id).Error; err != nil {
		return err
	}

	s.pipeline.Store.Delete(p.ImageRef())
	s.pipeline.Store.Delete(p.VideoRef())
	return nil
}

func (s *Service) Get(id uint) (*models.Post, error) {
	var p models.Post
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) List() ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func cleanup(store media.Store, refs []media.AssetRef) {
	for _, ref := range refs {
		store.Delete(ref)
	}
}

func applyImageRef(p *models.Post, ref media.AssetRef) {
	switch ref.Kind {
	case media.FilePath:
		p.ImagePath = ref.Path
	case media.Blob:
		p.ImageData = ref.Data
		p.ImageFilename = ref.Filename
		p.ImageContentType = ref.ContentType
	}
}

func applyVideoRef(p *models.Post, ref media.AssetRef) {
	switch ref.Kind {
	case media.FilePath:
		p.VideoPath = ref.Path
	case media.Blob:
		p.VideoData = ref.Data
		p.VideoFilename = ref.Filename
		p.VideoContentType = ref.ContentType
	}
}

func setAssetUpdates(updates map[string]interface{}, prefix string, ref media.AssetRef) {
	switch ref.Kind {
	case media.FilePath:
		updates[prefix+"_path"] = ref.Path
		updates[prefix+"_data"] = nil
		updates[prefix+"_filename"] = ""
		updates[prefix+"_content_type"] = ""
	case media.Blob:
		updates[prefix+"_path"] = ""
		updates[prefix+"_data"] = ref.Data
		updates[prefix+"_filename"] = ref.Filename
		updates[prefix+"_content_type"] = ref.ContentType
	}
}
