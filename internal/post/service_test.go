package post_test

import (
	"encoding/json"
	"testing"

	"github.com/maeva/realestate/internal/media"
	"github.com/maeva/realestate/internal/models"
	"github.com/maeva/realestate/internal/post"
	"github.com/maeva/realestate/internal/testutils"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newService(t *testing.T, db *gorm.DB) *post.Service {
	store, err := media.NewLocalStore(t.TempDir())
	assert.NoError(t, err)
	pipeline := &media.Pipeline{
		Validator: media.NewValidator(10, 30, media.ExtensionOnlySniffer{}),
		Store:     store,
	}
	return post.NewService(db, pipeline)
}

func newBlobService(t *testing.T, db *gorm.DB) *post.Service {
	pipeline := &media.Pipeline{
		Validator: media.NewValidator(10, 30, media.ExtensionOnlySniffer{}),
		Store:     media.NewBlobStore(),
	}
	return post.NewService(db, pipeline)
}

func TestCreateWithAttachments(t *testing.T) {
	db := testutils.TestDB(t)
	svc := newService(t, db)

	image := testutils.MakeFileHeader(t, "capa.gif", []byte("GIF89a fake"))
	video := testutils.MakeFileHeader(t, "tour.mp4", []byte("fake video"))

	p, err := svc.Create(post.Fields{
		Title:   "Novo lançamento",
		Content: "Apartamentos na planta",
		Tags:    []string{"lançamento", "apartamento"},
	}, image, video)
	assert.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.NotEmpty(t, p.ImagePath)
	assert.NotEmpty(t, p.VideoPath)

	var tags []string
	assert.NoError(t, json.Unmarshal(p.Tags, &tags))
	assert.Equal(t, []string{"lançamento", "apartamento"}, tags)
}

func TestCreateRejectedFileLeavesNoRow(t *testing.T) {
	db := testutils.TestDB(t)
	svc := newService(t, db)

	video := testutils.MakeFileHeader(t, "tour.exe", []byte("nope"))

	_, err := svc.Create(post.Fields{Title: "Post", Content: "body"}, nil, video)
	assert.Error(t, err)
	var verr *media.ValidationError
	assert.ErrorAs(t, err, &verr)

	var count int64
	db.Model(&models.Post{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateSanitizesMarkup(t *testing.T) {
	db := testutils.TestDB(t)
	svc := newService(t, db)

	p, err := svc.Create(post.Fields{
		Title:   "Oferta <script>alert(1)</script>",
		Content: "<b>válido</b><script>bad()</script>",
	}, nil, nil)
	assert.NoError(t, err)
	assert.NotContains(t, p.Title, "<script>")
	assert.NotContains(t, p.Content, "<script>")
	assert.Contains(t, p.Content, "<b>válido</b>")
}

func TestUpdatePartialFields(t *testing.T) {
	db := testutils.TestDB(t)
	svc := newService(t, db)

	p, err := svc.Create(post.Fields{Title: "Original", Content: "Texto"}, nil, nil)
	assert.NoError(t, err)
	createdAt := p.CreatedAt

	featured := true
	_, err = svc.Update(p.ID, post.Fields{Title: "Atualizado", Featured: &featured}, nil, nil)
	assert.NoError(t, err)

	var stored models.Post
	assert.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, "Atualizado", stored.Title)
	assert.Equal(t, "Texto", stored.Content)
	assert.True(t, stored.Featured)
	assert.Equal(t, createdAt.Unix(), stored.CreatedAt.Unix())
}

func TestUpdateReplacesImage(t *testing.T) {
	db := testutils.TestDB(t)
	svc := newBlobService(t, db)

	first := testutils.MakeFileHeader(t, "one.gif", []byte("GIF89a one"))
	p, err := svc.Create(post.Fields{Title: "Post", Content: "body"}, first, nil)
	assert.NoError(t, err)

	second := testutils.MakeFileHeader(t, "two.gif", []byte("GIF89a two"))
	_, err = svc.Update(p.ID, post.Fields{}, second, nil)
	assert.NoError(t, err)

	var stored models.Post
	assert.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, "two.gif", stored.ImageFilename)
	assert.Equal(t, []byte("GIF89a two"), stored.ImageData)
}

func TestUpdateMissingPost(t *testing.T) {
	db := testutils.TestDB(t)
	svc := newService(t, db)

	_, err := svc.Update(999, post.Fields{Title: "x"}, nil, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteIdempotent(t *testing.T) {
	db := testutils.TestDB(t)
	svc := newService(t, db)

	p, err := svc.Create(post.Fields{Title: "Post", Content: "body"}, nil, nil)
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(p.ID))
	assert.NoError(t, svc.Delete(p.ID))

	var count int64
	db.Model(&models.Post{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestListNewestFirst(t *testing.T) {
	db := testutils.TestDB(t)
	svc := newService(t, db)

	for _, title := range []string{"primeiro", "segundo", "terceiro"} {
		_, err := svc.Create(post.Fields{Title: title, Content: "body"}, nil, nil)
		assert.NoError(t, err)
	}

	posts, err := svc.List()
	assert.NoError(t, err)
	assert.Len(t, posts, 3)
}
