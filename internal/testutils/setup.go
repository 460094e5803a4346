package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/maeva/realestate/internal/config"
	"github.com/maeva/realestate/internal/models"
	"github.com/maeva/realestate/internal/server"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err, "Failed to create test database")

	err = db.AutoMigrate(
		&models.Property{},
		&models.PropertyImage{},
		&models.Post{},
		&models.AdminSession{},
		&models.ChatbotConversation{},
	)
	assert.NoError(t, err, "Failed to migrate test database")

	return db
}

// TestConfig returns a config with filesystem storage rooted in a per-test
// temp directory and the shared admin password set to "test-secret".
func TestConfig(t *testing.T) *config.Config {
	return &config.Config{
		StorageBackend: config.BackendFilesystem,
		UploadDir:      t.TempDir(),
		MaxImageSizeMB: 10,
		MaxVideoSizeMB: 30,
		SniffContent:   false,
		AdminPassword:  "test-secret",
	}
}

// EchoResponder is a chat collaborator fake that replies with a fixed answer.
type EchoResponder struct {
	Answer string
	Err    error
}

func (r EchoResponder) Reply(ctx context.Context, message string) (string, error) {
	return r.Answer, r.Err
}

func SetupTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	app, err := server.New(db, TestConfig(t), EchoResponder{Answer: "ok"})
	assert.NoError(t, err, "Failed to build test app")
	return app
}

// LoginToken logs in through the HTTP surface and returns the session token.
func LoginToken(t *testing.T, app *fiber.App) string {
	body, _ := json.Marshal(map[string]string{"password": "test-secret"})
	req := httptest.NewRequest("POST", "/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode, "login failed")

	var result struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	resp.Body.Close()
	return result.Data.Token
}

func MakeRequest(app *fiber.App, method, url string, body interface{}, token string) (*httptest.ResponseRecorder, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	resp, err := app.Test(req, -1)
	if err != nil {
		return rec, err
	}

	rec.Code = resp.StatusCode
	io.Copy(rec.Body, resp.Body)
	resp.Body.Close()
	return rec, nil
}

// MakeMultipartRequest submits form fields plus named files, each entry a
// (field name, filename, content) triple.
func MakeMultipartRequest(app *fiber.App, method, url string, fields map[string]string, files []FilePart, token string) (*httptest.ResponseRecorder, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, val := range fields {
		writer.WriteField(key, val)
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return nil, err
		}
		part.Write(f.Content)
	}

	contentType := writer.FormDataContentType()
	writer.Close()

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	resp, err := app.Test(req, -1)
	if err != nil {
		return rec, err
	}

	rec.Code = resp.StatusCode
	io.Copy(rec.Body, resp.Body)
	resp.Body.Close()
	return rec, nil
}

type FilePart struct {
	Field    string
	Filename string
	Content  []byte
}

// MakeFileHeader builds a *multipart.FileHeader the way a real form parse
// would, for feeding services directly in tests.
func MakeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	assert.NoError(t, err)
	part.Write(content)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(64 << 20)
	assert.NoError(t, err)
	return form.File["file"][0]
}

type StandardResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data"`
	Error   *ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func ParseResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	if resp.Body.Len() == 0 {
		t.Log("Warning: Response body is empty")
		return
	}

	err := json.NewDecoder(resp.Body).Decode(v)
	if err != nil && err != io.EOF {
		t.Logf("Response body: %s", resp.Body.String())
		assert.NoError(t, err, "Failed to parse response")
	}
}
