package server_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/maeva/realestate/internal/models"
	"github.com/maeva/realestate/internal/testutils"
	"github.com/stretchr/testify/assert"
)

func TestHealthEndpoint(t *testing.T) {
	app := testutils.SetupTestApp(t, testutils.TestDB(t))

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app := testutils.SetupTestApp(t, testutils.TestDB(t))

	resp, err := testutils.MakeRequest(app, "POST", "/admin/login",
		map[string]string{"password": "wrong"}, "")
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.Code)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	app := testutils.SetupTestApp(t, testutils.TestDB(t))

	resp, err := testutils.MakeRequest(app, "DELETE", "/admin/properties/1", nil, "")
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.Code)

	var parsed testutils.StandardResponse
	testutils.ParseResponse(t, resp, &parsed)
	assert.False(t, parsed.Success)
	assert.Equal(t, "UNAUTHORIZED", parsed.Error.Code)
}

func TestExpiredSessionIsRejectedAndRemoved(t *testing.T) {
	db := testutils.TestDB(t)
	app := testutils.SetupTestApp(t, db)
	token := testutils.LoginToken(t, app)

	err := db.Model(&models.AdminSession{}).
		Where("session_token = ?", token).
		Update("expires_at", time.Now().Add(-time.Second)).Error
	assert.NoError(t, err)

	resp, err := testutils.MakeRequest(app, "DELETE", "/admin/properties/1", nil, token)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.Code)

	var count int64
	db.Model(&models.AdminSession{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	db := testutils.TestDB(t)
	app := testutils.SetupTestApp(t, db)
	token := testutils.LoginToken(t, app)

	resp, err := testutils.MakeRequest(app, "POST", "/admin/logout", nil, token)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Code)

	resp, err = testutils.MakeRequest(app, "DELETE", "/admin/properties/1", nil, token)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.Code)
}

func TestPropertyLifecycleOverHTTP(t *testing.T) {
	db := testutils.TestDB(t)
	app := testutils.SetupTestApp(t, db)
	token := testutils.LoginToken(t, app)

	resp, err := testutils.MakeMultipartRequest(app, "POST", "/admin/properties",
		map[string]string{
			"title":    "Casa na Ilha",
			"price":    "250000",
			"location": "Luanda",
			"featured": "true",
		},
		[]testutils.FilePart{
			{Field: "images", Filename: "frente.gif", Content: []byte("GIF89a frente")},
			{Field: "images", Filename: "sala.gif", Content: []byte("GIF89a sala")},
		}, token)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.Code)

	var created testutils.StandardResponse
	testutils.ParseResponse(t, resp, &created)
	assert.True(t, created.Success)

	var props []models.Property
	assert.NoError(t, db.Preload("Images").Find(&props).Error)
	assert.Len(t, props, 1)
	assert.Len(t, props[0].Images, 2)

	// Public listing does not need a session.
	resp, err = testutils.MakeRequest(app, "GET", "/api/properties", nil, "")
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Code)

	resp, err = testutils.MakeRequest(app, "DELETE", "/admin/properties/1", nil, token)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Code)

	db.Find(&props)
	assert.Len(t, props, 0)
}

func TestCreatePropertyWithoutTitle(t *testing.T) {
	app := testutils.SetupTestApp(t, testutils.TestDB(t))
	token := testutils.LoginToken(t, app)

	resp, err := testutils.MakeMultipartRequest(app, "POST", "/admin/properties",
		map[string]string{"location": "Luanda"}, nil, token)
	assert.NoError(t, err)
	assert.Equal(t, 422, resp.Code)
}

func TestCreatePropertyRejectsBadExtension(t *testing.T) {
	app := testutils.SetupTestApp(t, testutils.TestDB(t))
	token := testutils.LoginToken(t, app)

	resp, err := testutils.MakeMultipartRequest(app, "POST", "/admin/properties",
		map[string]string{"title": "Casa"},
		[]testutils.FilePart{
			{Field: "images", Filename: "malware.exe", Content: []byte("MZ")},
		}, token)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.Code)

	var parsed testutils.StandardResponse
	testutils.ParseResponse(t, resp, &parsed)
	assert.Contains(t, parsed.Error.Message, "malware.exe")
}

func TestServeImageHeaders(t *testing.T) {
	db := testutils.TestDB(t)
	app := testutils.SetupTestApp(t, db)
	token := testutils.LoginToken(t, app)

	resp, err := testutils.MakeMultipartRequest(app, "POST", "/admin/properties",
		map[string]string{"title": "Casa"},
		[]testutils.FilePart{
			{Field: "images", Filename: "frente.gif", Content: []byte("GIF89a frente")},
		}, token)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.Code)

	raw, err := app.Test(httptest.NewRequest("GET", "/api/properties/1/image", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, raw.StatusCode)
	assert.Equal(t, "image/gif", raw.Header.Get("Content-Type"))
	assert.Contains(t, raw.Header.Get("Content-Disposition"), "inline")
	assert.Equal(t, "max-age=3600", raw.Header.Get("Cache-Control"))

	raw, err = app.Test(httptest.NewRequest("GET", "/api/properties/1/images/0", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, raw.StatusCode)
}

func TestServeImageMissing(t *testing.T) {
	app := testutils.SetupTestApp(t, testutils.TestDB(t))

	raw, err := app.Test(httptest.NewRequest("GET", "/api/properties/99/image", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, 404, raw.StatusCode)
}

func TestChatEndpoint(t *testing.T) {
	db := testutils.TestDB(t)
	app := testutils.SetupTestApp(t, db)

	resp, err := testutils.MakeRequest(app, "POST", "/api/chat",
		map[string]string{"name": "Maria", "message": "Têm casas à venda?"}, "")
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Code)

	var convs []models.ChatbotConversation
	db.Find(&convs)
	assert.Len(t, convs, 1)

	// An empty message is rejected before reaching the collaborator.
	resp, err = testutils.MakeRequest(app, "POST", "/api/chat",
		map[string]string{"name": "Maria"}, "")
	assert.NoError(t, err)
	assert.Equal(t, 422, resp.Code)
}

func TestConversationsAreAdminOnly(t *testing.T) {
	app := testutils.SetupTestApp(t, testutils.TestDB(t))

	resp, err := testutils.MakeRequest(app, "GET", "/admin/conversations", nil, "")
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.Code)

	token := testutils.LoginToken(t, app)
	resp, err = testutils.MakeRequest(app, "GET", "/admin/conversations", nil, token)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Code)
}
