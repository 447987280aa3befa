package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/toomanyjoshes/terminalchat/internal/database"
	"github.com/toomanyjoshes/terminalchat/internal/handlers"
	"github.com/toomanyjoshes/terminalchat/internal/models"
	"github.com/toomanyjoshes/terminalchat/internal/routes"
	"github.com/toomanyjoshes/terminalchat/internal/storage"
	"github.com/toomanyjoshes/terminalchat/internal/store"
	"github.com/toomanyjoshes/terminalchat/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupRouter wires a fresh in-memory database, disk blob store, and the
// full route table, mirroring the production assembly in cmd/server.
func setupRouter(t *testing.T) (*gin.Engine, *store.Stores) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Log = zerolog.Nop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Message{},
		&models.UserBlock{},
		&models.Attachment{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	database.DB = db

	stores := store.New(db, 0)
	blobs, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("init blob store: %v", err)
	}
	handlers.Init(stores, blobs)

	r := gin.New()
	routes.RegisterAuthRoutes(r, stores.Sessions)
	routes.RegisterUserRoutes(r, stores.Sessions)
	routes.RegisterChatRoutes(r, stores.Sessions)
	return r, stores
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doMultipart(r *gin.Engine, path, token, field, filename, content string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile(field, filename)
	fw.Write([]byte(content))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// signupAndLogin registers a user and returns a live session token.
func signupAndLogin(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/signup", "", gin.H{"username": username, "password": "hunter22"})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup %s: status %d body %s", username, w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/login", "", gin.H{"username": username, "password": "hunter22"})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", username, w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Token == "" {
		t.Fatalf("login %s: no token in %s", username, w.Body.String())
	}
	return resp.Token
}
