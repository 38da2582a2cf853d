package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/fitapp/fitapp/internal/db"
	"github.com/fitapp/fitapp/internal/i18n"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testApp struct {
	app      *fiber.App
	handler  *Handler
	database *gorm.DB
}

func newTestApp(t *testing.T, options HandlerOptions) *testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "fitapp-api.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	if options.PasswordCost == 0 {
		options.PasswordCost = bcrypt.MinCost
	}
	if options.Location == nil {
		options.Location = time.UTC
	}

	handler, err := NewHandler(database, i18nManager, options)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(RequestID)
	RegisterRoutes(app, handler)

	return &testApp{app: app, handler: handler, database: database}
}

func (ta *testApp) request(t *testing.T, method string, path string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	content, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return response, content
}

func (ta *testApp) mustStatus(t *testing.T, method string, path string, body any, want int) []byte {
	t.Helper()

	response, content := ta.request(t, method, path, body, nil)
	if response.StatusCode != want {
		t.Fatalf("%s %s: expected status %d, got %d: %s", method, path, want, response.StatusCode, string(content))
	}
	return content
}

func decodeJSON[T any](t *testing.T, content []byte) T {
	t.Helper()

	var value T
	if err := json.Unmarshal(content, &value); err != nil {
		t.Fatalf("decode json %s: %v", string(content), err)
	}
	return value
}

func registrationBody(email string) map[string]any {
	return map[string]any{
		"email":          email,
		"password":       "StrongPass1",
		"height":         175,
		"weight":         70,
		"age":            30,
		"gender":         "male",
		"username":       "alex",
		"activity_level": 3,
	}
}

func (ta *testApp) registerUser(t *testing.T, email string) uint {
	t.Helper()

	content := ta.mustStatus(t, http.MethodPost, "/register", registrationBody(email), http.StatusCreated)
	payload := decodeJSON[struct {
		Message string `json:"message"`
		UserID  uint   `json:"user_id"`
	}](t, content)
	if payload.UserID == 0 {
		t.Fatalf("expected user id in registration response, got %s", string(content))
	}
	return payload.UserID
}

func (ta *testApp) countRows(t *testing.T, table string, userID uint) int64 {
	t.Helper()

	var count int64
	if err := ta.database.Table(table).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("count %s rows: %v", table, err)
	}
	return count
}

func itoa(value uint) string {
	return strconv.FormatUint(uint64(value), 10)
}
