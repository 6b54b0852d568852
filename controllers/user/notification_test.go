package userController_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"ocms/config"
	"ocms/database"
	"ocms/middleware"
	"ocms/models"
	userRoutes "ocms/routers/userRoutes"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int

func setupNotificationApp(t *testing.T) (*fiber.App, models.User, string) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:        "test-secret",
		TokenTTLHours: 1,
	}

	testDBCounter++
	dsn := fmt.Sprintf("file:notiftest%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	user := models.User{Email: "user@example.com", Password: "x", Role: models.RoleStudent, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.StudentProfile{UserID: user.ID}).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Role, user.Email)
	require.NoError(t, err)

	app := fiber.New()
	userRoutes.SetupUserRoutes(app)
	return app, user, token
}

func notificationRequest(t *testing.T, app *fiber.App, method, path, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	envelope := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func seedNotification(t *testing.T, userID uint, read bool) models.Notification {
	t.Helper()

	notif := models.Notification{UserID: userID, Title: "Hello", Message: "World", Type: "INFO", IsRead: read}
	require.NoError(t, database.Database.Db.Create(&notif).Error)
	return notif
}

func TestGetNotifications(t *testing.T) {
	app, user, token := setupNotificationApp(t)
	seedNotification(t, user.ID, false)
	seedNotification(t, user.ID, true)

	resp, envelope := notificationRequest(t, app, "GET", "/api/notifications/", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["unread"])
	assert.Len(t, data["notifications"].([]interface{}), 2)
}

func TestMarkNotificationRead(t *testing.T) {
	app, user, token := setupNotificationApp(t)
	notif := seedNotification(t, user.ID, false)

	resp, _ := notificationRequest(t, app, "POST", fmt.Sprintf("/api/notifications/%d/read", notif.ID), token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, database.Database.Db.First(&notif, notif.ID).Error)
	assert.True(t, notif.IsRead)

	// Unknown ids 404.
	resp, _ = notificationRequest(t, app, "POST", "/api/notifications/9999/read", token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMarkNotificationReadOwnershipEnforced(t *testing.T) {
	app, _, token := setupNotificationApp(t)

	other := models.User{Email: "other@example.com", Password: "x", Role: models.RoleStudent, IsActive: true}
	require.NoError(t, database.Database.Db.Create(&other).Error)
	foreign := seedNotification(t, other.ID, false)

	resp, _ := notificationRequest(t, app, "POST", fmt.Sprintf("/api/notifications/%d/read", foreign.ID), token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	require.NoError(t, database.Database.Db.First(&foreign, foreign.ID).Error)
	assert.False(t, foreign.IsRead)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	app, user, token := setupNotificationApp(t)
	seedNotification(t, user.ID, false)
	seedNotification(t, user.ID, false)

	resp, _ := notificationRequest(t, app, "POST", "/api/notifications/read-all", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var unread int64
	database.Database.Db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).Count(&unread)
	assert.Equal(t, int64(0), unread)
}
