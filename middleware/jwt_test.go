package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"ocms/config"
	"ocms/database"
	"ocms/models"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int

func setupMiddlewareTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:        "test-secret",
		TokenTTLHours: 1,
	}

	testDBCounter++
	dsn := fmt.Sprintf("file:mwtest%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		user, _ := CurrentUser(c)
		return JsonResponse(c, fiber.StatusOK, true, "ok", user.Email)
	})
	app.Get("/admin-only", JWTMiddleware, RequireAdmin, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", nil)
	})
	return app
}

func createUser(t *testing.T, email, role string, active bool) (models.User, string) {
	t.Helper()

	user := models.User{Email: email, Password: "irrelevant", Role: role, IsActive: active}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := GenerateJWT(user.ID, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func request(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	app := setupMiddlewareTest(t)
	_, token := createUser(t, "user@example.com", models.RoleStudent, true)

	resp := request(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareRejectsMissingOrMalformedHeader(t *testing.T) {
	app := setupMiddlewareTest(t)
	_, token := createUser(t, "user@example.com", models.RoleStudent, true)

	resp := request(t, app, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = request(t, app, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = request(t, app, "/protected", "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareRejectsWrongKey(t *testing.T) {
	app := setupMiddlewareTest(t)

	config.AppConfig.JWTKey = "other-secret"
	_, token := createUser(t, "user@example.com", models.RoleStudent, true)
	config.AppConfig.JWTKey = "test-secret"

	resp := request(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareRefetchesUserState(t *testing.T) {
	app := setupMiddlewareTest(t)
	user, token := createUser(t, "user@example.com", models.RoleStudent, true)

	// Deactivation invalidates existing tokens immediately.
	require.NoError(t, database.Database.Db.Model(&user).Update("is_active", false).Error)
	resp := request(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// So does a soft delete.
	require.NoError(t, database.Database.Db.Model(&user).
		Updates(map[string]interface{}{"is_active": true, "is_deleted": true}).Error)
	resp = request(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoles(t *testing.T) {
	app := setupMiddlewareTest(t)
	_, studentToken := createUser(t, "student@example.com", models.RoleStudent, true)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin, true)

	resp := request(t, app, "/admin-only", "Bearer "+studentToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = request(t, app, "/admin-only", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoleCheckUsesDatabaseRoleNotClaims(t *testing.T) {
	app := setupMiddlewareTest(t)
	user, _ := createUser(t, "promoted@example.com", models.RoleStudent, true)

	// Token minted with a forged admin role claim.
	forged, err := GenerateJWT(user.ID, models.RoleAdmin, user.Email)
	require.NoError(t, err)

	resp := request(t, app, "/admin-only", "Bearer "+forged)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
