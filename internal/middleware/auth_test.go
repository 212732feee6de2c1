package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"reviewin_backend/internal/config"
	"reviewin_backend/internal/model"
	"reviewin_backend/internal/repository"
	"reviewin_backend/internal/service"
	"reviewin_backend/internal/util"
	"reviewin_backend/pkg/database"
)

const testSecret = "middleware-test-secret-32-chars!"

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            testSecret,
			AccessExpireTime:  time.Hour,
			RefreshExpireTime: 2 * time.Hour,
		},
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func protectedRouter(t *testing.T, db *gorm.DB, blocklist service.TokenBlocklist, roles ...model.UserRole) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected",
		AuthMiddleware(testConfig(), blocklist),
		RoleMiddleware(repository.NewUserRepository(db), roles...),
		func(c *gin.Context) {
			user := util.GetCurrentUser(c)
			c.JSON(http.StatusOK, gin.H{"user_id": user.ID})
		},
	)
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	db := setupTestDB(t)
	blocklist := service.NewMemoryBlocklist()
	router := protectedRouter(t, db, blocklist)

	user := &model.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "x", Role: model.RoleStudent}
	require.NoError(t, db.Create(user).Error)

	t.Run("missing token", func(t *testing.T) {
		w := doRequest(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(router, "not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid access token", func(t *testing.T) {
		token, err := util.GenerateJWT(user, util.TokenTypeAccess, testSecret, time.Hour)
		require.NoError(t, err)

		w := doRequest(router, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		token, err := util.GenerateJWT(user, util.TokenTypeRefresh, testSecret, time.Hour)
		require.NoError(t, err)

		w := doRequest(router, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("revoked token rejected", func(t *testing.T) {
		token, err := util.GenerateJWT(user, util.TokenTypeAccess, testSecret, time.Hour)
		require.NoError(t, err)
		claims, err := util.ParseJWT(token, testSecret)
		require.NoError(t, err)
		require.NoError(t, blocklist.Revoke(context.Background(), claims.ID, time.Hour))

		w := doRequest(router, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deleted account rejected", func(t *testing.T) {
		ghost := &model.User{Name: "Ghost", Email: "ghost@example.com", PasswordHash: "x", Role: model.RoleStudent}
		require.NoError(t, db.Create(ghost).Error)
		token, err := util.GenerateJWT(ghost, util.TokenTypeAccess, testSecret, time.Hour)
		require.NoError(t, err)
		require.NoError(t, db.Delete(&model.User{}, ghost.ID).Error)

		w := doRequest(router, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRoleMiddleware(t *testing.T) {
	db := setupTestDB(t)
	blocklist := service.NewMemoryBlocklist()
	teacherOnly := protectedRouter(t, db, blocklist, model.RoleTeacher)

	student := &model.User{Name: "Student", Email: "s@example.com", PasswordHash: "x", Role: model.RoleStudent}
	teacher := &model.User{Name: "Teacher", Email: "t@example.com", PasswordHash: "x", Role: model.RoleTeacher}
	require.NoError(t, db.Create(student).Error)
	require.NoError(t, db.Create(teacher).Error)

	studentToken, err := util.GenerateJWT(student, util.TokenTypeAccess, testSecret, time.Hour)
	require.NoError(t, err)
	teacherToken, err := util.GenerateJWT(teacher, util.TokenTypeAccess, testSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(teacherOnly, studentToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(teacherOnly, teacherToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
