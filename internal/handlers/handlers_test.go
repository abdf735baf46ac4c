package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/study-planner-api/internal/constants"
	"github.com/yukikurage/study-planner-api/internal/middleware"
	"github.com/yukikurage/study-planner-api/internal/models"
	"github.com/yukikurage/study-planner-api/internal/ratelimit"
	"github.com/yukikurage/study-planner-api/internal/repository"
	"github.com/yukikurage/study-planner-api/internal/services"
	"github.com/yukikurage/study-planner-api/internal/web"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv is a fully wired engine over an in-memory database.
type testEnv struct {
	db              *gorm.DB
	router          *gin.Engine
	authService     *services.AuthService
	taskService     *services.TaskService
	keyPointService *services.KeyPointService
}

type envOptions struct {
	chat    services.ChatConfig
	limiter ratelimit.Limiter
}

func setupTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}, &models.KeyPoint{}))

	log := logrus.New()
	log.SetOutput(io.Discard)

	env := &testEnv{
		db:              db,
		authService:     services.NewAuthService(repository.NewUserRepository(db)),
		taskService:     services.NewTaskService(repository.NewTaskRepository(db)),
		keyPointService: services.NewKeyPointService(repository.NewKeyPointRepository(db)),
	}

	authHandler := NewAuthHandler(env.authService)
	taskHandler := NewTaskHandler(env.taskService)
	keyPointHandler := NewKeyPointHandler(env.keyPointService)
	exportHandler := NewExportHandler(services.NewExportService(repository.NewTaskRepository(db)))
	studyBotHandler := NewStudyBotHandler(services.NewChatService(opts.chat, log), opts.limiter, time.Second)
	dashboardHandler := NewDashboardHandler(env.authService, env.taskService, env.keyPointService)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.SetHTMLTemplate(web.Templates())

	// sets the session directly so tests can act as any user
	r.GET("/test/session/:id", func(c *gin.Context) {
		var id uint64
		_, err := fmt.Sscan(c.Param("id"), &id)
		require.NoError(t, err)
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, id)
		require.NoError(t, session.Save())
	})

	r.GET("/", authHandler.Index)
	r.GET("/register", authHandler.RegisterPage)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)

	protected := r.Group("", middleware.RequireAuth())
	protected.GET("/logout", authHandler.Logout)
	protected.GET("/dashboard", dashboardHandler.Show)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.POST("/studybot", studyBotHandler.Chat)
	protected.GET("/api/me", authHandler.GetCurrentUser)
	protected.GET("/api/tasks", taskHandler.ListTasks)
	protected.POST("/api/tasks", taskHandler.CreateTask)
	protected.DELETE("/api/tasks", taskHandler.DeleteTask)
	protected.GET("/api/tasks/:id", middleware.RequireTaskID(), taskHandler.GetTask)
	protected.PUT("/api/tasks/:id", middleware.RequireTaskID(), taskHandler.UpdateTask)
	protected.POST("/api/tasks/:id/complete", middleware.RequireTaskID(), taskHandler.ToggleComplete)
	protected.GET("/api/keypoints", keyPointHandler.ListKeyPoints)
	protected.POST("/api/keypoints", keyPointHandler.CreateKeyPoint)
	protected.DELETE("/api/keypoints", keyPointHandler.DeleteKeyPoint)

	env.router = r
	return env
}

func (env *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := env.authService.Register(services.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	return user
}

// sessionFor returns the cookies of a session bound to userID.
func (env *testEnv) sessionFor(t *testing.T, userID uint64) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/test/session/%d", userID), nil))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) postForm(t *testing.T, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
