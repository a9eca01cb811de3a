package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/actionanand/Ctrl-Alt-Del/internal/auth"
	"github.com/actionanand/Ctrl-Alt-Del/internal/models"
	"github.com/actionanand/Ctrl-Alt-Del/internal/repository"
	"github.com/actionanand/Ctrl-Alt-Del/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "Str0ng!Pass"

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingNotifier struct {
	mu            sync.Mutex
	welcomed      []string
	cancellations []string
}

func (n *recordingNotifier) Welcome(email, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcomed = append(n.welcomed, email)
}

func (n *recordingNotifier) Cancellation(email, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancellations = append(n.cancellations, email)
}

type handlerTestEnv struct {
	db       *gorm.DB
	store    *repository.Store
	router   *gin.Engine
	notifier *recordingNotifier
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()

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

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserToken{}, &models.Task{}))

	store := repository.NewStore(db)
	notifier := &recordingNotifier{}
	tokenService := services.NewTokenService(store, auth.NewSigner("test-secret"))
	userService := services.NewUserService(store, tokenService, notifier)
	taskService := services.NewTaskService(store)

	r := gin.New()
	RegisterRoutes(r,
		tokenService,
		NewUserHandler(userService, tokenService),
		taskService,
		NewTaskHandler(taskService),
	)

	return handlerTestEnv{
		db:       db,
		store:    store,
		router:   r,
		notifier: notifier,
	}
}

func (env handlerTestEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

type authBody struct {
	User  map[string]interface{} `json:"user"`
	Token string                 `json:"token"`
}

func (env handlerTestEnv) signup(t *testing.T, email string) authBody {
	t.Helper()

	w := env.do(http.MethodPost, "/users", "", map[string]interface{}{
		"name":     "Tester",
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body authBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder, key string) string {
	t.Helper()

	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body[key]["message"]
}
