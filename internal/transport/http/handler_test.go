package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"streamflix/internal/application/usecase"
	"streamflix/internal/infrastructure/cache"
	"streamflix/internal/infrastructure/repository"
	"streamflix/internal/infrastructure/security"
	"streamflix/internal/logger"
	"streamflix/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logger.Discard()

	db := testutil.NewTestDB(t)
	store := repository.NewStore(db)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	authUC, err := usecase.NewAuthUseCase(log, store,
		security.NewPasswordHasherWithCost(bcrypt.MinCost),
		security.NewTokenManager("test-secret", time.Hour),
		cache.NewTokenCache(rdb),
	)
	require.NoError(t, err)

	h := Handlers{
		Auth:         NewAuthHandler(log, authUC),
		Profile:      NewProfileHandler(log, usecase.NewProfileUseCase(log, store)),
		Watchlist:    NewWatchlistHandler(log, usecase.NewWatchlistUseCase(log, store)),
		History:      NewHistoryHandler(log, usecase.NewHistoryUseCase(log, store)),
		Subscription: NewSubscriptionHandler(log, usecase.NewSubscriptionUseCase(log, store)),
		Avatar:       NewAvatarHandler(log, usecase.NewAvatarUseCase(log, store, cache.NewAvatarCache(rdb, time.Minute))),
	}
	return &testServer{router: NewRouter(log, h, authUC, nil), db: db}
}

func (s *testServer) do(t *testing.T, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

type authBody struct {
	Message     string       `json:"message"`
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

func (s *testServer) register(t *testing.T, email string) authBody {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/register", gin.H{"email": email, "password": "secret"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[authBody](t, w)
}

func (s *testServer) createProfile(t *testing.T, userID uint, name string) uint {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/profiles", gin.H{"user_id": userID, "name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[struct {
		ID uint `json:"id"`
	}](t, w).ID
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
