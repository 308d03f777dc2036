package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"Pickme/api/bracket"
	"Pickme/api/config"
	"Pickme/api/metrics"
	"Pickme/api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAdminKey = "secret"

var clientSeq atomic.Uint32

func setupServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	server := &Server{
		DB:       db,
		Registry: prometheus.NewRegistry(),
		Logger:   zap.NewNop(),
		Config: config.Config{
			AdminKey:         testAdminKey,
			AllowedOrigins:   []string{"http://localhost:3000"},
			SeedCatalogTopic: "singer",
			SessionTTL:       time.Hour,
		},
	}
	server.Metrics = metrics.New(server.Registry)
	server.Sessions = newSessionStore(time.Hour, server.Metrics, server.Logger, bracket.WithShuffler(bracket.Identity))
	server.initializeRouter()
	return server
}

func seedCatalog(t *testing.T, db *gorm.DB, titles ...string) *models.Catalog {
	t.Helper()
	catalog := models.Catalog{Title: "Pick Me Cup", Topic: "singer"}
	for _, title := range titles {
		catalog.Items = append(catalog.Items, models.CatalogItem{
			Title:     title,
			MediaLink: "https://www.youtube.com/watch?v=" + title,
		})
	}
	catalog.Prepare()
	saved, err := catalog.SaveCatalog(db)
	require.NoError(t, err)
	return saved
}

type requestOption func(*http.Request)

func withHeader(key, value string) requestOption {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

// performRequest sends each request from its own client address so the
// per-IP rate limits never kick in.
func performRequest(server *Server, method, path string, body []byte, opts ...requestOption) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	n := clientSeq.Add(1)
	req.RemoteAddr = fmt.Sprintf("10.%d.%d.%d:4000", (n>>16)&0xff, (n>>8)&0xff, n&0xff)
	for _, opt := range opts {
		opt(req)
	}
	w := httptest.NewRecorder()
	server.Router.ServeHTTP(w, req)
	return w
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func decodeResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Status   int `json:"status"`
		Response T   `json:"response"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	return envelope.Response
}
