package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/userservice"
	"go.mongodb.org/mongo-driver/mongo"
)

const testJWTSecret = "test-secret"

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func testConfig() *Config {
	return &Config{
		Port:           ":0",
		Environment:    "testing",
		Version:        "1.0.0",
		TrustedOrigins: []string{"http://localhost:5173"},
		JWTSecret:      testJWTSecret,
		JWTTTL:         time.Hour,
		CacheTTL:       time.Minute,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newUnitApplication returns an application without a database. Only code paths
// that never reach the stores may be exercised with it.
func newUnitApplication(t *testing.T) *application {
	t.Helper()

	tokens := userservice.NewTokenMaker(testJWTSecret, time.Hour)

	return &application{
		config:      testConfig(),
		logger:      testLogger(),
		metrics:     newMetrics(),
		userService: userservice.NewUserService(nil, nil, nil, tokens),
	}
}

func newTestApplication(t *testing.T) (*application, *mongo.Database) {
	t.Helper()

	db := common.TestDB("file://../migrations", t)
	cfg := testConfig()
	cache := common.NewCache(cfg.CacheTTL, 2*cfg.CacheTTL)

	userService := userservice.NewUserService(userservice.NewUserModel(db), nil, cache, userservice.NewTokenMaker(cfg.JWTSecret, cfg.JWTTTL))

	app := &application{
		config:      cfg,
		logger:      testLogger(),
		metrics:     newMetrics(),
		userService: userService,
		blogService: blogservice.NewBlogService(blogservice.NewBlogModel(db), userService, cache),
	}

	return app, db
}

func (ts *testServer) do(t *testing.T, method, path string, token string, payload any) (int, http.Header, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		js, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(js)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, responseBody
}

// decode unmarshals a response body into dst, failing the test on error.
func decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var dst T
	if err := json.Unmarshal(body, &dst); err != nil {
		t.Fatalf("could not decode %q: %v", body, err)
	}

	return dst
}
