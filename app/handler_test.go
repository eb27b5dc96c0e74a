package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/bloglist/internal/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type blogResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	User   *struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Name     string `json:"name"`
	} `json:"user"`
}

var initialBlogs = []map[string]any{
	{"title": "Tatum 4 mvp", "author": "Celticsfan1", "url": "nba.com", "likes": 18},
	{"title": "Blog 2", "author": "Someone", "url": "example.com", "likes": 10},
}

func countDocuments(t *testing.T, db *mongo.Database, collection string) int64 {
	t.Helper()

	n, err := db.Collection(collection).CountDocuments(context.Background(), bson.M{})
	require.NoError(t, err)

	return n
}

// createUserAndLogin registers a user through the API and returns its token.
func createUserAndLogin(t *testing.T, ts *testServer, username, name string) string {
	t.Helper()

	code, _, body := ts.do(t, http.MethodPost, "/api/v1/users", "", map[string]any{"username": username, "name": name, "password": "sekret"})
	require.Equal(t, http.StatusCreated, code, string(body))

	code, _, body = ts.do(t, http.MethodPost, "/api/v1/login", "", map[string]any{"username": username, "password": "sekret"})
	require.Equal(t, http.StatusOK, code, string(body))

	login := decode[map[string]string](t, body)
	assert.Equal(t, username, login["username"])
	assert.Equal(t, name, login["name"])
	require.NotEmpty(t, login["token"])

	return login["token"]
}

func seedBlogs(t *testing.T, ts *testServer, token string) []blogResponse {
	t.Helper()

	blogs := make([]blogResponse, 0, len(initialBlogs))
	for _, b := range initialBlogs {
		code, _, body := ts.do(t, http.MethodPost, "/api/v1/blogs", token, b)
		require.Equal(t, http.StatusCreated, code, string(body))
		blogs = append(blogs, decode[blogResponse](t, body))
	}

	return blogs
}

func TestBlogHandlers(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	root := createUserAndLogin(t, ts, "root", "Superuser")
	other := createUserAndLogin(t, ts, "mluukkai", "Matti Luukkainen")
	seeded := seedBlogs(t, ts, root)

	t.Run("blogs are returned as json with id", func(t *testing.T) {
		code, header, body := ts.do(t, http.MethodGet, "/api/v1/blogs", "", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, header.Get("Content-Type"), "application/json")

		raw := decode[[]map[string]any](t, body)
		require.Len(t, raw, len(initialBlogs))
		for _, b := range raw {
			assert.Contains(t, b, "id")
			assert.NotContains(t, b, "_id")
			assert.NotContains(t, b, "__v")
		}

		blogs := decode[[]blogResponse](t, body)
		assert.Equal(t, "root", blogs[0].User.Username)
	})

	t.Run("single blog", func(t *testing.T) {
		code, _, body := ts.do(t, http.MethodGet, "/api/v1/blogs/"+seeded[0].ID, "", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Tatum 4 mvp", decode[blogResponse](t, body).Title)

		code, _, _ = ts.do(t, http.MethodGet, "/api/v1/blogs/65f1c0ffee0000000000dead", "", nil)
		assert.Equal(t, http.StatusNotFound, code)

		code, _, body = ts.do(t, http.MethodGet, "/api/v1/blogs/12345", "", nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.JSONEq(t, `{"error": "malformatted id"}`, string(body))
	})

	t.Run("likes default to zero", func(t *testing.T) {
		code, _, body := ts.do(t, http.MethodPost, "/api/v1/blogs", root, map[string]any{"title": "Deebo Trade", "author": "John MiddleKauff", "url": "espn.com"})
		require.Equal(t, http.StatusCreated, code, string(body))

		created := decode[blogResponse](t, body)
		assert.Equal(t, 0, created.Likes)
		assert.Equal(t, "root", created.User.Username)

		code, _, body = ts.do(t, http.MethodPost, "/api/v1/blogs", root, map[string]any{"title": "No likes", "url": "nolikes.com", "likes": ""})
		require.Equal(t, http.StatusCreated, code, string(body))
		assert.Equal(t, 0, decode[blogResponse](t, body).Likes)
	})

	t.Run("blog without title or url is rejected", func(t *testing.T) {
		before := countDocuments(t, db, common.BlogCollection)

		code, _, body := ts.do(t, http.MethodPost, "/api/v1/blogs", root, map[string]any{"author": "Author who doesnt like titles", "likes": 20})
		assert.Equal(t, http.StatusBadRequest, code)

		resp := decode[map[string]any](t, body)
		assert.Equal(t, "title must be provided; url must be provided", resp["error"])
		assert.Equal(t, map[string]any{"title": "must be provided", "url": "must be provided"}, resp["fields"])

		assert.Equal(t, before, countDocuments(t, db, common.BlogCollection))
	})

	t.Run("created blog is added to the owner", func(t *testing.T) {
		code, _, body := ts.do(t, http.MethodGet, "/api/v1/users", "", nil)
		require.Equal(t, http.StatusOK, code)

		users := decode[[]map[string]any](t, body)
		require.Len(t, users, 2)
		assert.Equal(t, "root", users[0]["username"])
		assert.NotContains(t, users[0], "passwordHash")
		assert.NotContains(t, users[0], "password")

		blogs := users[0]["blogs"].([]any)
		require.Len(t, blogs, 4)
		assert.Equal(t, "Tatum 4 mvp", blogs[0].(map[string]any)["title"])
		assert.Empty(t, users[1]["blogs"])
	})

	t.Run("update likes", func(t *testing.T) {
		target := seeded[0]
		update := map[string]any{"title": target.Title, "author": target.Author, "url": target.URL, "likes": target.Likes + 1}

		code, _, _ := ts.do(t, http.MethodPut, "/api/v1/blogs/"+target.ID, other, update)
		assert.Equal(t, http.StatusUnauthorized, code)

		code, _, body := ts.do(t, http.MethodPut, "/api/v1/blogs/"+target.ID, root, update)
		require.Equal(t, http.StatusOK, code, string(body))

		code, _, body = ts.do(t, http.MethodGet, "/api/v1/blogs/"+target.ID, "", nil)
		require.Equal(t, http.StatusOK, code)

		got := decode[blogResponse](t, body)
		assert.Equal(t, 19, got.Likes)
		assert.Equal(t, target.Title, got.Title)
		assert.Equal(t, target.URL, got.URL)

		code, _, _ = ts.do(t, http.MethodPut, "/api/v1/blogs/65f1c0ffee0000000000dead", root, update)
		assert.Equal(t, http.StatusNotFound, code)

		// a client may send back the blog it fetched, id and user included
		echoed := decode[map[string]any](t, body)
		echoed["likes"] = 20
		echoed["id"] = "65f1c0ffee0000000000dead"
		code, _, body = ts.do(t, http.MethodPut, "/api/v1/blogs/"+target.ID, root, echoed)
		require.Equal(t, http.StatusOK, code, string(body))

		got = decode[blogResponse](t, body)
		assert.Equal(t, target.ID, got.ID)
		assert.Equal(t, 20, got.Likes)
		assert.Equal(t, "root", got.User.Username)
	})

	t.Run("delete", func(t *testing.T) {
		target := seeded[1]
		before := countDocuments(t, db, common.BlogCollection)

		code, _, _ := ts.do(t, http.MethodDelete, "/api/v1/blogs/"+target.ID, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code)

		code, _, body := ts.do(t, http.MethodDelete, "/api/v1/blogs/"+target.ID, other, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.JSONEq(t, `{"error": "only the creator can modify a blog"}`, string(body))

		code, _, body = ts.do(t, http.MethodDelete, "/api/v1/blogs/65f1c0ffee0000000000dead", root, nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.JSONEq(t, `{"error": "blog does not exist"}`, string(body))

		assert.Equal(t, before, countDocuments(t, db, common.BlogCollection))

		code, _, _ = ts.do(t, http.MethodDelete, "/api/v1/blogs/"+target.ID, root, nil)
		assert.Equal(t, http.StatusNoContent, code)
		assert.Equal(t, before-1, countDocuments(t, db, common.BlogCollection))

		code, _, body = ts.do(t, http.MethodGet, "/api/v1/blogs", "", nil)
		require.Equal(t, http.StatusOK, code)
		for _, b := range decode[[]blogResponse](t, body) {
			assert.NotEqual(t, target.Title, b.Title)
		}

		// the owner's listing skips the deleted blog
		code, _, body = ts.do(t, http.MethodGet, "/api/v1/users", "", nil)
		require.Equal(t, http.StatusOK, code)
		users := decode[[]map[string]any](t, body)
		assert.Len(t, users[0]["blogs"], 3)
	})

	t.Run("stats", func(t *testing.T) {
		code, _, body := ts.do(t, http.MethodGet, "/api/v1/stats", "", nil)
		require.Equal(t, http.StatusOK, code)

		stats := decode[map[string]any](t, body)
		assert.EqualValues(t, 3, stats["blogs"])
		assert.EqualValues(t, 20, stats["total_likes"])
		assert.Equal(t, "Tatum 4 mvp", stats["favorite_blog"].(map[string]any)["title"])
	})
}

func TestUserHandlers(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	createUserAndLogin(t, ts, "root", "Superuser")

	tests := []struct {
		name        string
		payload     map[string]any
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "fresh username",
			payload:    map[string]any{"username": "mluukkai", "name": "Matti Luukkainen", "password": "salainen"},
			wantStatus: http.StatusCreated,
		},
		{
			name:        "username too short",
			payload:     map[string]any{"username": "ro", "name": "Superuser", "password": "salainen"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "username is too short (minimum length is 3)",
		},
		{
			name:        "password too short",
			payload:     map[string]any{"username": "hellas", "name": "Arto Hellas", "password": "sa"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "password is too short (minimum length is 3)",
		},
		{
			name:        "username taken",
			payload:     map[string]any{"username": "root", "name": "Superuser", "password": "salainen"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "username is not unique",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := countDocuments(t, db, common.UserCollection)

			code, _, body := ts.do(t, http.MethodPost, "/api/v1/users", "", tt.payload)
			require.Equal(t, tt.wantStatus, code, string(body))

			resp := decode[map[string]any](t, body)
			if tt.wantStatus != http.StatusCreated {
				assert.Equal(t, tt.wantMessage, resp["error"])
				assert.Equal(t, before, countDocuments(t, db, common.UserCollection))
				return
			}

			assert.Equal(t, before+1, countDocuments(t, db, common.UserCollection))
			assert.Equal(t, tt.payload["username"], resp["username"])
			assert.Equal(t, []any{}, resp["blogs"])
			assert.NotContains(t, resp, "password")
			assert.NotContains(t, resp, "passwordHash")
		})
	}

	t.Run("login with wrong password", func(t *testing.T) {
		code, _, body := ts.do(t, http.MethodPost, "/api/v1/login", "", map[string]any{"username": "root", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.JSONEq(t, `{"error": "invalid username or password"}`, string(body))
	})

	t.Run("login with unknown user", func(t *testing.T) {
		code, _, _ := ts.do(t, http.MethodPost, "/api/v1/login", "", map[string]any{"username": "nobody", "password": "sekret"})
		assert.Equal(t, http.StatusUnauthorized, code)
	})
}
