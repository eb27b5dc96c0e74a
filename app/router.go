package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/api/v1/healthcheck", app.healthCheckHandler)

	// blog service
	router.HandlerFunc(http.MethodGet, "/api/v1/blogs", app.listBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/api/v1/blogs", app.requireAuthUser(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/api/v1/stats", app.blogStatsHandler)
	router.HandlerFunc(http.MethodGet, "/api/v1/blogs/:id", app.getBlogHandler)
	router.HandlerFunc(http.MethodPut, "/api/v1/blogs/:id", app.requireAuthUser(app.updateBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/api/v1/blogs/:id", app.requireAuthUser(app.deleteBlogHandler))

	// user service
	router.HandlerFunc(http.MethodGet, "/api/v1/users", app.listUsersHandler)
	router.HandlerFunc(http.MethodPost, "/api/v1/users", app.createUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/v1/login", app.loginUserHandler)

	router.Handler(http.MethodGet, "/metrics", app.metrics.handler())

	return app.recoverPanic(app.metrics.instrument(app.logRequest(app.enableCORS(app.rateLimit(app.authenticate(router))))))
}
