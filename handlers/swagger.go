package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>folioworks — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document for the portfolio content API.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "folioworks", "version": "v0.1.0" },
  "paths": {
    "/api/content/{section}": {
      "get": { "summary": "Public render model for a section (defaults merged with stored fields)", "parameters": [{"name":"section","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "merged section document" }, "404": { "description": "unknown section" } } }
    },
    "/api/content/{section}/events": {
      "get": { "summary": "Server-sent event stream of section render models", "parameters": [{"name":"section","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "text/event-stream" } } }
    },
    "/api/contact": {
      "post": { "summary": "Submit a contact message", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"email":{"type":"string"},"message":{"type":"string"}}}}}}, "responses": { "200": { "description": "accepted" }, "400": { "description": "missing field" } } }
    },
    "/api/admin/content/{section}": {
      "get": { "summary": "Editor draft seed (stored document or defaults)", "responses": { "200": { "description": "draft" } } },
      "put": { "summary": "Full-overwrite save of a section document", "responses": { "200": { "description": "saved" }, "502": { "description": "store write failed" } } }
    },
    "/api/admin/messages": {
      "get": { "summary": "List contact messages, newest first", "responses": { "200": { "description": "messages" } } }
    },
    "/api/admin/messages/{id}": {
      "delete": { "summary": "Delete a contact message", "responses": { "204": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/admin/uploads": {
      "post": { "summary": "Upload an asset and get its public URL", "responses": { "200": { "description": "url" }, "502": { "description": "host rejected the upload" } } }
    },
    "/auth/login": {
      "post": { "summary": "Admin login", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "200": { "description": "tokens returned" }, "401": { "description": "invalid credentials" } } }
    },
    "/auth/refresh": {
      "post": { "summary": "Refresh access token", "responses": { "200": { "description": "new access token" }, "401": { "description": "invalid refresh" } } }
    },
    "/auth/logout": {
      "post": { "summary": "Logout and invalidate refresh token", "responses": { "200": { "description": "logged out" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
