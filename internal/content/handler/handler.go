package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/folioworks/folioworks/internal/content"
	"github.com/folioworks/folioworks/internal/content/service"
)

// keepAliveInterval is how often the events stream sends a comment ping to
// keep intermediaries from timing the connection out.
const keepAliveInterval = 10 * time.Second

// RegisterPublicRoutes mounts the read side: merged section models and the
// live update stream. These routes never return an error body for store
// problems; the response degrades to section defaults instead.
func RegisterPublicRoutes(r *gin.Engine, svc *service.Service) {
	r.GET("/api/content/:section", func(c *gin.Context) {
		doc, err := svc.Resolve(c.Request.Context(), c.Param("section"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
			return
		}
		c.JSON(http.StatusOK, doc)
	})

	r.GET("/api/content/:section/events", func(c *gin.Context) {
		section := c.Param("section")
		updates := make(chan content.Document, 8)
		unsub, err := svc.Watch(c.Request.Context(), section, func(doc content.Document) {
			// subscribers are invoked synchronously from Set; drop rather
			// than block when the client can't keep up
			select {
			case updates <- doc:
			default:
			}
		})
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
			return
		}
		defer unsub()

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		flusher, ok := c.Writer.(http.Flusher)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()
		for {
			select {
			case <-c.Request.Context().Done():
				return
			case doc := <-updates:
				payload, err := json.Marshal(doc)
				if err != nil {
					continue
				}
				if _, err := c.Writer.Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
					return
				}
				flusher.Flush()
			case <-ticker.C:
				if _, err := c.Writer.Write([]byte(": keep-alive\n\n")); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	})
}

type draftRequest struct {
	Draft map[string]any `json:"draft" binding:"required"`
	Index *int           `json:"index,omitempty"`
}

// RegisterAdminRoutes mounts the write side under the given (authenticated)
// group: draft seeds, full-overwrite saves, the draft list-edit helpers and
// the section registry listing.
func RegisterAdminRoutes(rg *gin.RouterGroup, svc *service.Service) {
	rg.GET("/sections", func(c *gin.Context) {
		out := make([]gin.H, 0, len(content.Sections()))
		for _, s := range content.Sections() {
			out = append(out, gin.H{"key": s.Key, "hasItems": s.HasItems, "paddedIds": s.PaddedIDs})
		}
		c.JSON(http.StatusOK, out)
	})

	rg.GET("/content/:section", func(c *gin.Context) {
		doc, err := svc.Draft(c.Request.Context(), c.Param("section"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
			return
		}
		c.JSON(http.StatusOK, doc)
	})

	rg.PUT("/content/:section", func(c *gin.Context) {
		var draft map[string]any
		if err := c.ShouldBindJSON(&draft); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := svc.Save(c.Request.Context(), c.Param("section"), content.Document(draft)); err != nil {
			if err == service.ErrUnknownSection {
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "save failed", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"saved": true})
	})

	// In-draft list edits: the posted draft comes back modified and becomes
	// durable only when the client saves it.
	rg.POST("/content/:section/draft/append-item", func(c *gin.Context) {
		var req draftRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		draft, err := svc.AppendItem(c.Param("section"), content.Document(req.Draft))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"draft": draft})
	})

	rg.POST("/content/:section/draft/remove-item", func(c *gin.Context) {
		var req draftRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "draft and index required"})
			return
		}
		draft, err := svc.RemoveItem(c.Param("section"), content.Document(req.Draft), *req.Index)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"draft": draft})
	})
}
