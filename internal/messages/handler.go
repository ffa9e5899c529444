package messages

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folioworks/folioworks/pkg/logger"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// RegisterPublicRoutes mounts the contact intake endpoint.
func RegisterPublicRoutes(r *gin.Engine, svc *Service) {
	r.POST("/api/contact", func(c *gin.Context) {
		var req contactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		if problems := Validate(req.Name, req.Email, req.Message); len(problems) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required", "fields": problems})
			return
		}
		if _, err := svc.Submit(c.Request.Context(), req.Name, req.Email, req.Message); err != nil {
			logger.Errorf("contact submission failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not send your message, please try again later"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Thanks for reaching out — I'll get back to you soon."})
	})
}

// RegisterAdminRoutes mounts the operator view: list newest-first, delete by
// id. The admin client drops deleted rows optimistically; the API only needs
// to remove the record.
func RegisterAdminRoutes(rg *gin.RouterGroup, svc *Service) {
	rg.GET("/messages", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "listing failed", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	rg.DELETE("/messages/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			if err == ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "delete failed", "details": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	})
}
