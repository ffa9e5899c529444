package uploads

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folioworks/folioworks/pkg/metrics"
)

// Uploader is whatever can take a file and return its public URL: the
// remote-host Client or the MinIO-backed MediaStore.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader, size int64, resourceKind string) (string, error)
}

// RegisterAdminRoutes mounts the asset upload route on the authenticated
// admin group. On failure the host's message is returned as-is and nothing
// is written anywhere; the caller's image field stays untouched.
func RegisterAdminRoutes(rg *gin.RouterGroup, up Uploader) {
	rg.POST("/uploads", func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
			return
		}
		kind := c.PostForm("kind")

		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
			return
		}
		defer f.Close()

		url, err := up.Upload(c.Request.Context(), fh.Filename, f, fh.Size, kind)
		if err != nil {
			metrics.Uploads.WithLabelValues("error").Inc()
			if ue, ok := err.(*UploadError); ok {
				c.JSON(http.StatusBadGateway, gin.H{"error": ue.Message})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
			return
		}
		metrics.Uploads.WithLabelValues("ok").Inc()
		c.JSON(http.StatusOK, gin.H{"url": url})
	})
}
