package handlers

import (
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxUploadBytes = 10 << 20 // 10 MB

// allowedUploadTypes maps accepted mime types to the media kind stored on
// the post.
var allowedUploadTypes = map[string]string{
	"image/jpeg":      "image",
	"image/png":       "image",
	"image/gif":       "image",
	"image/webp":      "image",
	"video/mp4":       "video",
	"video/webm":      "video",
	"application/pdf": "pdf",
}

// UploadMedia pushes a post attachment to Cloudinary and returns its URL and
// kind. The upload is the point of the endpoint, so its failure is fatal to
// the request.
func UploadMedia(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form data"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	kind, ok := allowedUploadTypes[header.Header.Get("Content-Type")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type"})
		return
	}
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large (max 10MB)"})
		return
	}

	cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cloudinary configuration error"})
		return
	}

	// PDFs go up as raw assets; Cloudinary only transforms images and video.
	resourceType := kind
	if kind == "pdf" {
		resourceType = "raw"
	}

	ctx, cancel := reqContext()
	defer cancel()

	result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       "blog-uploads",
		ResourceType: resourceType,
	})
	if err != nil {
		logrus.WithError(err).Error("media upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":  result.SecureURL,
		"type": kind,
	})
}
