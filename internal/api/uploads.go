package api

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadImage handles POST /api/uploads. It stores a menu asset (dish
// photo, branch or branding logo, badge icon) and returns its public URL
// for use in image_url / logo_url fields. Uploads go to S3 when
// S3_BUCKET_NAME is set, to the local uploads dir otherwise.
func (h *Handler) UploadImage(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	file, fileHeader, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}
	defer file.Close()

	if fileHeader.Size > 10*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file too large (max 10MB)"})
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !isValidImageType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image type. Supported: JPEG, PNG, WebP"})
		return
	}

	ext := filepath.Ext(fileHeader.Filename)
	objectKey := fmt.Sprintf("uploads/%s%s", uuid.NewString(), ext)

	var imageURL string
	if os.Getenv("S3_BUCKET_NAME") != "" {
		imageURL, err = h.uploadToS3(ctx, objectKey, file)
	} else {
		imageURL, err = h.uploadToLocal(objectKey, file)
	}
	if err != nil {
		log.Printf("Failed to store uploaded image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"image_url": imageURL})
}

// uploadToS3 stores an upload in the configured bucket and returns its
// public URL (CDN base when ASSETS_CDN_BASE_URL is set).
func (h *Handler) uploadToS3(ctx context.Context, objectKey string, file multipart.File) (string, error) {
	if _, err := file.Seek(0, 0); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	if region == "" {
		region = "eu-central-1"
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return "", fmt.Errorf("failed to load AWS default config: %w", err)
	}
	s3Client := s3.NewFromConfig(cfg)

	bucketName := os.Getenv("S3_BUCKET_NAME")
	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucketName,
		Key:    &objectKey,
		Body:   file,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	if cdnBase := os.Getenv("ASSETS_CDN_BASE_URL"); cdnBase != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(cdnBase, "/"), objectKey), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, region, objectKey), nil
}

// isValidImageType reports whether the content type is an accepted image format.
func isValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/webp",
	}

	for _, validType := range validTypes {
		if contentType == validType {
			return true
		}
	}
	return false
}

// uploadToLocal stores an upload on disk for development setups.
func (h *Handler) uploadToLocal(objectKey string, file multipart.File) (string, error) {
	if _, err := file.Seek(0, 0); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	filePath := filepath.Join(".", objectKey)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	baseURL := os.Getenv("SERVICE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(baseURL, "/"), objectKey), nil
}
