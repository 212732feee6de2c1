package controller

import (
	"fmt"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reviewin_backend/internal/service"
	"reviewin_backend/internal/util"
)

// maxUploadSize caps submission attachments at 20 MiB.
const maxUploadSize = 20 << 20

type UploadController struct {
	StorageService *service.StorageService
}

func NewUploadController(storageService *service.StorageService) *UploadController {
	return &UploadController{StorageService: storageService}
}

// UploadFile stores a submission attachment and returns the metadata the
// client then references from its submission.
func (c *UploadController) UploadFile(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "No file provided")
		return
	}
	if file.Size > maxUploadSize {
		util.BadRequest(ctx, "File too large (max 20MB)")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	objectName := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")

	url, err := c.StorageService.Upload(ctx.Request.Context(), objectName, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(201, gin.H{
		"fileName": file.Filename,
		"fileSize": file.Size,
		"url":      url,
	})
}
