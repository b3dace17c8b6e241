package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/sellerpath/lms_api/dto"
	"github.com/sellerpath/lms_api/model"
	"github.com/sellerpath/lms_api/services/repositories"
	"github.com/sellerpath/lms_api/shared"
	log "github.com/sirupsen/logrus"
)

// maxUploadBytes caps chat attachments at 5MB.
const maxUploadBytes = 5 * 1024 * 1024

// MediaService handles chat attachment uploads backed by object storage.
type MediaService struct {
	context.DefaultService

	db        DbService
	minioSvc  *MinIOService
	mediaRepo *repositories.MediaRepository
	baseURL   string
}

const MEDIA_SVC = "media_svc"

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *context.Context) error {
	svc.baseURL = os.Getenv("BASE_URL")
	if svc.baseURL == "" {
		svc.baseURL = "http://localhost:8000"
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)

	if s, ok := svc.Service(SQLITE_SVC).(*SqliteService); ok && s != nil {
		svc.db = s
	} else {
		svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	}
	svc.mediaRepo = repositories.NewMediaRepository(svc.db.Db())
	return nil
}

// ==================== UPLOAD ====================

// UploadAttachment validates and stores a file the user attaches to a chat
// message. The object is removed again if the database record cannot be saved.
func (svc *MediaService) UploadAttachment(userID string, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	if !isAllowedAttachment(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Unsupported file type. Supported: images, PDF, Office documents")
	}

	if file.Size > maxUploadBytes {
		return nil, shared.NewBadRequestError(nil, "File too large. Maximum size: 5MB")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectName := fmt.Sprintf("chat/%s_%d%s", userID, time.Now().Unix(), ext)

	src, err := file.Open()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to open uploaded file")
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if _, err := svc.minioSvc.UploadFile(objectName, src, file.Size, contentType); err != nil {
		return nil, shared.NewInternalError(err, "Failed to upload file to storage")
	}

	fileURL, err := svc.minioSvc.GetFileURL(objectName, 24*time.Hour)
	if err != nil {
		log.WithError(err).Warn("Failed to generate presigned URL")
		fileURL = fmt.Sprintf("%s/%s/%s", svc.baseURL, svc.minioSvc.GetBucketName(), objectName)
	}

	asset := &model.MediaAsset{
		UserID:      userID,
		FileName:    file.Filename,
		ContentType: contentType,
		SizeBytes:   file.Size,
		StoragePath: objectName,
		URL:         fileURL,
	}
	if err := svc.mediaRepo.CreateMediaAsset(asset); err != nil {
		if delErr := svc.minioSvc.DeleteFile(objectName); delErr != nil {
			log.WithError(delErr).Warn("Failed to clean up orphaned upload")
		}
		return nil, svc.db.HandleError(err)
	}

	return &dto.UploadResponse{
		ID:          asset.ID,
		FileName:    asset.FileName,
		ContentType: asset.ContentType,
		SizeBytes:   asset.SizeBytes,
		URL:         asset.URL,
	}, nil
}

// DeleteAttachment removes the stored object and its record. Only the owner
// may delete an attachment.
func (svc *MediaService) DeleteAttachment(userID, assetID string) error {
	asset, err := svc.mediaRepo.GetMediaAsset(assetID)
	if err != nil {
		return svc.db.HandleError(err)
	}
	if asset.UserID != userID {
		return shared.NewUnauthorizedError(nil, "Not authorized")
	}

	if err := svc.minioSvc.DeleteFile(asset.StoragePath); err != nil {
		log.WithError(err).WithField("path", asset.StoragePath).Warn("Failed to delete stored file")
	}

	return svc.db.HandleError(svc.mediaRepo.DeleteMediaAsset(assetID))
}

func isAllowedAttachment(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	validExts := []string{
		".jpg", ".jpeg", ".png", ".gif", ".webp",
		".pdf",
		".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	}

	for _, validExt := range validExts {
		if ext == validExt {
			return true
		}
	}
	return false
}
