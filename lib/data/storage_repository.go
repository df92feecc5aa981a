package data

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"minecomply/lib/api"
	"minecomply/lib/constants"
	"minecomply/lib/models"
	"minecomply/lib/util"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// StorageRepository defines signed URL and upload operations
type StorageRepository interface {
	CreateSignedUploadURL(ctx context.Context, filename string, upsert *bool) (*models.SignedUploadURLResponse, error)
	CreateSignedDownloadURL(ctx context.Context, path string, expiresIn *int) (*models.SignedDownloadURLResponse, error)
	UploadFromSource(ctx context.Context, params models.UploadFromSourceParams) (*models.UploadResult, error)
}

// StorageDao implements StorageRepository. Signed URLs come from the API;
// the upload itself goes straight to the returned storage URL via HTTP.
type StorageDao struct {
	API    *api.Client
	HTTP   *http.Client
	Logger *logrus.Logger
}

// NewStorageRepository creates a new StorageRepository instance
func NewStorageRepository(client *api.Client, logger *logrus.Logger) StorageRepository {
	return &StorageDao{
		API:    client,
		HTTP:   client.HTTP,
		Logger: logger,
	}
}

// CreateSignedUploadURL requests a one-shot upload descriptor for filename
func (dao *StorageDao) CreateSignedUploadURL(ctx context.Context, filename string, upsert *bool) (*models.SignedUploadURLResponse, error) {
	var descriptor models.SignedUploadURLResponse
	request := &models.SignedUploadURLRequest{Filename: filename, Upsert: upsert}
	if err := dao.API.Post(ctx, "/storage/upload-url", request, &descriptor); err != nil {
		return nil, err
	}
	return &descriptor, nil
}

// CreateSignedDownloadURL requests a temporary download URL for path
func (dao *StorageDao) CreateSignedDownloadURL(ctx context.Context, path string, expiresIn *int) (*models.SignedDownloadURLResponse, error) {
	var result models.SignedDownloadURLResponse
	request := &models.SignedDownloadURLRequest{Path: path, ExpiresIn: expiresIn}
	if err := dao.API.Post(ctx, "/storage/download-url", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UploadFromSource runs the upload pipeline: obtain a signed descriptor,
// build the multipart body, POST it with the bearer token and return the
// descriptor's path. There is no retry; any failure leaves nothing to undo.
func (dao *StorageDao) UploadFromSource(ctx context.Context, params models.UploadFromSourceParams) (*models.UploadResult, error) {
	if params.FileName == "" {
		return nil, fmt.Errorf("file name is required")
	}
	contentType := params.ContentType
	if contentType == "" {
		contentType = constants.DEFAULT_FILE_CONTENT_TYPE
	}

	logger := dao.Logger.WithFields(logrus.Fields{
		"file_name":    params.FileName,
		"content_type": contentType,
		"operation":    "UploadFromSource",
	})
	logger.Debug("Starting upload")

	descriptor, err := dao.CreateSignedUploadURL(ctx, params.FileName, params.Upsert)
	if err != nil {
		logger.WithError(err).Error("Failed to create signed upload URL")
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"path":      descriptor.Path,
		"has_token": descriptor.Token != "",
	}).Debug("Signed upload URL created")

	body, formContentType, err := buildUploadBody(descriptor.Token, params.SourceURI, params.FileName, contentType)
	if err != nil {
		logger.WithError(err).Error("Failed to build upload body")
		return nil, err
	}

	accessToken, err := dao.API.BearerToken(ctx)
	if err != nil {
		logger.WithError(err).Warn("No access token for upload")
		return nil, err
	}

	ctx, span := api.StartSpan(ctx, "storage upload",
		attribute.String("http.request.method", http.MethodPost),
		attribute.String("storage.path", descriptor.Path),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, descriptor.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", formContentType)
	api.InjectTraceHeaders(ctx, req.Header)

	resp, err := dao.httpClient().Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		logger.WithError(err).Error("Upload request failed")
		return nil, &api.NetworkError{Method: http.MethodPost, URL: util.Truncate(descriptor.URL, 100), Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		uploadErr := &api.UploadError{StatusCode: resp.StatusCode, Body: string(text)}
		span.SetStatus(codes.Error, "upload rejected")
		logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"url":    util.Truncate(descriptor.URL, 100),
		}).Error("Upload failed")
		return nil, uploadErr
	}
	io.Copy(io.Discard, resp.Body)

	logger.WithField("path", descriptor.Path).Info("Upload successful")
	return &models.UploadResult{Path: descriptor.Path}, nil
}

func (dao *StorageDao) httpClient() *http.Client {
	if dao.HTTP != nil {
		return dao.HTTP
	}
	if dao.API != nil && dao.API.HTTP != nil {
		return dao.API.HTTP
	}
	return http.DefaultClient
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// buildUploadBody writes the token field (only when present) followed by
// the file part tagged with fileName and contentType.
func buildUploadBody(token, sourceURI, fileName, contentType string) (*bytes.Buffer, string, error) {
	source, err := OpenSource(sourceURI)
	if err != nil {
		return nil, "", err
	}
	defer source.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if token != "" {
		if err := writer.WriteField(constants.UPLOAD_TOKEN_FIELD, token); err != nil {
			return nil, "", fmt.Errorf("write token field: %w", err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		constants.UPLOAD_FILE_FIELD, quoteEscaper.Replace(fileName)))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, source); err != nil {
		return nil, "", fmt.Errorf("read source: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
