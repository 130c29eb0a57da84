package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"arstudio/internal/conversion"
	"arstudio/internal/events"
	"arstudio/internal/extraction"
	"arstudio/internal/metrics"
	"arstudio/internal/models"
	"arstudio/internal/repository"
)

// AssetService ingests uploaded media into object storage and keeps the
// metadata records the asset library lists.
type AssetService struct {
	repo      *repository.AssetRepository
	minio     *minio.Client
	bucket    string
	publicURL string
	metrics   *metrics.Metrics
	events    *events.Publisher
}

func NewAssetService(
	repo *repository.AssetRepository,
	minioClient *minio.Client,
	bucket, publicURL string,
	m *metrics.Metrics,
	publisher *events.Publisher,
) *AssetService {
	return &AssetService{
		repo:      repo,
		minio:     minioClient,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		metrics:   m,
		events:    publisher,
	}
}

// isModelExt reports whether the extension names a 3D model file, as
// opposed to a texture or material that rides along with one.
func isModelExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".fbx", ".obj", ".dae", ".stl", ".gltf", ".glb":
		return true
	}
	return false
}

// Ingest stores one uploaded file and returns its asset record. Archives
// are unpacked and must contain exactly one model file; non-GLB models
// are converted before upload.
func (s *AssetService) Ingest(fileHeader *multipart.FileHeader) (*models.Asset, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))

	if extraction.IsArchive(ext) {
		return s.ingestArchive(fileHeader)
	}
	if conversion.NeedsConversion(ext) {
		return s.ingestConvertedModel(fileHeader)
	}
	return s.ingestDirect(fileHeader)
}

// ingestDirect streams the upload into object storage unchanged. This is
// the path for images, video, audio and ready-to-serve GLB files.
func (s *AssetService) ingestDirect(fileHeader *multipart.FileHeader) (*models.Asset, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(err, "could not open uploaded file")
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == ".glb" {
		contentType = "model/gltf-binary"
	}

	key := uuid.NewString() + ext
	_, err = s.minio.PutObject(
		context.Background(),
		s.bucket,
		key,
		src,
		fileHeader.Size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upload to MinIO")
	}
	return s.record(fileHeader.Filename, contentType, key, fileHeader.Size)
}

// ingestConvertedModel saves the upload to a temp file, converts it to
// GLB and uploads the result.
func (s *AssetService) ingestConvertedModel(fileHeader *multipart.FileHeader) (*models.Asset, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(err, "could not open uploaded file")
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	tempFile, err := os.CreateTemp(os.TempDir(), "upload-*"+ext)
	if err != nil {
		return nil, errors.Wrap(err, "could not create temporary file")
	}
	tempPath := tempFile.Name()
	_, err = io.Copy(tempFile, src)
	tempFile.Close()
	if err != nil {
		os.Remove(tempPath)
		return nil, errors.Wrap(err, "failed to write uploaded file")
	}

	glbPath, err := conversion.ToGLB(tempPath)
	os.Remove(tempPath)
	if err != nil {
		return nil, errors.Wrap(err, "conversion to glb failed")
	}
	defer os.Remove(glbPath)

	return s.uploadModelFile(glbPath, fileHeader.Filename)
}

// ingestArchive unpacks the archive, locates the single model file
// inside it and ingests that, converting when necessary. Texture and
// material siblings are consumed by the converter via relative paths.
func (s *AssetService) ingestArchive(fileHeader *multipart.FileHeader) (*models.Asset, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(err, "could not open uploaded archive")
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	tempArchive, err := os.CreateTemp(os.TempDir(), "upload-*"+ext)
	if err != nil {
		return nil, errors.Wrap(err, "could not create temporary file for archive")
	}
	archivePath := tempArchive.Name()
	_, err = io.Copy(tempArchive, src)
	tempArchive.Close()
	if err != nil {
		os.Remove(archivePath)
		return nil, errors.Wrap(err, "failed to write uploaded archive")
	}

	files, destDir, err := extraction.Unpack(context.Background(), archivePath)
	os.Remove(archivePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract archive")
	}
	defer os.RemoveAll(destDir)

	var modelPath string
	for _, path := range files {
		if !isModelExt(filepath.Ext(path)) {
			continue
		}
		if modelPath != "" {
			return nil, fmt.Errorf("multiple model files found in archive")
		}
		modelPath = path
	}
	if modelPath == "" {
		return nil, fmt.Errorf("no 3d model file found in archive")
	}

	if conversion.NeedsConversion(filepath.Ext(modelPath)) {
		glbPath, err := conversion.ToGLB(modelPath)
		if err != nil {
			return nil, errors.Wrap(err, "conversion to glb failed")
		}
		modelPath = glbPath
	}
	return s.uploadModelFile(modelPath, filepath.Base(modelPath))
}

// uploadModelFile pushes a local GLB file into object storage and
// records it.
func (s *AssetService) uploadModelFile(glbPath, originalName string) (*models.Asset, error) {
	glbFile, err := os.Open(glbPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not open glb file")
	}
	defer glbFile.Close()
	stat, err := glbFile.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "could not stat glb file")
	}

	key := uuid.NewString() + ".glb"
	_, err = s.minio.PutObject(
		context.Background(),
		s.bucket,
		key,
		glbFile,
		stat.Size(),
		minio.PutObjectOptions{ContentType: "model/gltf-binary"},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upload to MinIO")
	}
	return s.record(originalName, "model/gltf-binary", key, stat.Size())
}

// record writes the asset metadata row. If the database save fails the
// stored object is removed so no orphan file is left behind.
func (s *AssetService) record(filename, contentType, key string, size int64) (*models.Asset, error) {
	kind := models.ClassifyAssetKind(contentType, filename)
	url := fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key)

	asset := &models.Asset{
		ID:         uuid.NewString(),
		Name:       filename,
		Kind:       kind,
		URL:        url,
		SizeLabel:  models.FormatSizeLabel(size),
		StorageKey: key,
	}
	if kind == models.AssetImage {
		asset.ThumbnailURL = url
	}
	if err := s.repo.Create(asset); err != nil {
		s.minio.RemoveObject(context.Background(), s.bucket, key, minio.RemoveObjectOptions{})
		return nil, errors.Wrap(err, "failed to save metadata to database")
	}

	s.metrics.RecordUpload(size)
	s.events.AssetIngested(events.AssetIngested{
		AssetID:    asset.ID,
		Kind:       string(kind),
		URL:        url,
		SizeBytes:  size,
		IngestedAt: time.Now(),
	})
	return asset, nil
}

func (s *AssetService) Get(id string) (*models.Asset, error) {
	return s.repo.GetByID(id)
}

// List returns all assets, most recently uploaded first.
func (s *AssetService) List() ([]models.Asset, error) {
	return s.repo.List()
}

// Delete removes an asset record and its stored file. Scene objects that
// still reference it keep their asset id and compile to a skip.
func (s *AssetService) Delete(id string) error {
	asset, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	_ = s.minio.RemoveObject(context.Background(), s.bucket, asset.StorageKey, minio.RemoveObjectOptions{})
	return s.repo.Delete(id)
}
