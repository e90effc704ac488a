package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/rs/zerolog"

	"cobra/site/internal/ids"
	"cobra/site/internal/media/sniffer"
	"cobra/site/internal/media/svg"
	"cobra/site/internal/storage"
)

var (
	ErrEmptyFile       = errors.New("empty file")
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTypeMismatch    = errors.New("content type mismatch")
)

type UploadInput struct {
	File         io.Reader
	DeclaredType string
}

type UploadResult struct {
	Name string
	URL  string
	MIME string
	Size int64
}

type UploadService struct {
	store   storage.UploadStore
	maxSize int64
	now     func() time.Time
	log     zerolog.Logger
}

func NewUploadService(store storage.UploadStore, maxSize int64, log zerolog.Logger) *UploadService {
	return &UploadService{
		store:   store,
		maxSize: maxSize,
		now:     time.Now,
		log:     log,
	}
}

// Upload sniffs the file, rejects anything that is not a supported image or
// that contradicts its declared type, and stores it under a fresh name.
func (s *UploadService) Upload(ctx context.Context, input UploadInput) (UploadResult, error) {
	if input.File == nil {
		return UploadResult{}, ErrEmptyFile
	}

	limit := s.maxSize
	if limit <= 0 {
		limit = 10 << 20
	}

	data, err := io.ReadAll(io.LimitReader(input.File, limit+1))
	if err != nil {
		return UploadResult{}, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return UploadResult{}, ErrEmptyFile
	}
	if int64(len(data)) > limit {
		return UploadResult{}, ErrFileTooLarge
	}

	head := data
	if len(head) > sniffer.HeadSize {
		head = head[:sniffer.HeadSize]
	}
	result, err := sniffer.DetectHead(head)
	if err != nil {
		return UploadResult{}, ErrUnsupportedType
	}

	declared := sniffer.MediaTypeOf(input.DeclaredType)
	if declared != "" && declared != "application/octet-stream" && declared != result.MIME {
		return UploadResult{}, fmt.Errorf("%w: declared %s, actual %s", ErrTypeMismatch, declared, result.MIME)
	}

	if result.Type == sniffer.TypeSVG {
		clean, err := svg.Sanitize(data)
		if err != nil {
			return UploadResult{}, fmt.Errorf("sanitize svg: %w", err)
		}
		data = clean
	}

	name := s.buildObjectKey(ids.New(), result.Ext())
	if err := s.store.Put(ctx, name, bytes.NewReader(data), int64(len(data)), result.MIME); err != nil {
		return UploadResult{}, fmt.Errorf("store upload: %w", err)
	}

	s.log.Info().Str("name", name).Str("mime", result.MIME).Int("bytes", len(data)).Msg("upload stored")

	return UploadResult{
		Name: name,
		URL:  "/uploads/" + name,
		MIME: result.MIME,
		Size: int64(len(data)),
	}, nil
}

func (s *UploadService) buildObjectKey(id string, ext string) string {
	datePrefix := s.now().UTC().Format("2006/01/02")
	return path.Join(datePrefix, fmt.Sprintf("%s.%s", id, ext))
}
