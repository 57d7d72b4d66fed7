package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"traveladdicts/internal/domain"
	"traveladdicts/internal/graphql"
	"traveladdicts/internal/graphql/queries"
	"traveladdicts/internal/pkg/validator"
)

const (
	MaxUploadSize   = 10 << 20
	DefaultFolder   = "travel-addicts"
	defaultPageSize = 24
	maxPageSize     = 100
	sniffLen        = 3072
)

var allowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
	"image/avif",
	"video/mp4",
	"application/pdf",
}

// Meta is the admin-editable part of a media record.
type Meta struct {
	Alt      string   `form:"alt" json:"alt" validate:"max=300"`
	Caption  string   `form:"caption" json:"caption" validate:"max=500"`
	Category string   `form:"category" json:"category" validate:"max=60"`
	Tags     []string `form:"tags" json:"tags" validate:"max=20,dive,max=60"`
}

type List struct {
	Items []domain.Media `json:"items"`
	Total int            `json:"total"`
}

type Service struct {
	gql     graphql.Runner
	storage Storage
	folder  string
}

// NewService builds the media library. A nil storage keeps listing and deleting
// available but rejects uploads.
func NewService(gql graphql.Runner, storage Storage) *Service {
	return &Service{gql: gql, storage: storage, folder: DefaultFolder}
}

func (s *Service) List(ctx context.Context, category string, limit, offset int) (List, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	vars := map[string]any{"limit": limit, "offset": offset}
	if category = strings.TrimSpace(category); category != "" {
		vars["category"] = category
	}

	var resp struct {
		Media      []domain.Media `json:"media"`
		MediaCount int            `json:"mediaCount"`
	}
	if err := s.gql.Request(ctx, queries.GetMedia, vars, nil, &resp); err != nil {
		return List{}, err
	}
	if resp.Media == nil {
		resp.Media = []domain.Media{}
	}
	return List{Items: resp.Media, Total: resp.MediaCount}, nil
}

// Upload sniffs the content type, stores the file and registers it with the travel
// API. When registration fails the stored asset is removed again.
func (s *Service) Upload(ctx context.Context, r io.Reader, filename string, size int64, meta Meta) (domain.Media, error) {
	if s.storage == nil {
		return domain.Media{}, ErrUploadsDisabled
	}
	if size > MaxUploadSize {
		return domain.Media{}, ErrFileTooLarge
	}
	if fields := validator.Validate(meta); len(fields) > 0 {
		return domain.Media{}, ErrInvalidMediaMeta
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return domain.Media{}, err
	}
	if n == 0 {
		return domain.Media{}, ErrEmptyFile
	}
	head = head[:n]

	mime := mimetype.Detect(head)
	if !mimetype.EqualsAny(mime.String(), allowedTypes...) {
		return domain.Media{}, ErrUnsupportedType
	}

	// Cap what is streamed so a lying size header can't push past the limit.
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), r), MaxUploadSize+1)
	counted := &countingReader{r: body}

	folder := s.folder
	if meta.Category != "" {
		folder = path.Join(folder, meta.Category)
	}
	stored, err := s.storage.Put(ctx, counted, folder, publicName(filename))
	if err != nil {
		return domain.Media{}, err
	}
	if counted.n > MaxUploadSize {
		s.discard(ctx, stored.PublicID)
		return domain.Media{}, ErrFileTooLarge
	}

	in := domain.MediaInput{
		URL:      stored.URL,
		PublicID: stored.PublicID,
		Filename: filename,
		MimeType: mime.String(),
		Size:     counted.n,
		Width:    stored.Width,
		Height:   stored.Height,
		Alt:      meta.Alt,
		Caption:  meta.Caption,
		Category: meta.Category,
		Tags:     meta.Tags,
	}

	var resp struct {
		CreateMedia *domain.Media `json:"createMedia"`
	}
	if err := s.gql.Request(ctx, queries.CreateMedia, map[string]any{"input": in}, nil, &resp); err != nil {
		s.discard(ctx, stored.PublicID)
		return domain.Media{}, err
	}
	if resp.CreateMedia == nil {
		s.discard(ctx, stored.PublicID)
		return domain.Media{}, ErrNotFound
	}
	return *resp.CreateMedia, nil
}

// Delete removes the media record, then the stored asset when its public id is known.
func (s *Service) Delete(ctx context.Context, id, publicID string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}

	var resp struct {
		DeleteMedia bool `json:"deleteMedia"`
	}
	if err := s.gql.Request(ctx, queries.DeleteMedia, map[string]any{"id": id}, nil, &resp); err != nil {
		return err
	}
	if !resp.DeleteMedia {
		return ErrNotFound
	}

	if publicID != "" {
		s.discard(ctx, publicID)
	}
	return nil
}

func (s *Service) discard(ctx context.Context, publicID string) {
	if s.storage == nil || publicID == "" {
		return
	}
	if err := s.storage.Remove(ctx, publicID); err != nil {
		slog.Warn("failed to remove stored asset", "public_id", publicID, "error", err)
	}
}

// publicName strips the extension and anything path-like from an upload's filename.
func publicName(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "." || base == "/" {
		return ""
	}
	return base
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
