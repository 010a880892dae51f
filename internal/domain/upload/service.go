package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"groupstays/internal/domain/listing"
	"groupstays/internal/pkg/apperr"
)

const (
	UploadsBaseDir = "./uploads"
	StaticURLBase  = "/static/uploads"
)

type Service struct {
	repo       Repository
	baseDir    string
	staticBase string
	now        func() time.Time
}

func NewService(repo Repository, baseDir, staticBase string) *Service {
	if baseDir == "" {
		baseDir = UploadsBaseDir
	}
	if staticBase == "" {
		staticBase = StaticURLBase
	}
	return &Service{repo: repo, baseDir: baseDir, staticBase: strings.TrimRight(staticBase, "/"), now: time.Now}
}

// DetectMime sniffs the content type from the first bytes of a file.
func DetectMime(head []byte) string {
	return strings.TrimSpace(strings.Split(http.DetectContentType(head), ";")[0])
}

// Upload checks size and sniffed type against the listing image rules, then
// writes the file under baseDir/YYYY/MM/DD and records it.
func (s *Service) Upload(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*Upload, error) {
	if fileHeader.Size == 0 {
		return nil, errEmpty
	}
	if fileHeader.Size > listing.MaxImageBytes {
		return nil, errTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("open upload: %w", err))
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, _ := io.ReadFull(file, buf)
	mimeType := DetectMime(buf[:n])
	if !listing.AllowedImageTypes[mimeType] {
		return nil, errInvalidMime
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, apperr.Internal(err)
	}

	now := s.now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, apperr.Internal(fmt.Errorf("create upload directory: %w", err))
	}

	id := uuid.NewString()
	filename := fmt.Sprintf("%s_%s%s", id, sanitizeName(fileHeader.Filename), mimeToExt(mimeType))
	absPath := filepath.Join(absDir, filename)
	dst, err := os.Create(absPath)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("create file: %w", err))
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(absPath)
		return nil, apperr.Internal(fmt.Errorf("write file: %w", err))
	}

	relPath := filepath.ToSlash(filepath.Join(relDir, filename))
	up := &Upload{
		ID:           id,
		UserID:       userID,
		OriginalName: filepath.Base(fileHeader.Filename),
		FilePath:     relPath,
		FileURL:      s.staticBase + "/" + relPath,
		MimeType:     mimeType,
		Size:         fileHeader.Size,
		CreatedAt:    now,
	}
	if err := s.repo.Create(ctx, up); err != nil {
		_ = os.Remove(absPath)
		return nil, apperr.Internal(fmt.Errorf("save upload record: %w", err))
	}
	return up, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Upload, error) {
	up, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrUploadNotFound) {
		return nil, apperr.NotFound("Upload")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return up, nil
}

// Delete removes the file and its record.
func (s *Service) Delete(ctx context.Context, id string, userID int64) error {
	up, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if up.UserID != userID {
		return errNotOwnUpload
	}

	_ = os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(up.FilePath)))
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*Upload, error) {
	out, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if out == nil {
		out = []*Upload{}
	}
	return out, nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" || name == "." {
		return "image"
	}
	return name
}

func mimeToExt(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
