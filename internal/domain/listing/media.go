package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	MaxImages     = 20
	MaxImageBytes = 5 * 1024 * 1024

	storeConcurrency = 4
)

// AllowedImageTypes is the MIME allow-list for uploaded images.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// MediaFile is an upload candidate. MimeType is the sniffed type, not the
// one the browser claimed.
type MediaFile struct {
	Name     string
	MimeType string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// ImageStore persists an accepted image and returns its public URL.
type ImageStore interface {
	StoreImage(ctx context.Context, f MediaFile) (string, error)
}

type Rejection struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type IngestReport struct {
	Added    []string    `json:"added"`
	Rejected []Rejection `json:"rejected"`
	Overflow int         `json:"overflow"`
	Warnings []string    `json:"warnings"`
}

// Media is the ordered image sequence. Index 0 is the hero.
type Media struct {
	images []string
}

func NewMedia(urls ...string) Media {
	m := Media{}
	for _, u := range urls {
		if len(m.images) == MaxImages {
			break
		}
		if u = strings.TrimSpace(u); u != "" {
			m.images = append(m.images, u)
		}
	}
	return m
}

// Hero returns images[0], or "" for an empty sequence.
func Hero(images []string) string {
	if len(images) == 0 {
		return ""
	}
	return images[0]
}

func (m *Media) Images() []string {
	return append([]string{}, m.images...)
}

func (m *Media) Len() int { return len(m.images) }

func (m *Media) Hero() string { return Hero(m.images) }

func (m *Media) Remaining() int { return MaxImages - len(m.images) }

// Ingest validates and stores a batch of files. Valid files fill the
// remaining capacity in input order; the rest are reported, never dropped
// silently.
func (m *Media) Ingest(ctx context.Context, store ImageStore, files []MediaFile) IngestReport {
	report := IngestReport{Added: []string{}, Rejected: []Rejection{}, Warnings: []string{}}

	accepted := make([]MediaFile, 0, len(files))
	capacity := m.Remaining()
	for _, f := range files {
		if err := checkImage(f); err != nil {
			report.reject(f.Name, err)
			continue
		}
		if len(accepted) >= capacity {
			report.Overflow++
			continue
		}
		accepted = append(accepted, f)
	}

	urls := make([]string, len(accepted))
	errs := make([]error, len(accepted))
	var g errgroup.Group
	g.SetLimit(storeConcurrency)
	for i, f := range accepted {
		g.Go(func() error {
			urls[i], errs[i] = store.StoreImage(ctx, f)
			return nil
		})
	}
	_ = g.Wait()

	for i, f := range accepted {
		if errs[i] != nil {
			report.reject(f.Name, fmt.Errorf("upload failed: %w", errs[i]))
			continue
		}
		m.images = append(m.images, urls[i])
		report.Added = append(report.Added, urls[i])
	}

	if report.Overflow > 0 {
		report.Warnings = append(report.Warnings, capacityWarning(report.Overflow, len(report.Added)))
	}
	return report
}

// IngestURL appends a manually entered image URL without type or size checks.
func (m *Media) IngestURL(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("%w: empty url", ErrFieldType)
	}
	if len(m.images) >= MaxImages {
		return ErrMediaFull
	}
	m.images = append(m.images, url)
	return nil
}

// Reorder swaps index with its neighbour in dir. Boundaries are a no-op.
func (m *Media) Reorder(index int, dir Direction) {
	j := index + int(dir)
	if index < 0 || index >= len(m.images) || j < 0 || j >= len(m.images) {
		return
	}
	m.images[index], m.images[j] = m.images[j], m.images[index]
}

// PromoteToHero moves index to position 0 and shifts the others down.
func (m *Media) PromoteToHero(index int) error {
	if index < 0 || index >= len(m.images) {
		return ErrIndexOutOfRange
	}
	if index == 0 {
		return nil
	}
	hero := m.images[index]
	copy(m.images[1:index+1], m.images[:index])
	m.images[0] = hero
	return nil
}

func (m *Media) Remove(index int) error {
	if index < 0 || index >= len(m.images) {
		return ErrIndexOutOfRange
	}
	m.images = append(m.images[:index], m.images[index+1:]...)
	return nil
}

func (m Media) MarshalJSON() ([]byte, error) {
	return json.Marshal(append([]string{}, m.images...))
}

func (m *Media) UnmarshalJSON(data []byte) error {
	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return err
	}
	*m = NewMedia(urls...)
	return nil
}

func checkImage(f MediaFile) error {
	mime := strings.ToLower(strings.TrimSpace(strings.Split(f.MimeType, ";")[0]))
	if !AllowedImageTypes[mime] {
		return ErrInvalidMime
	}
	if f.Size > MaxImageBytes {
		return ErrFileTooLarge
	}
	return nil
}

func (r *IngestReport) reject(name string, err error) {
	r.Rejected = append(r.Rejected, Rejection{Name: name, Reason: err.Error()})
	r.Warnings = append(r.Warnings, fmt.Sprintf("%s: %s", name, err.Error()))
}

func capacityWarning(overflow, added int) string {
	noun := "images"
	if overflow == 1 {
		noun = "image"
	}
	return fmt.Sprintf("%d %s could not be added (%d added, limit %d)", overflow, noun, added, MaxImages)
}
