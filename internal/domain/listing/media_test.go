package listing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu     sync.Mutex
	calls  int
	failOn map[string]bool
	delay  func(name string) time.Duration
}

func (s *fakeStore) StoreImage(ctx context.Context, f MediaFile) (string, error) {
	if s.delay != nil {
		time.Sleep(s.delay(f.Name))
	}
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.failOn[f.Name] {
		return "", errors.New("disk full")
	}
	return "/static/uploads/" + f.Name, nil
}

func jpeg(name string) MediaFile {
	return MediaFile{
		Name:     name,
		MimeType: "image/jpeg",
		Size:     1024,
		Open:     func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("x")), nil },
	}
}

func TestIngest_TwentyOneFilesCapsAtTwenty(t *testing.T) {
	files := make([]MediaFile, 21)
	for i := range files {
		files[i] = jpeg(fmt.Sprintf("img%02d.jpg", i))
	}
	m := Media{}
	store := &fakeStore{}

	report := m.Ingest(context.Background(), store, files)

	assert.Equal(t, 20, m.Len())
	assert.Len(t, report.Added, 20)
	assert.Equal(t, 1, report.Overflow)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "1 image could not be added")
	assert.Equal(t, 20, store.calls)
}

func TestIngest_RejectsTypeAndSizeIndividually(t *testing.T) {
	gif := jpeg("anim.gif")
	gif.MimeType = "image/gif"
	huge := jpeg("huge.jpg")
	huge.Size = MaxImageBytes + 1
	webp := jpeg("ok.webp")
	webp.MimeType = "image/webp"

	m := Media{}
	report := m.Ingest(context.Background(), &fakeStore{}, []MediaFile{gif, jpeg("a.jpg"), huge, webp})

	assert.Equal(t, []string{"/static/uploads/a.jpg", "/static/uploads/ok.webp"}, m.Images())
	require.Len(t, report.Rejected, 2)
	assert.Equal(t, "anim.gif", report.Rejected[0].Name)
	assert.Equal(t, ErrInvalidMime.Error(), report.Rejected[0].Reason)
	assert.Equal(t, ErrFileTooLarge.Error(), report.Rejected[1].Reason)
	assert.Zero(t, report.Overflow)
}

func TestIngest_PreservesInputOrderUnderConcurrentStorage(t *testing.T) {
	files := []MediaFile{jpeg("slow.jpg"), jpeg("fast.jpg"), jpeg("mid.jpg")}
	store := &fakeStore{delay: func(name string) time.Duration {
		switch name {
		case "slow.jpg":
			return 30 * time.Millisecond
		case "mid.jpg":
			return 10 * time.Millisecond
		}
		return 0
	}}
	m := Media{}
	m.Ingest(context.Background(), store, files)

	assert.Equal(t, []string{
		"/static/uploads/slow.jpg",
		"/static/uploads/fast.jpg",
		"/static/uploads/mid.jpg",
	}, m.Images())
}

func TestIngest_StorageFailureOnlyAffectsThatFile(t *testing.T) {
	m := Media{}
	report := m.Ingest(context.Background(), &fakeStore{failOn: map[string]bool{"b.jpg": true}},
		[]MediaFile{jpeg("a.jpg"), jpeg("b.jpg"), jpeg("c.jpg")})

	assert.Equal(t, 2, m.Len())
	require.Len(t, report.Rejected, 1)
	assert.Equal(t, "b.jpg", report.Rejected[0].Name)
}

func TestIngest_FillsRemainingCapacityOnly(t *testing.T) {
	urls := make([]string, 18)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://cdn.example.com/%d.jpg", i)
	}
	m := NewMedia(urls...)
	report := m.Ingest(context.Background(), &fakeStore{},
		[]MediaFile{jpeg("a.jpg"), jpeg("b.jpg"), jpeg("c.jpg"), jpeg("d.jpg")})

	assert.Equal(t, MaxImages, m.Len())
	assert.Equal(t, 2, report.Overflow)
	assert.Contains(t, report.Warnings[0], "2 images could not be added")
}

func TestIngestURL(t *testing.T) {
	m := Media{}
	require.NoError(t, m.IngestURL("  https://cdn.example.com/barn.jpg "))
	assert.Equal(t, "https://cdn.example.com/barn.jpg", m.Hero())
	assert.Error(t, m.IngestURL(" "))

	for m.Len() < MaxImages {
		require.NoError(t, m.IngestURL("https://cdn.example.com/x.jpg"))
	}
	assert.ErrorIs(t, m.IngestURL("https://cdn.example.com/y.jpg"), ErrMediaFull)
	assert.Equal(t, MaxImages, m.Len())
}

func TestReorder(t *testing.T) {
	m := NewMedia("a", "b", "c")
	m.Reorder(1, Up)
	assert.Equal(t, []string{"b", "a", "c"}, m.Images())
	m.Reorder(1, Down)
	assert.Equal(t, []string{"b", "c", "a"}, m.Images())
	m.Reorder(0, Up)
	m.Reorder(2, Down)
	m.Reorder(7, Up)
	assert.Equal(t, []string{"b", "c", "a"}, m.Images())
}

func TestPromoteToHero(t *testing.T) {
	for i := 0; i < 4; i++ {
		m := NewMedia("a", "b", "c", "d")
		original := m.Images()[i]
		require.NoError(t, m.PromoteToHero(i))
		assert.Equal(t, original, m.Hero())
		assert.Equal(t, original, Hero(m.Images()))
		assert.Equal(t, 4, m.Len())
	}

	m := NewMedia("a", "b", "c", "d")
	require.NoError(t, m.PromoteToHero(2))
	assert.Equal(t, []string{"c", "a", "b", "d"}, m.Images())
	assert.ErrorIs(t, m.PromoteToHero(4), ErrIndexOutOfRange)
}

func TestRemove_HeroFallsToNext(t *testing.T) {
	m := NewMedia("a", "b", "c")
	require.NoError(t, m.Remove(0))
	assert.Equal(t, "b", m.Hero())
	assert.Equal(t, []string{"b", "c"}, m.Images())
	assert.ErrorIs(t, m.Remove(5), ErrIndexOutOfRange)

	require.NoError(t, m.Remove(1))
	require.NoError(t, m.Remove(0))
	assert.Equal(t, "", m.Hero())
}

func TestImagesReturnsCopy(t *testing.T) {
	m := NewMedia("a", "b")
	imgs := m.Images()
	imgs[0] = "z"
	assert.Equal(t, "a", m.Hero())
}
