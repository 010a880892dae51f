package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupstays/internal/domain/listing"
	"groupstays/internal/middleware"
	"groupstays/internal/pkg/jwt"
	"groupstays/internal/testutil"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func setup(t *testing.T) (*Service, string, http.Handler) {
	t.Helper()
	dir := t.TempDir()
	svc := NewService(NewRepository(testutil.NewDB(t, &Upload{})), dir, "/static/uploads/")
	svc.now = func() time.Time { return time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC) }

	r := testutil.Router()
	RegisterRoutes(r.Group("/api", middleware.JWTAuth(testutil.JWT())), NewHandler(svc))
	return svc, dir, r
}

func multipartRequest(t *testing.T, token, name string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if name != "" {
		fw, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUpload_StoresSniffedImage(t *testing.T) {
	_, dir, r := setup(t)
	token := testutil.Token(t, 7, jwt.RoleOwner)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, token, "Hot Tub (1).jpeg", pngHeader))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	up := testutil.Decode[Upload](t, w)
	assert.Equal(t, "image/png", up.MimeType)
	assert.True(t, strings.HasPrefix(up.FileURL, "/static/uploads/2026/05/04/"), up.FileURL)
	assert.True(t, strings.HasSuffix(up.FileURL, "_Hot_Tub__1_.png"), up.FileURL)

	rel := strings.TrimPrefix(up.FileURL, "/static/uploads/")
	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)

	w = testutil.Do(t, r, http.MethodGet, "/api/uploads/"+up.ID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.Do(t, r, http.MethodDelete, "/api/uploads/"+up.ID, testutil.Token(t, 8, jwt.RoleOwner), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.Do(t, r, http.MethodDelete, "/api/uploads/"+up.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))
}

func TestUpload_Rejections(t *testing.T) {
	_, _, r := setup(t)
	token := testutil.Token(t, 7, jwt.RoleOwner)

	cases := []struct {
		name    string
		file    string
		content []byte
		status  int
		code    string
	}{
		{"gif", "anim.gif", []byte("GIF89a......"), http.StatusBadRequest, "INVALID_FILE_TYPE"},
		{"text", "notes.jpg", []byte("just some text"), http.StatusBadRequest, "INVALID_FILE_TYPE"},
		{"empty", "empty.png", nil, http.StatusBadRequest, "EMPTY_FILE"},
		{"missing", "", nil, http.StatusBadRequest, "NO_FILE"},
		{"too large", "big.png", append(pngHeader, make([]byte, listing.MaxImageBytes)...), http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, multipartRequest(t, token, tc.file, tc.content))
			require.Equal(t, tc.status, w.Code, w.Body.String())
			assert.Equal(t, tc.code, testutil.Decode[map[string]any](t, w)["code"])
		})
	}
}

func TestListByUser(t *testing.T) {
	_, _, r := setup(t)
	token := testutil.Token(t, 7, jwt.RoleOwner)
	for _, name := range []string{"a.png", "b.png"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, multipartRequest(t, token, name, pngHeader))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := testutil.Do(t, r, http.MethodGet, "/api/uploads", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, testutil.Decode[[]Upload](t, w), 2)

	w = testutil.Do(t, r, http.MethodGet, "/api/uploads", testutil.Token(t, 9, jwt.RoleOwner), nil)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Hot_Tub__1_", sanitizeName("../Hot Tub (1).jpeg"))
	assert.Equal(t, "image", sanitizeName(".jpg"))
	assert.Len(t, sanitizeName(strings.Repeat("x", 80)+".png"), 40)
}
