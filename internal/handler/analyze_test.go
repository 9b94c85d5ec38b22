package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"VisionAnalyzer_AIProject/internal/prompt"
	"VisionAnalyzer_AIProject/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// 모델 호출 기록용 스텁
type stubGenerator struct {
	reply string
	err   error

	textCalls  int
	urlCalls   int
	bytesCalls int

	lastPrompt string
	lastURL    string
	lastBytes  []byte
}

func (s *stubGenerator) GenerateFromText(ctx context.Context, p string) (string, error) {
	s.textCalls++
	s.lastPrompt = p
	return s.reply, s.err
}

func (s *stubGenerator) GenerateFromImageURL(ctx context.Context, imageURL, p string) (string, error) {
	s.urlCalls++
	s.lastURL = imageURL
	s.lastPrompt = p
	return s.reply, s.err
}

func (s *stubGenerator) GenerateFromImageBytes(ctx context.Context, image []byte, p string) (string, error) {
	s.bytesCalls++
	s.lastBytes = image
	s.lastPrompt = p
	return s.reply, s.err
}

// 업로드 기록용 스텁
type stubUploader struct {
	url   string
	err   error
	calls int
}

func (s *stubUploader) UploadImage(ctx context.Context, file io.Reader, filename string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func newTestRouter(t *testing.T, gen Generator, uploader ImageUploader) (*gin.Engine, *storage.RecordStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewRecordStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := New(gen, uploader, store)
	router := gin.New()
	router.POST("/analyze", h.Analyze)
	router.GET("/history", h.GetHistory)
	router.DELETE("/delete/:id", h.DeleteRecord)
	return router, store
}

type uploadFile struct {
	field    string
	filename string
	content  []byte
}

func postAnalyze(t *testing.T, router *gin.Engine, fields map[string]string, file *uploadFile) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if file != nil {
		part, err := writer.CreateFormFile(file.field, file.filename)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func resultOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Result
}

func TestAnalyze_MissingMode(t *testing.T) {
	gen := &stubGenerator{}
	uploader := &stubUploader{}
	router, store := newTestRouter(t, gen, uploader)

	w := postAnalyze(t, router, map[string]string{}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Error: mode field is missing", resultOf(t, w))
	require.Zero(t, gen.textCalls+gen.urlCalls+gen.bytesCalls)
	require.Zero(t, uploader.calls)

	records, err := store.GetAllRecords()
	require.NoError(t, err)
	require.Empty(t, records, "missing mode must not write a record")
}

func TestAnalyze_TextMode(t *testing.T) {
	gen := &stubGenerator{reply: "Hi there"}
	router, store := newTestRouter(t, gen, nil)

	w := postAnalyze(t, router, map[string]string{"mode": "text", "prompt": "Hello"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Hi there", resultOf(t, w))
	require.Equal(t, 1, gen.textCalls)
	require.Equal(t, "Hello"+prompt.TextSuffix, gen.lastPrompt)

	records, err := store.GetAllRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Hi there", records[0].Result)
	require.Empty(t, records[0].ImagePath)
}

func TestAnalyze_TextMode_EmptyPrompt(t *testing.T) {
	gen := &stubGenerator{reply: "should not be used"}
	router, store := newTestRouter(t, gen, nil)

	w := postAnalyze(t, router, map[string]string{"mode": "text", "prompt": "   "}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Please enter a prompt.", resultOf(t, w))
	require.Zero(t, gen.textCalls)

	records, err := store.GetAllRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Please enter a prompt.", records[0].Result)
	require.Empty(t, records[0].ImagePath)
}

func TestAnalyze_TextMode_ModelError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("connection refused")}
	router, store := newTestRouter(t, gen, nil)

	w := postAnalyze(t, router, map[string]string{"mode": "text", "prompt": "Hello"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Text model error: connection refused", resultOf(t, w))

	records, _ := store.GetAllRecords()
	require.Len(t, records, 1, "failures still produce a record")
}

func TestAnalyze_URLMode_CaptionTemplate(t *testing.T) {
	gen := &stubGenerator{reply: "a caption"}
	router, _ := newTestRouter(t, gen, nil)

	w := postAnalyze(t, router, map[string]string{
		"mode":        "url",
		"image_url":   "https://img.example.com/cat.jpg",
		"prompt_type": "caption",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, gen.urlCalls)
	require.Equal(t, "https://img.example.com/cat.jpg", gen.lastURL)
	require.Equal(t, prompt.Template(prompt.TypeCaption), gen.lastPrompt)
}

func TestAnalyze_URLMode_UnknownTypeFallsBack(t *testing.T) {
	gen := &stubGenerator{reply: "described"}
	router, _ := newTestRouter(t, gen, nil)

	postAnalyze(t, router, map[string]string{
		"mode":        "url",
		"image_url":   "https://img.example.com/cat.jpg",
		"prompt_type": "nonsense",
	}, nil)

	require.Equal(t, prompt.Template(prompt.TypeDescribe), gen.lastPrompt)
}

func TestAnalyze_URLMode_MissingURL(t *testing.T) {
	gen := &stubGenerator{}
	router, store := newTestRouter(t, gen, nil)

	w := postAnalyze(t, router, map[string]string{"mode": "url"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Please provide a valid image URL.", resultOf(t, w))
	require.Zero(t, gen.urlCalls)

	records, _ := store.GetAllRecords()
	require.Len(t, records, 1)
}

func TestAnalyze_InvalidMode(t *testing.T) {
	gen := &stubGenerator{}
	uploader := &stubUploader{}
	router, store := newTestRouter(t, gen, uploader)

	w := postAnalyze(t, router, map[string]string{"mode": "banana"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Invalid mode.", resultOf(t, w))
	require.Zero(t, gen.textCalls+gen.urlCalls+gen.bytesCalls)
	require.Zero(t, uploader.calls)

	records, _ := store.GetAllRecords()
	require.Len(t, records, 1)
}

func TestAnalyze_Upload_NoFile(t *testing.T) {
	gen := &stubGenerator{}
	uploader := &stubUploader{url: "https://res.cloudinary.com/demo/x.jpg"}
	router, store := newTestRouter(t, gen, uploader)

	w := postAnalyze(t, router, map[string]string{"mode": "upload"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "No image file selected.", resultOf(t, w))
	require.Zero(t, uploader.calls)
	require.Zero(t, gen.urlCalls+gen.bytesCalls)

	records, _ := store.GetAllRecords()
	require.Len(t, records, 1)
	require.Empty(t, records[0].ImagePath)
}

func TestAnalyze_Upload_StorageFailure(t *testing.T) {
	gen := &stubGenerator{reply: "should not run"}
	uploader := &stubUploader{err: errors.New("invalid api key")}
	router, store := newTestRouter(t, gen, uploader)

	w := postAnalyze(t, router, map[string]string{"mode": "upload"}, &uploadFile{
		field:    "image",
		filename: "cat.jpg",
		content:  []byte{0xFF, 0xD8, 0xFF},
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Cloudinary upload failed: invalid api key", resultOf(t, w))
	require.Equal(t, 1, uploader.calls)
	require.Zero(t, gen.urlCalls+gen.bytesCalls, "no inference after failed upload")

	records, _ := store.GetAllRecords()
	require.Len(t, records, 1)
	require.Empty(t, records[0].ImagePath)
}

func TestAnalyze_Upload_Success(t *testing.T) {
	const uploadedURL = "https://res.cloudinary.com/demo/ai-vision-uploads/cat.jpg"
	gen := &stubGenerator{reply: "a cat on a sofa"}
	uploader := &stubUploader{url: uploadedURL}
	router, store := newTestRouter(t, gen, uploader)

	w := postAnalyze(t, router, map[string]string{"mode": "upload", "prompt_type": "objects"}, &uploadFile{
		field:    "image",
		filename: "cat.jpg",
		content:  []byte{0xFF, 0xD8, 0xFF},
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "a cat on a sofa", resultOf(t, w))
	require.Equal(t, 1, uploader.calls)
	require.Equal(t, 1, gen.urlCalls)
	require.Equal(t, uploadedURL, gen.lastURL, "inference must use the uploaded URL")
	require.Equal(t, prompt.Template(prompt.TypeObjects), gen.lastPrompt)

	records, _ := store.GetAllRecords()
	require.Len(t, records, 1)
	require.Equal(t, uploadedURL, records[0].ImagePath)
}

func TestAnalyze_Upload_InlineFallbackWithoutUploader(t *testing.T) {
	gen := &stubGenerator{reply: "inline result"}
	router, store := newTestRouter(t, gen, nil)

	content := []byte{0xFF, 0xD8, 0xFF, 0x01, 0x02}
	w := postAnalyze(t, router, map[string]string{"mode": "upload"}, &uploadFile{
		field:    "image",
		filename: "cat.jpg",
		content:  content,
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "inline result", resultOf(t, w))
	require.Equal(t, 1, gen.bytesCalls)
	require.Equal(t, content, gen.lastBytes)
	require.Zero(t, gen.urlCalls)

	records, _ := store.GetAllRecords()
	require.Len(t, records, 1)
	require.Empty(t, records[0].ImagePath, "inline uploads have no durable URL")
}
