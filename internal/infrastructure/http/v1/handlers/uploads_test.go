package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdesk/internal/infrastructure/http/v1/middleware"
)

func uploadsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())

	// Oversized and empty batches are rejected before storage is touched,
	// so the handler can run without a backing object store.
	handler := NewUploadHandler(NewBaseHandler(), nil)
	router.POST("/uploads/batch", handler.UploadBatch)
	return router
}

func multipartBody(t *testing.T, fileCount int) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for i := 0; i < fileCount; i++ {
		part, err := writer.CreateFormFile("files", fmt.Sprintf("image-%d.jpg", i))
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadBatch_RejectsOversizedBatch(t *testing.T) {
	router := uploadsRouter()

	body, contentType := multipartBody(t, 11)
	req := httptest.NewRequest(http.MethodPost, "/uploads/batch", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "too many files")
}

func TestUploadBatch_RejectsEmptyForm(t *testing.T) {
	router := uploadsRouter()

	body, contentType := multipartBody(t, 0)
	req := httptest.NewRequest(http.MethodPost, "/uploads/batch", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
