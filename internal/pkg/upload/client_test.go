package upload

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nucesstack/notestack/internal/pkg/apperrors"
)

func testRequest() Request {
	return Request{
		Content:    []byte("%PDF-1.4 fake"),
		Filename:   "algo-notes.pdf",
		MimeType:   "application/pdf",
		Title:      "Sorting lecture",
		SemesterID: 1,
		SubjectID:  2,
		Uploader:   "zainab",
	}
}

func TestForwardSuccess(t *testing.T) {
	var gotKey, gotFile, gotFilename string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotKey = r.PostFormValue("key")
		gotFile = r.PostFormValue("file")
		gotFilename = r.PostFormValue("filename")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"fileId":"ABC123","webViewLink":"https://drive.google.com/file/d/ABC123/view"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "s3cret", 5*time.Second)
	res, err := client.Forward(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "ABC123", res.FileID)
	assert.Equal(t, "s3cret", gotKey)
	assert.Equal(t, "algo-notes.pdf", gotFilename)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake")), gotFile)
}

func TestForwardUpstreamReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"quota exceeded"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "s3cret", 5*time.Second)
	_, err := client.Forward(context.Background(), testRequest())
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUpload)
}

func TestForwardNon2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "s3cret", 5*time.Second)
	_, err := client.Forward(context.Background(), testRequest())
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUpload)
}

func TestForwardMissingFileID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "s3cret", 5*time.Second)
	_, err := client.Forward(context.Background(), testRequest())
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUpload)
}

func TestForwardTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"success":true,"fileId":"late"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "s3cret", 50*time.Millisecond)
	_, err := client.Forward(context.Background(), testRequest())
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUpload)
}
