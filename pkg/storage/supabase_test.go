package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUpload(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotContentType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "secret", "uploads")
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	url, err := c.Upload(context.Background(), "user_uploads/u1/a.jpg", []byte("jpeg-bytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if gotPath != "/storage/v1/object/uploads/user_uploads/u1/a.jpg" {
		t.Errorf("unexpected request path: %s", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("unexpected authorization header: %s", gotAuth)
	}
	if gotContentType != "image/jpeg" {
		t.Errorf("unexpected content type: %s", gotContentType)
	}
	if string(gotBody) != "jpeg-bytes" {
		t.Errorf("unexpected body: %q", gotBody)
	}

	want := srv.URL + "/storage/v1/object/public/uploads/user_uploads/u1/a.jpg"
	if url != want {
		t.Errorf("public url = %q, want %q", url, want)
	}
}

func TestUpload_DuplicateRetriesAsUpdate(t *testing.T) {
	var methods []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "secret", "uploads")
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	if _, err := c.Upload(context.Background(), "a.jpg", []byte("x"), "image/jpeg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(methods) != 2 || methods[0] != http.MethodPost || methods[1] != http.MethodPut {
		t.Errorf("expected POST then PUT, got %v", methods)
	}
}

func TestUpload_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "secret", "uploads")
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	if _, err := c.Upload(context.Background(), "a.jpg", []byte("x"), "image/jpeg"); err == nil {
		t.Error("expected error on server failure")
	}
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient("", "key", "bucket"); err == nil {
		t.Error("expected error for empty url")
	}
	if _, err := NewClient("http://x", "", "bucket"); err == nil {
		t.Error("expected error for empty key")
	}
}
