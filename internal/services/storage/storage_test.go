package storage

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestNewWithoutEndpointUsesMemory(t *testing.T) {
	st, err := New(Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := st.(*Memory); !ok {
		t.Fatalf("expected memory storage, got %T", st)
	}
}

func TestMemoryUpload(t *testing.T) {
	m := NewMemory()
	data := []byte("\x89PNG fake")
	name, err := m.Upload(context.Background(), "benches/1/a b.png", bytes.NewReader(data), int64(len(data)), "image/png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	got, ct, ok := m.Object(name)
	if !ok || !bytes.Equal(got, data) || ct != "image/png" {
		t.Fatalf("object not stored: %v %q", ok, ct)
	}
	if u := m.PublicURL(name); u != "https://example.com/benches/1/a%20b.png" {
		t.Fatalf("public url %s", u)
	}
	u, err := m.GetURL(context.Background(), name, time.Hour)
	if err != nil || !strings.HasSuffix(u, "?expires=3600") {
		t.Fatalf("get url %s %v", u, err)
	}
}

func TestMemoryUploadSizeMismatch(t *testing.T) {
	m := NewMemory()
	if _, err := m.Upload(context.Background(), "x", strings.NewReader("abc"), 10, "text/plain"); err == nil {
		t.Fatal("expected size mismatch error")
	}
	if m.Len() != 0 {
		t.Fatalf("object stored despite error")
	}
}

func TestServicePublicURLDefaultsToEndpoint(t *testing.T) {
	st, err := New(Options{Endpoint: "s3.local:9000", Bucket: "benches", AccessKey: "k", SecretKey: "s"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if u := st.PublicURL("benches/2/x.jpg"); u != "http://s3.local:9000/benches/benches/2/x.jpg" {
		t.Fatalf("public url %s", u)
	}
}
