//
// Copyright 2018-2026 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testData = bytes.Repeat([]byte("transfer test data\n"), 424)

func makeTmpFile(t *testing.T, data []byte) string {
	tmpFile := filepath.Join(t.TempDir(), "test.txt")
	require.NoError(t, os.WriteFile(tmpFile, data, 0644))
	return tmpFile
}

func newTestServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/test.txt", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Token") != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		http.ServeContent(w, r, "test.txt", time.Time{}, bytes.NewReader(testData))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenFile(t *testing.T) {
	tmpFile := makeTmpFile(t, testData)

	r, size, err := Open(context.Background(), tmpFile, Config{})
	require.NoError(t, err)
	defer r.Close()
	require.Equal(t, int64(len(testData)), size)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, testData, data)
}

func TestOpenMissingFile(t *testing.T) {
	r, _, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing"), Config{})
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Nil(t, r)
}

func TestOpenStdin(t *testing.T) {
	r, size, err := Open(context.Background(), "-", Config{})
	require.NoError(t, err)
	require.Equal(t, UnknownSize, size)
	// The real file is returned, so closing it interrupts a pending read.
	require.Same(t, os.Stdin, r)
}

func TestOpenURL(t *testing.T) {
	srv := newTestServer(t)

	r, size, err := Open(context.Background(), srv.URL+"/test.txt", Config{
		ExtraHeaders: map[string]string{"X-Token": "secret"},
	})
	require.NoError(t, err)
	defer r.Close()
	require.Equal(t, int64(len(testData)), size)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, testData, data)
}

func TestOpenURLNon2xx(t *testing.T) {
	srv := newTestServer(t)

	r, _, err := Open(context.Background(), srv.URL+"/test.txt", Config{})
	require.ErrorContains(t, err, "403 Forbidden")
	require.Nil(t, r)

	r, _, err = Open(context.Background(), srv.URL+"/test.txt", Config{DoNotErrorOnNon2xxStatusCode: true})
	require.NoError(t, err)
	require.NoError(t, r.Close())
}

func TestOpenURLAcceptFunc(t *testing.T) {
	srv := newTestServer(t)
	errTooBig := errors.New("insufficient space for download")

	r, _, err := Open(context.Background(), srv.URL+"/test.txt", Config{
		ExtraHeaders: map[string]string{"X-Token": "secret"},
		AcceptFunc: func(head *http.Response) error {
			if head.ContentLength > 2000 {
				return errTooBig
			}
			return nil
		},
	})
	require.ErrorIs(t, err, errTooBig)
	require.Nil(t, r)
}

func TestOpenInvalidURL(t *testing.T) {
	r, _, err := Open(context.Background(), "http://127.0.0.1:0/test.txt", Config{})
	require.Error(t, err)
	require.Nil(t, r)
}
