//
// Copyright 2018-2026 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package source opens the readable end of a transfer from a local path, the
// standard input or an HTTP(S) URL, reporting its size when it is known.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// UnknownSize is returned by Open when the size of the source can't be
// determined in advance.
const UnknownSize int64 = -1

// Config contains the configuration used to open HTTP sources
type Config struct {
	// HTTPClient to use to perform HTTP requests
	HTTPClient http.Client
	// ExtraHeaders to add to the HTTP requests.
	ExtraHeaders map[string]string
	// AcceptFunc is an optional function that will be called
	// when the HTTP HEAD request is done, before starting the download.
	// If the function returns an error, the source is not opened.
	AcceptFunc func(head *http.Response) error
	// DoNotErrorOnNon2xxStatusCode set to true to not return an error
	// if the server returns a non-2xx status code.
	DoNotErrorOnNon2xxStatusCode bool
}

// Open opens location for reading. location can be "-" for the standard
// input, an http or https URL, or a local file path. The returned size is
// UnknownSize when it can't be determined. Closing the returned source
// closes the standard input too, so a blocked read can be interrupted.
func Open(ctx context.Context, location string, config Config) (io.ReadCloser, int64, error) {
	if location == "-" {
		return os.Stdin, UnknownSize, nil
	}
	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return openURL(ctx, location, config)
	}
	return openFile(location)
}

func openFile(file string) (io.ReadCloser, int64, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, UnknownSize, fmt.Errorf("opening %s for reading: %w", file, err)
	}
	size := UnknownSize
	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
		size = info.Size()
	}
	return f, size, nil
}

func openURL(ctx context.Context, reqURL string, config Config) (io.ReadCloser, int64, error) {
	// Perform a HEAD call to gather information about the remote file
	headReq, err := http.NewRequestWithContext(ctx, "HEAD", reqURL, nil)
	if err != nil {
		return nil, UnknownSize, fmt.Errorf("setting up HEAD request: %w", err)
	}
	for k, v := range config.ExtraHeaders {
		headReq.Header.Set(k, v)
	}
	headResp, err := config.HTTPClient.Do(headReq)
	if err != nil {
		return nil, UnknownSize, fmt.Errorf("performing HEAD request: %w", err)
	}
	remoteSize := headResp.ContentLength // -1 if server doesn't send Content-Length
	var acceptError error
	if config.AcceptFunc != nil {
		acceptError = config.AcceptFunc(headResp)
	}
	_, _ = io.Copy(io.Discard, headResp.Body)
	_ = headResp.Body.Close()
	if acceptError != nil {
		return nil, UnknownSize, acceptError
	}

	// Perform the actual GET request
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, UnknownSize, fmt.Errorf("setting up HTTP request: %w", err)
	}
	for k, v := range config.ExtraHeaders {
		req.Header.Set(k, v)
	}
	resp, err := config.HTTPClient.Do(req)
	if err != nil {
		return nil, UnknownSize, err
	}
	if !config.DoNotErrorOnNon2xxStatusCode && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		_ = resp.Body.Close()
		return nil, UnknownSize, fmt.Errorf("server returned %s", resp.Status)
	}

	size := resp.ContentLength
	if size < 0 {
		size = remoteSize
	}
	return resp.Body, size, nil
}
