// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type testData struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func TestRespondJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := testData{Message: "success", Code: 200}

	RespondJSON(w, http.StatusCreated, data)

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var result testData
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if result != data {
		t.Errorf("expected %+v, got %+v", data, result)
	}
}

func TestRespondJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()

	RespondJSON(w, http.StatusOK, map[string]any{"ch": make(chan int)})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestNewHttpReader_Defaults(t *testing.T) {
	r := NewHttpReader()
	if r.UserAgent != HttpReaderUserAgent {
		t.Errorf("unexpected user agent %q", r.UserAgent)
	}
	if r.Client == nil || r.Client.Timeout == 0 {
		t.Error("expected client with timeout")
	}
}

func TestNewHttpReader_WithOptions(t *testing.T) {
	custom := &http.Client{}
	r := NewHttpReader(WithClient(custom), WithUserAgent("test/1"), WithTotalTimeout(3*time.Second))
	if r.Client != custom {
		t.Error("expected custom client")
	}
	if r.Client.Timeout != 3*time.Second {
		t.Errorf("unexpected timeout %s", r.Client.Timeout)
	}
	if r.UserAgent != "test/1" {
		t.Errorf("unexpected user agent %q", r.UserAgent)
	}
}

func TestHttpReader_ReadWithContext(t *testing.T) {
	var agent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	r := NewHttpReader(WithClient(server.Client()))

	data, err := r.ReadWithContext(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("ReadWithContext failed: %v", err)
	}
	if string(data) != "ok" {
		t.Errorf("unexpected body %q", data)
	}
	if agent != HttpReaderUserAgent {
		t.Errorf("unexpected user agent %q", agent)
	}

	if _, err := r.ReadWithContext(context.Background(), server.URL+"/fail"); err == nil {
		t.Error("expected error for 500")
	}
	if _, err := r.ReadWithContext(context.Background(), ""); err == nil {
		t.Error("expected error for empty url")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.ReadWithContext(ctx, server.URL); err == nil {
		t.Error("expected error for canceled context")
	}
}
