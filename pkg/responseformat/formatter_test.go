package responseformat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

type sample struct {
	Modulus float64 `json:"modulus"`
	Kind    string  `json:"kind"`
}

func TestWriteResponseJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/result", nil)
	rec := httptest.NewRecorder()

	if err := NewFormatter().WriteResponse(rec, req, sample{Modulus: 1.5, Kind: "ok"}, map[string]string{"X-Run-Id": "abc"}); err != nil {
		t.Fatal(err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	if rec.Header().Get("X-Run-Id") != "abc" || rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("headers = %v", rec.Header())
	}
	var got sample
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Modulus != 1.5 {
		t.Errorf("decoded %+v", got)
	}
}

func TestWriteResponseMsgPack(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/result?format=msgpack", nil)
	rec := httptest.NewRecorder()

	if err := NewFormatter().WriteResponse(rec, req, sample{Modulus: 2.5, Kind: "ok"}, nil); err != nil {
		t.Fatal(err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != MsgPackContentType {
		t.Errorf("content type = %q", ct)
	}

	var got map[string]any
	if err := msgpack.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["modulus"] != 2.5 || got["kind"] != "ok" {
		t.Errorf("decoded %v", got)
	}
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/compute", nil)
	rec := httptest.NewRecorder()

	NewFormatter().WriteError(rec, req, http.StatusUnprocessableEntity, "missing_reading", "Please fill in all readings.")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", rec.Code)
	}
	var body ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error != "missing_reading" {
		t.Errorf("body = %+v", body)
	}
}
