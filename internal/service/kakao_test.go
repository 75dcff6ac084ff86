package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBestMatchPicksClosestRegardlessOfOrder(t *testing.T) {
	// Reference (36.48, 127.29). First candidate is ~2km away, second
	// ~0.5km; the second must win despite its position in the list.
	far := KakaoPlace{ID: "far", PlaceName: "Far Gukbap", Y: "36.498", X: "127.29"}
	near := KakaoPlace{ID: "near", PlaceName: "Near Gukbap", Y: "36.4845", X: "127.29"}

	got, ok := BestMatch([]KakaoPlace{far, near}, 36.48, 127.29)
	if !ok {
		t.Fatal("no match found")
	}
	if got.ID != "near" {
		t.Errorf("best match = %s, want near", got.ID)
	}

	// Same result with the list reversed.
	got, ok = BestMatch([]KakaoPlace{near, far}, 36.48, 127.29)
	if !ok || got.ID != "near" {
		t.Errorf("best match after reorder = %s, want near", got.ID)
	}
}

func TestBestMatchEmptyList(t *testing.T) {
	if _, ok := BestMatch(nil, 36.48, 127.29); ok {
		t.Error("empty candidate list reported a match")
	}
}

func TestBestMatchSkipsUnparseableCoordinates(t *testing.T) {
	bad := KakaoPlace{ID: "bad", Y: "not-a-lat", X: "127.29"}
	good := KakaoPlace{ID: "good", Y: "36.49", X: "127.29"}
	got, ok := BestMatch([]KakaoPlace{bad, good}, 36.48, 127.29)
	if !ok || got.ID != "good" {
		t.Errorf("got %v ok=%v, want the parseable candidate", got, ok)
	}
}

func TestSearchKeywordProxiesBody(t *testing.T) {
	const payload = `{"documents":[{"id":"1","place_name":"Test","x":"127.29","y":"36.48"}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "KakaoAK test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("query"); got != "gimbap" {
			t.Errorf("query = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	c := NewKakaoClient(srv.URL, "test-key")
	body, err := c.SearchKeyword(context.Background(), "gimbap")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if string(body) != payload {
		t.Errorf("body = %s, want verbatim upstream payload", body)
	}

	docs, err := ParseDocuments(body)
	if err != nil || len(docs) != 1 || docs[0].PlaceName != "Test" {
		t.Errorf("parse = %+v, %v", docs, err)
	}
}

func TestSearchKeywordUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewKakaoClient(srv.URL, "test-key")
	if _, err := c.SearchKeyword(context.Background(), "gimbap"); err == nil {
		t.Error("expected error on non-200 upstream status")
	}
}
