package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mechbano/site-api/internal/domain"
)

func Test_General_TypeRequired(t *testing.T) {
	env := newTestEnv(t)

	w := env.do("GET", "/api/general", "", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
	}
}

func Test_General_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do("PUT", "/api/general?type=youtube&id=not-an-oid", `{"title":"x"}`, testAPIKey)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
	}
}

func Test_VideoCreate_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	body := `{"title":"t","description":"d","embedLink":"e","originalLink":"o","category":"c"}`
	w := env.do("POST", "/api/general?type=youtube", body, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
	}
	if len(env.Store.videos) != 0 {
		t.Fatalf("unauthenticated request must not write, got %d videos", len(env.Store.videos))
	}
}

func Test_VideoCreate_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	w := env.do("POST", "/api/general?type=youtube", `{"title":"only title"}`, testAPIKey)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
	}
	if len(env.Store.videos) != 0 {
		t.Fatalf("invalid payload must not write")
	}
}

func Test_Video_ListPagination(t *testing.T) {
	env := newTestEnv(t)

	body := `{"title":"t","description":"d","embedLink":"e","originalLink":"o","category":"c"}`
	for i := 0; i < 3; i++ {
		if w := env.do("POST", "/api/general?type=youtube", body, testAPIKey); w.Code != http.StatusCreated {
			t.Fatalf("create: code=%d body=%s", w.Code, w.Body.String())
		}
	}

	w := env.do("GET", "/api/general?type=youtube&page=2&limit=2", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: code=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Videos     []domain.Video `json:"videos"`
		Total      int64          `json:"total"`
		Page       int64          `json:"page"`
		TotalPages int64          `json:"totalPages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Videos) != 1 || resp.Total != 3 || resp.TotalPages != 2 {
		t.Fatalf("got %d items, total=%d, totalPages=%d", len(resp.Videos), resp.Total, resp.TotalPages)
	}

	// a page past the end is empty but keeps the correct total
	w = env.do("GET", "/api/general?type=youtube&page=9&limit=2", "", "")
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Videos) != 0 || resp.Total != 3 {
		t.Fatalf("past-end page: got %d items, total=%d", len(resp.Videos), resp.Total)
	}
}

func Test_Video_UpdateDelete(t *testing.T) {
	env := newTestEnv(t)
	env.Store.videos = []domain.Video{{ID: primitive.NewObjectID(), Title: "old"}}
	id := env.Store.videos[0].ID.Hex()

	body := `{"title":"new","description":"d","embedLink":"e","originalLink":"o","category":"c"}`
	w := env.do("PUT", "/api/general?type=youtube&id="+id, body, testAPIKey)
	if w.Code != http.StatusOK {
		t.Fatalf("update: code=%d body=%s", w.Code, w.Body.String())
	}
	if env.Store.videos[0].Title != "new" {
		t.Fatalf("title not updated: %q", env.Store.videos[0].Title)
	}

	// unknown id is a 404
	w = env.do("PUT", "/api/general?type=youtube&id="+primitive.NewObjectID().Hex(), body, testAPIKey)
	if w.Code != http.StatusNotFound {
		t.Fatalf("update unknown: code=%d", w.Code)
	}

	w = env.do("DELETE", "/api/general?type=youtube&id="+id, "", testAPIKey)
	if w.Code != http.StatusOK || len(env.Store.videos) != 0 {
		t.Fatalf("delete: code=%d videos=%d", w.Code, len(env.Store.videos))
	}
}

func Test_PDFDelete_BadStorageURL_StillDeletes(t *testing.T) {
	env := newTestEnv(t)
	env.Assets.err = errStorage
	env.Store.pdfs = []domain.PDF{{
		ID:           primitive.NewObjectID(),
		Title:        "manual",
		OriginalLink: "https://cdn.example.com/files/manual.pdf", // not the storage layout
		Category:     "engines",
	}}
	id := env.Store.pdfs[0].ID.Hex()

	w := env.do("DELETE", "/api/general?type=pdf&id="+id, "", testAPIKey)
	if w.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
	}
	if len(env.Store.pdfs) != 0 {
		t.Fatalf("record must be deleted despite the storage failure")
	}
	if len(env.Assets.calls) != 1 {
		t.Fatalf("expected one removal attempt, got %d", len(env.Assets.calls))
	}
}

func Test_PDFDelete_Unknown(t *testing.T) {
	env := newTestEnv(t)

	w := env.do("DELETE", "/api/general?type=pdf&id="+primitive.NewObjectID().Hex(), "", testAPIKey)
	if w.Code != http.StatusNotFound {
		t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
	}
	if len(env.Assets.calls) != 0 {
		t.Fatalf("no removal attempt expected for a missing record")
	}
}

func Test_Logo_Singleton(t *testing.T) {
	env := newTestEnv(t)

	w := env.do("GET", "/api/general?type=logo", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: code=%d", w.Code)
	}
	var empty struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &empty); err != nil || empty.URL != "" {
		t.Fatalf("default logo: err=%v url=%q", err, empty.URL)
	}

	if w := env.do("PUT", "/api/general?type=logo", `{"url":"https://x/logo.png"}`, testAPIKey); w.Code != http.StatusOK {
		t.Fatalf("put: code=%d body=%s", w.Code, w.Body.String())
	}
	if env.Store.logo == nil || env.Store.logo.URL != "https://x/logo.png" {
		t.Fatalf("logo not stored: %+v", env.Store.logo)
	}

	if w := env.do("PUT", "/api/general?type=logo", `{"url":""}`, testAPIKey); w.Code != http.StatusBadRequest {
		t.Fatalf("empty url: code=%d", w.Code)
	}
}

func Test_PageControl(t *testing.T) {
	env := newTestEnv(t)
	env.Store.pages = []domain.Page{{ID: primitive.NewObjectID(), Name: "home", Enabled: true}}
	id := env.Store.pages[0].ID.Hex()

	w := env.do("PUT", "/api/general?type=pagecontrol&id="+id, `{}`, testAPIKey)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing enabled: code=%d body=%s", w.Code, w.Body.String())
	}

	w = env.do("PUT", "/api/general?type=pagecontrol&id="+id, `{"enabled":false}`, testAPIKey)
	if w.Code != http.StatusOK || env.Store.pages[0].Enabled {
		t.Fatalf("disable: code=%d enabled=%v", w.Code, env.Store.pages[0].Enabled)
	}

	w = env.do("GET", "/api/general?type=pagecontrol", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: code=%d", w.Code)
	}
	var pages []domain.Page
	if err := json.Unmarshal(w.Body.Bytes(), &pages); err != nil || len(pages) != 1 {
		t.Fatalf("pages: err=%v n=%d", err, len(pages))
	}
}

func Test_General_UnsupportedMethod(t *testing.T) {
	env := newTestEnv(t)

	// DELETE without an id resolves to no operation
	w := env.do("DELETE", "/api/general?type=youtube", "", testAPIKey)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
	}
}
