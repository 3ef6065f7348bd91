package http_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mechbano/site-api/internal/domain"
	api "github.com/mechbano/site-api/internal/http"
)

const testAPIKey = "test-api-key"

// fakeStore is an in-memory stand-in for *repo.Store so handler tests run
// without a database.
type fakeStore struct {
	mu       sync.Mutex
	videos   []domain.Video
	pdfs     []domain.PDF
	logo     *domain.Logo
	siteName *domain.SiteName
	pages    []domain.Page
	plans    []domain.Plan
	users    []domain.User
	welcome  *domain.WelcomeNote
	pingErr  error
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func window[T any](items []T, skip, limit int64) []T {
	if skip >= int64(len(items)) {
		return []T{}
	}
	end := skip + limit
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	out := make([]T, end-skip)
	copy(out, items[skip:end])
	return out
}

func (f *fakeStore) ListVideos(_ context.Context, skip, limit int64) ([]domain.Video, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return window(f.videos, skip, limit), int64(len(f.videos)), nil
}

func (f *fakeStore) InsertVideo(_ context.Context, v *domain.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v.ID = primitive.NewObjectID()
	v.CreatedAt = time.Now().UTC()
	f.videos = append(f.videos, *v)
	return nil
}

func (f *fakeStore) UpdateVideo(_ context.Context, id primitive.ObjectID, v domain.Video) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.videos {
		if f.videos[i].ID == id {
			v.ID = id
			v.CreatedAt = f.videos[i].CreatedAt
			f.videos[i] = v
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) DeleteVideo(_ context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.videos {
		if f.videos[i].ID == id {
			f.videos = append(f.videos[:i], f.videos[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListPDFs(_ context.Context, skip, limit int64) ([]domain.PDF, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return window(f.pdfs, skip, limit), int64(len(f.pdfs)), nil
}

func (f *fakeStore) InsertPDF(_ context.Context, p *domain.PDF) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	f.pdfs = append(f.pdfs, *p)
	return nil
}

func (f *fakeStore) UpdatePDF(_ context.Context, id primitive.ObjectID, p domain.PDF) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.pdfs {
		if f.pdfs[i].ID == id {
			p.ID = id
			p.CreatedAt = f.pdfs[i].CreatedAt
			f.pdfs[i] = p
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) FindPDF(_ context.Context, id primitive.ObjectID) (*domain.PDF, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.pdfs {
		if f.pdfs[i].ID == id {
			p := f.pdfs[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) DeletePDF(_ context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.pdfs {
		if f.pdfs[i].ID == id {
			f.pdfs = append(f.pdfs[:i], f.pdfs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) GetLogo(context.Context) (*domain.Logo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logo, nil
}

func (f *fakeStore) SetLogo(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.logo == nil {
		f.logo = &domain.Logo{ID: primitive.NewObjectID()}
	}
	f.logo.URL = url
	return nil
}

func (f *fakeStore) GetSiteName(context.Context) (*domain.SiteName, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.siteName, nil
}

func (f *fakeStore) SetSiteName(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.siteName == nil {
		f.siteName = &domain.SiteName{ID: primitive.NewObjectID()}
	}
	f.siteName.Name = name
	return nil
}

func (f *fakeStore) ListPages(context.Context) ([]domain.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Page, len(f.pages))
	copy(out, f.pages)
	return out, nil
}

func (f *fakeStore) SetPageEnabled(_ context.Context, id primitive.ObjectID, enabled bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.pages {
		if f.pages[i].ID == id {
			f.pages[i].Enabled = enabled
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) GetWelcomeNote(context.Context) (*domain.WelcomeNote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.welcome, nil
}

func (f *fakeStore) SetWelcomeNote(_ context.Context, title, message string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	created := f.welcome == nil
	if created {
		f.welcome = &domain.WelcomeNote{ID: primitive.NewObjectID()}
	}
	f.welcome.Title = title
	f.welcome.Message = message
	return created, nil
}

func (f *fakeStore) ListPlans(_ context.Context, skip, limit int64) ([]domain.Plan, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return window(f.plans, skip, limit), int64(len(f.plans)), nil
}

func (f *fakeStore) InsertPlan(_ context.Context, p *domain.Plan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	f.plans = append(f.plans, *p)
	return nil
}

func (f *fakeStore) UpdatePlan(_ context.Context, id primitive.ObjectID, p domain.Plan) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.plans {
		if f.plans[i].ID == id {
			p.ID = id
			p.CreatedAt = f.plans[i].CreatedAt
			f.plans[i] = p
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) FindPlan(_ context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.plans {
		if f.plans[i].ID == id {
			p := f.plans[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) DeletePlan(_ context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.plans {
		if f.plans[i].ID == id {
			f.plans = append(f.plans[:i], f.plans[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateUser(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = primitive.NewObjectID()
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeStore) ListUsers(_ context.Context, search string, skip, limit int64) ([]domain.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := make([]domain.User, 0, len(f.users))
	needle := strings.ToLower(search)
	for _, u := range f.users {
		if search == "" ||
			strings.Contains(strings.ToLower(u.Email), needle) ||
			strings.Contains(strings.ToLower(u.Name), needle) {
			u.Subscription.PlanID = nil // mirrors the repo projection
			matched = append(matched, u)
		}
	}
	return window(matched, skip, limit), int64(len(matched)), nil
}

func (f *fakeStore) DeleteUserByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].Email == email {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) UpdateUserProfile(_ context.Context, email, name, picture string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].Email == email {
			f.users[i].Name = name
			f.users[i].Picture = picture
			f.users[i].UpdatedAt = time.Now().UTC()
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ActivateSubscription(_ context.Context, email string, sub domain.Subscription) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].Email == email {
			f.users[i].Subscription.Status = sub.Status
			f.users[i].Subscription.StartDate = sub.StartDate
			f.users[i].Subscription.EndDate = sub.EndDate
			f.users[i].Subscription.PlanID = sub.PlanID
			f.users[i].Subscription.PlanDetails = sub.PlanDetails
			f.users[i].UpdatedAt = time.Now().UTC()
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ExpireSubscription(_ context.Context, email string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].Email == email {
			f.users[i].Subscription.Status = domain.SubExpired
			f.users[i].Subscription.EndDate = &at
			f.users[i].UpdatedAt = at
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CancelSubscriptionsByPlan(_ context.Context, planID primitive.ObjectID, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for i := range f.users {
		if pid := f.users[i].Subscription.PlanID; pid != nil && *pid == planID {
			f.users[i].Subscription.Status = domain.SubCancelled
			f.users[i].Subscription.CancelledAt = &at
			n++
		}
	}
	return n, nil
}

// fakeAssets records removal attempts; err, when set, simulates a storage or
// URL-parse failure.
type fakeAssets struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeAssets) RemoveByURL(_ context.Context, rawURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, rawURL)
	return f.err
}

var errStorage = errors.New("unexpected object URL layout")

type testEnv struct {
	Store  *fakeStore
	Assets *fakeAssets
	Router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &fakeStore{}
	assets := &fakeAssets{}
	h := api.NewHandler(store, assets, testAPIKey, false)
	r := api.NewRouter(h, []string{"https://admin.example.com"})
	return &testEnv{Store: store, Assets: assets, Router: r}
}

// do runs a request through the router. An empty token leaves the
// Authorization header unset.
func (e *testEnv) do(method, target, body, token string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}
