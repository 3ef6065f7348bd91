package http

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mechbano/site-api/internal/domain"
)

// Handlers talk to persistence through these interfaces so tests can swap in
// an in-memory store. *repo.Store implements all of them.

type MediaStore interface {
	ListVideos(ctx context.Context, skip, limit int64) ([]domain.Video, int64, error)
	InsertVideo(ctx context.Context, v *domain.Video) error
	UpdateVideo(ctx context.Context, id primitive.ObjectID, v domain.Video) (bool, error)
	DeleteVideo(ctx context.Context, id primitive.ObjectID) (bool, error)

	ListPDFs(ctx context.Context, skip, limit int64) ([]domain.PDF, int64, error)
	InsertPDF(ctx context.Context, p *domain.PDF) error
	UpdatePDF(ctx context.Context, id primitive.ObjectID, p domain.PDF) (bool, error)
	FindPDF(ctx context.Context, id primitive.ObjectID) (*domain.PDF, error)
	DeletePDF(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type SiteStore interface {
	GetLogo(ctx context.Context) (*domain.Logo, error)
	SetLogo(ctx context.Context, url string) error
	GetSiteName(ctx context.Context) (*domain.SiteName, error)
	SetSiteName(ctx context.Context, name string) error
	ListPages(ctx context.Context) ([]domain.Page, error)
	SetPageEnabled(ctx context.Context, id primitive.ObjectID, enabled bool) (bool, error)
	GetWelcomeNote(ctx context.Context) (*domain.WelcomeNote, error)
	SetWelcomeNote(ctx context.Context, title, message string) (bool, error)
}

type PlanStore interface {
	ListPlans(ctx context.Context, skip, limit int64) ([]domain.Plan, int64, error)
	InsertPlan(ctx context.Context, p *domain.Plan) error
	UpdatePlan(ctx context.Context, id primitive.ObjectID, p domain.Plan) (bool, error)
	FindPlan(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	DeletePlan(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) error
	ListUsers(ctx context.Context, search string, skip, limit int64) ([]domain.User, int64, error)
	DeleteUserByEmail(ctx context.Context, email string) (bool, error)
	UpdateUserProfile(ctx context.Context, email, name, picture string) (bool, error)
	ActivateSubscription(ctx context.Context, email string, sub domain.Subscription) (bool, error)
	ExpireSubscription(ctx context.Context, email string, at time.Time) (bool, error)
	CancelSubscriptionsByPlan(ctx context.Context, planID primitive.ObjectID, at time.Time) (int64, error)
}

type Store interface {
	MediaStore
	SiteStore
	PlanStore
	UserStore
	Ping(ctx context.Context) error
}

// AssetRemover deletes the external object a stored public URL points at.
// Implemented by *storage.Deleter; failures are logged by the caller, never
// surfaced to the client.
type AssetRemover interface {
	RemoveByURL(ctx context.Context, rawURL string) error
}
