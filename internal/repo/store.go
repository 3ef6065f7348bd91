package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mechbano/site-api/internal/log"
)

// Collection names match the documents written by the admin panel; renaming any
// of them orphans existing data.
const (
	colVideos   = "youtube_videos"
	colPDFs     = "pdfs"
	colLogo     = "logo"
	colSiteName = "site_name"
	colPages    = "page_control"
	colPlans    = "subscription_plans"
	colUsers    = "users"
	colWelcome  = "welcome_note"
)

// ErrUnavailable is what callers see when the connection cannot be established;
// the underlying driver error stays in the logs.
var ErrUnavailable = errors.New("database unavailable")

// Store owns the single pooled Mongo client for the process. The client is
// created lazily on first use and cached; a cleared pool drops the cache so the
// next call reconnects.
type Store struct {
	uri    string
	dbname string

	mu     sync.Mutex
	client *mongo.Client
}

func NewStore(uri, dbname string) (*Store, error) {
	if !strings.HasPrefix(uri, "mongodb") {
		return nil, fmt.Errorf("invalid mongo uri: must start with mongodb")
	}
	return &Store{uri: uri, dbname: dbname}, nil
}

func (s *Store) db(ctx context.Context) (*mongo.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client.Database(s.dbname), nil
	}

	opts := options.Client().
		ApplyURI(s.uri).
		SetMaxPoolSize(10).
		SetMinPoolSize(2).
		SetSocketTimeout(30 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetHeartbeatInterval(10 * time.Second).
		SetPoolMonitor(&event.PoolMonitor{Event: s.onPoolEvent})

	cli, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.L.Error("mongo connect failed", zap.Error(err))
		return nil, ErrUnavailable
	}
	s.client = cli
	return cli.Database(s.dbname), nil
}

func (s *Store) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

func (s *Store) onPoolEvent(e *event.PoolEvent) {
	if e.Type != event.PoolCleared {
		return
	}
	log.L.Warn("mongo pool cleared, dropping cached client", zap.String("address", e.Address))
	s.Invalidate()
}

// Invalidate drops the cached client so the next access reconnects. The old
// client is disconnected off the caller's goroutine; the driver may invoke
// pool events from its own internals.
func (s *Store) Invalidate() {
	s.mu.Lock()
	cli := s.client
	s.client = nil
	s.mu.Unlock()

	if cli != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = cli.Disconnect(ctx)
		}()
	}
}

func (s *Store) Ping(ctx context.Context) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.Client().Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	cli := s.client
	s.client = nil
	s.mu.Unlock()
	if cli == nil {
		return nil
	}
	return cli.Disconnect(ctx)
}
