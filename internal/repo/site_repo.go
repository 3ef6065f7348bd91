package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mechbano/site-api/internal/domain"
)

// Singleton documents are read with an empty filter and written with
// upsert-on-empty-filter, so each collection holds at most one record.

func (s *Store) GetLogo(ctx context.Context) (*domain.Logo, error) {
	coll, err := s.collection(ctx, colLogo)
	if err != nil {
		return nil, err
	}
	var l domain.Logo
	err = coll.FindOne(ctx, bson.M{}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Store) SetLogo(ctx context.Context, url string) error {
	coll, err := s.collection(ctx, colLogo)
	if err != nil {
		return err
	}
	_, err = coll.UpdateOne(ctx, bson.M{},
		bson.M{"$set": bson.M{"url": url}},
		options.Update().SetUpsert(true))
	return err
}

func (s *Store) GetSiteName(ctx context.Context) (*domain.SiteName, error) {
	coll, err := s.collection(ctx, colSiteName)
	if err != nil {
		return nil, err
	}
	var n domain.SiteName
	err = coll.FindOne(ctx, bson.M{}).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Store) SetSiteName(ctx context.Context, name string) error {
	coll, err := s.collection(ctx, colSiteName)
	if err != nil {
		return err
	}
	_, err = coll.UpdateOne(ctx, bson.M{},
		bson.M{"$set": bson.M{"name": name}},
		options.Update().SetUpsert(true))
	return err
}

func (s *Store) ListPages(ctx context.Context) ([]domain.Page, error) {
	coll, err := s.collection(ctx, colPages)
	if err != nil {
		return nil, err
	}
	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]domain.Page, 0)
	for cur.Next(ctx) {
		var p domain.Page
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

func (s *Store) SetPageEnabled(ctx context.Context, id primitive.ObjectID, enabled bool) (bool, error) {
	coll, err := s.collection(ctx, colPages)
	if err != nil {
		return false, err
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"enabled": enabled}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *Store) GetWelcomeNote(ctx context.Context) (*domain.WelcomeNote, error) {
	coll, err := s.collection(ctx, colWelcome)
	if err != nil {
		return nil, err
	}
	var n domain.WelcomeNote
	err = coll.FindOne(ctx, bson.M{}).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// SetWelcomeNote upserts the note and reports whether a new document was created.
func (s *Store) SetWelcomeNote(ctx context.Context, title, message string) (bool, error) {
	coll, err := s.collection(ctx, colWelcome)
	if err != nil {
		return false, err
	}
	res, err := coll.UpdateOne(ctx, bson.M{},
		bson.M{"$set": bson.M{"title": title, "message": message}},
		options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}
