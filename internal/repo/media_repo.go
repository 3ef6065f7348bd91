package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mechbano/site-api/internal/domain"
)

func (s *Store) ListVideos(ctx context.Context, skip, limit int64) ([]domain.Video, int64, error) {
	coll, err := s.collection(ctx, colVideos)
	if err != nil {
		return nil, 0, err
	}
	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSkip(skip).SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]domain.Video, 0)
	for cur.Next(ctx) {
		var v domain.Video
		if err := cur.Decode(&v); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	total, err := coll.CountDocuments(ctx, bson.M{})
	return out, total, err
}

func (s *Store) InsertVideo(ctx context.Context, v *domain.Video) error {
	coll, err := s.collection(ctx, colVideos)
	if err != nil {
		return err
	}
	v.CreatedAt = time.Now().UTC()
	res, err := coll.InsertOne(ctx, v)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		v.ID = oid
	}
	return nil
}

func (s *Store) UpdateVideo(ctx context.Context, id primitive.ObjectID, v domain.Video) (bool, error) {
	coll, err := s.collection(ctx, colVideos)
	if err != nil {
		return false, err
	}
	now := time.Now().UTC()
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"title":        v.Title,
		"description":  v.Description,
		"embedLink":    v.EmbedLink,
		"originalLink": v.OriginalLink,
		"category":     v.Category,
		"updatedAt":    now,
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *Store) DeleteVideo(ctx context.Context, id primitive.ObjectID) (bool, error) {
	coll, err := s.collection(ctx, colVideos)
	if err != nil {
		return false, err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *Store) ListPDFs(ctx context.Context, skip, limit int64) ([]domain.PDF, int64, error) {
	coll, err := s.collection(ctx, colPDFs)
	if err != nil {
		return nil, 0, err
	}
	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSkip(skip).SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]domain.PDF, 0)
	for cur.Next(ctx) {
		var p domain.PDF
		if err := cur.Decode(&p); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	total, err := coll.CountDocuments(ctx, bson.M{})
	return out, total, err
}

func (s *Store) InsertPDF(ctx context.Context, p *domain.PDF) error {
	coll, err := s.collection(ctx, colPDFs)
	if err != nil {
		return err
	}
	p.CreatedAt = time.Now().UTC()
	res, err := coll.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (s *Store) UpdatePDF(ctx context.Context, id primitive.ObjectID, p domain.PDF) (bool, error) {
	coll, err := s.collection(ctx, colPDFs)
	if err != nil {
		return false, err
	}
	now := time.Now().UTC()
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"title":        p.Title,
		"originalLink": p.OriginalLink,
		"category":     p.Category,
		"updatedAt":    now,
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *Store) FindPDF(ctx context.Context, id primitive.ObjectID) (*domain.PDF, error) {
	coll, err := s.collection(ctx, colPDFs)
	if err != nil {
		return nil, err
	}
	var p domain.PDF
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) DeletePDF(ctx context.Context, id primitive.ObjectID) (bool, error) {
	coll, err := s.collection(ctx, colPDFs)
	if err != nil {
		return false, err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
