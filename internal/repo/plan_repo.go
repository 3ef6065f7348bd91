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

func (s *Store) ListPlans(ctx context.Context, skip, limit int64) ([]domain.Plan, int64, error) {
	coll, err := s.collection(ctx, colPlans)
	if err != nil {
		return nil, 0, err
	}
	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSkip(skip).SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]domain.Plan, 0)
	for cur.Next(ctx) {
		var p domain.Plan
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

func (s *Store) InsertPlan(ctx context.Context, p *domain.Plan) error {
	coll, err := s.collection(ctx, colPlans)
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

func (s *Store) UpdatePlan(ctx context.Context, id primitive.ObjectID, p domain.Plan) (bool, error) {
	coll, err := s.collection(ctx, colPlans)
	if err != nil {
		return false, err
	}
	now := time.Now().UTC()
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"title":     p.Title,
		"price":     p.Price,
		"days":      p.Days,
		"discount":  p.Discount,
		"updatedAt": now,
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *Store) FindPlan(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	coll, err := s.collection(ctx, colPlans)
	if err != nil {
		return nil, err
	}
	var p domain.Plan
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) DeletePlan(ctx context.Context, id primitive.ObjectID) (bool, error) {
	coll, err := s.collection(ctx, colPlans)
	if err != nil {
		return false, err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
