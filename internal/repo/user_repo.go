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

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	coll, err := s.collection(ctx, colUsers)
	if err != nil {
		return nil, err
	}
	var u domain.User
	err = coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	coll, err := s.collection(ctx, colUsers)
	if err != nil {
		return err
	}
	res, err := coll.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

// ListUsers pages through users, optionally filtering by a case-insensitive
// match over email and name. Internal fields and the raw plan reference are
// projected out of the result.
func (s *Store) ListUsers(ctx context.Context, search string, skip, limit int64) ([]domain.User, int64, error) {
	coll, err := s.collection(ctx, colUsers)
	if err != nil {
		return nil, 0, err
	}
	filter := bson.M{}
	if search != "" {
		filter["$or"] = []bson.M{
			{"email": primitive.Regex{Pattern: search, Options: "i"}},
			{"name": primitive.Regex{Pattern: search, Options: "i"}},
		}
	}
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetProjection(bson.M{
			"password":            0,
			"tokens":              0,
			"subscription.planId": 0,
		})
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]domain.User, 0)
	for cur.Next(ctx) {
		var u domain.User
		if err := cur.Decode(&u); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	total, err := coll.CountDocuments(ctx, filter)
	return out, total, err
}

func (s *Store) DeleteUserByEmail(ctx context.Context, email string) (bool, error) {
	coll, err := s.collection(ctx, colUsers)
	if err != nil {
		return false, err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *Store) UpdateUserProfile(ctx context.Context, email, name, picture string) (bool, error) {
	coll, err := s.collection(ctx, colUsers)
	if err != nil {
		return false, err
	}
	res, err := coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{
		"name":      name,
		"picture":   picture,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// ActivateSubscription writes the active status and the plan snapshot with
// dotted paths, leaving unrelated subscription fields (a previous cancelledAt,
// for one) untouched. Last write wins when two activations race.
func (s *Store) ActivateSubscription(ctx context.Context, email string, sub domain.Subscription) (bool, error) {
	coll, err := s.collection(ctx, colUsers)
	if err != nil {
		return false, err
	}
	res, err := coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{
		"subscription.status":      sub.Status,
		"subscription.startDate":   sub.StartDate,
		"subscription.endDate":     sub.EndDate,
		"subscription.planId":      sub.PlanID,
		"subscription.planDetails": sub.PlanDetails,
		"updatedAt":                time.Now().UTC(),
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *Store) ExpireSubscription(ctx context.Context, email string, at time.Time) (bool, error) {
	coll, err := s.collection(ctx, colUsers)
	if err != nil {
		return false, err
	}
	res, err := coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{
		"subscription.status":  domain.SubExpired,
		"subscription.endDate": at,
		"updatedAt":            at,
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// CancelSubscriptionsByPlan is the secondary effect of a plan delete. It is a
// separate operation from the delete itself; a failure in between leaves users
// pointing at a plan that no longer exists.
func (s *Store) CancelSubscriptionsByPlan(ctx context.Context, planID primitive.ObjectID, at time.Time) (int64, error) {
	coll, err := s.collection(ctx, colUsers)
	if err != nil {
		return 0, err
	}
	res, err := coll.UpdateMany(ctx,
		bson.M{"subscription.planId": planID},
		bson.M{"$set": bson.M{
			"subscription.status":      domain.SubCancelled,
			"subscription.cancelledAt": at,
		}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
