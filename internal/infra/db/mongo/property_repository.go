package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"villetta/internal/domain/property"
)

// PropertyRepository stores the property registry in MongoDB, for
// deployments where the portfolio is managed outside the fixtures file.
type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection("properties")}
}

func (r *PropertyRepository) ByID(ctx context.Context, id string) (*property.Property, error) {
	var doc propertyDocument
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, property.ErrNotFound
		}
		return nil, err
	}
	p := doc.toDomain()
	return &p, nil
}

func (r *PropertyRepository) List(ctx context.Context) ([]property.Property, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []property.Property
	for cursor.Next(ctx) {
		var doc propertyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

func (r *PropertyRepository) Save(ctx context.Context, p *property.Property) error {
	doc := newPropertyDocument(p)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

type propertyDocument struct {
	ID                 string `bson:"_id"`
	Slug               string `bson:"slug"`
	Name               string `bson:"name"`
	UpstreamCalendarID string `bson:"upstream_calendar_id"`
	UpstreamRoomTypeID string `bson:"upstream_room_type_id"`
	MaxGuests          int    `bson:"max_guests"`
	Currency           string `bson:"currency"`
	Timezone           string `bson:"timezone"`
}

func newPropertyDocument(p *property.Property) propertyDocument {
	return propertyDocument{
		ID:                 p.ID,
		Slug:               p.Slug,
		Name:               p.Name,
		UpstreamCalendarID: p.UpstreamCalendarID,
		UpstreamRoomTypeID: p.UpstreamRoomTypeID,
		MaxGuests:          p.MaxGuests,
		Currency:           p.Currency,
		Timezone:           p.Timezone,
	}
}

func (d propertyDocument) toDomain() property.Property {
	return property.Property{
		ID:                 d.ID,
		Slug:               d.Slug,
		Name:               d.Name,
		UpstreamCalendarID: d.UpstreamCalendarID,
		UpstreamRoomTypeID: d.UpstreamRoomTypeID,
		MaxGuests:          d.MaxGuests,
		Currency:           d.Currency,
		Timezone:           d.Timezone,
	}
}

var _ property.Repository = (*PropertyRepository)(nil)
