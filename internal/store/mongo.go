// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/olegiv/ozpolat-cms/internal/model"
)

// siteDocumentID is the _id of the single stored site document.
const siteDocumentID = "site"

// MongoCollection is the collection that holds the site document.
const MongoCollection = "site_content"

// siteRecord is the stored shape of the document.
type siteRecord struct {
	ID        string         `bson:"_id"`
	Version   int64          `bson:"version"`
	Doc       model.Document `bson:"doc"`
	UpdatedAt time.Time      `bson:"updated_at"`
}

// MongoBackend keeps the whole document in one MongoDB document guarded
// by a version counter. Transact commits only if the version it read is
// still current and returns ErrConflict otherwise.
type MongoBackend struct {
	client *mongo.Client
	c      *mongo.Collection
}

// ConnectMongo dials uri and returns a backend on the given database.
func ConnectMongo(ctx context.Context, uri, database string) (*MongoBackend, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, unavailable("connect", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, unavailable("ping", err)
	}
	return NewMongoBackend(client, client.Database(database)), nil
}

// NewMongoBackend returns a backend on db. Close disconnects client when
// it is non-nil.
func NewMongoBackend(client *mongo.Client, db *mongo.Database) *MongoBackend {
	return &MongoBackend{client: client, c: db.Collection(MongoCollection)}
}

// Load implements Backend.
func (b *MongoBackend) Load(ctx context.Context) (*model.Document, error) {
	rec, err := b.find(ctx)
	if err != nil {
		return nil, err
	}
	return &rec.Doc, nil
}

// Save implements Backend. It overwrites unconditionally.
func (b *MongoBackend) Save(ctx context.Context, doc *model.Document) error {
	update := bson.M{
		"$set": bson.M{"doc": doc, "updated_at": time.Now().UTC()},
		"$inc": bson.M{"version": int64(1)},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := b.c.UpdateOne(ctx, bson.M{"_id": siteDocumentID}, update, opts); err != nil {
		return unavailable("save", err)
	}
	return nil
}

// Transact implements Backend.
func (b *MongoBackend) Transact(ctx context.Context, fn func(doc *model.Document) error) error {
	rec, err := b.find(ctx)
	if err != nil {
		return err
	}
	if err := fn(&rec.Doc); err != nil {
		return err
	}
	rec.Doc.Normalize()
	now := time.Now().UTC()

	if rec.Version == 0 {
		_, err := b.c.InsertOne(ctx, siteRecord{
			ID:        siteDocumentID,
			Version:   1,
			Doc:       rec.Doc,
			UpdatedAt: now,
		})
		if mongo.IsDuplicateKeyError(err) {
			return ErrConflict
		}
		if err != nil {
			return unavailable("insert", err)
		}
		return nil
	}

	res, err := b.c.UpdateOne(ctx,
		bson.M{"_id": siteDocumentID, "version": rec.Version},
		bson.M{
			"$set": bson.M{"doc": rec.Doc, "updated_at": now},
			"$inc": bson.M{"version": int64(1)},
		})
	if err != nil {
		return unavailable("update", err)
	}
	if res.MatchedCount == 0 {
		return ErrConflict
	}
	return nil
}

// Ping implements Backend.
func (b *MongoBackend) Ping(ctx context.Context) error {
	if err := b.c.Database().Client().Ping(ctx, nil); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// Close implements Backend.
func (b *MongoBackend) Close() error {
	if b.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return b.client.Disconnect(ctx)
}

// find returns the stored record, or a version-0 record holding a fresh
// document when nothing has been stored yet.
func (b *MongoBackend) find(ctx context.Context) (*siteRecord, error) {
	var rec siteRecord
	err := b.c.FindOne(ctx, bson.M{"_id": siteDocumentID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &siteRecord{ID: siteDocumentID, Doc: *model.NewDocument()}, nil
	}
	if err != nil {
		return nil, unavailable("find", err)
	}
	rec.Doc.Normalize()
	return &rec, nil
}
