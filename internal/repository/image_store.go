package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrImageNotFound is returned when no blob exists for the given id.
var ErrImageNotFound = errors.New("image not found")

// ImageStore holds adventure cover images as binary blobs addressed by
// generated id.
type ImageStore interface {
	// Put stores the blob and returns a retrievable reference (URL path).
	Put(ctx context.Context, id, contentType string, data []byte) (string, error)
	// Get returns the blob bytes and its content type.
	Get(ctx context.Context, id string) ([]byte, string, error)
	Delete(ctx context.Context, id string) error
}

type gridfsImageStore struct {
	bucket *gridfs.Bucket
	files  *mongo.Collection
}

// NewImageStore creates a GridFS-backed image store.
func NewImageStore(db *mongo.Database) (ImageStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("images"))
	if err != nil {
		return nil, fmt.Errorf("create gridfs bucket: %w", err)
	}
	return &gridfsImageStore{
		bucket: bucket,
		files:  db.Collection("images.files"),
	}, nil
}

func (s *gridfsImageStore) Put(ctx context.Context, id, contentType string, data []byte) (string, error) {
	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	if err := s.bucket.UploadFromStreamWithID(id, id, bytes.NewReader(data), opts); err != nil {
		return "", fmt.Errorf("upload image %s: %w", id, err)
	}
	return "/v1/images/" + id, nil
}

func (s *gridfsImageStore) Get(ctx context.Context, id string) ([]byte, string, error) {
	var buf bytes.Buffer
	if _, err := s.bucket.DownloadToStream(id, &buf); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, "", ErrImageNotFound
		}
		return nil, "", fmt.Errorf("download image %s: %w", id, err)
	}

	contentType := "application/octet-stream"
	var meta struct {
		Metadata struct {
			ContentType string `bson:"contentType"`
		} `bson:"metadata"`
	}
	if err := s.files.FindOne(ctx, bson.M{"_id": id}).Decode(&meta); err == nil && meta.Metadata.ContentType != "" {
		contentType = meta.Metadata.ContentType
	}
	return buf.Bytes(), contentType, nil
}

func (s *gridfsImageStore) Delete(ctx context.Context, id string) error {
	err := s.bucket.DeleteContext(ctx, id)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return ErrImageNotFound
	}
	return err
}
