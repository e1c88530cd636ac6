// Package publish uploads a written report directory to S3.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ObjectPutter is the part of *s3.Client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Uploader struct {
	Client ObjectPutter
	Bucket string
	Prefix string
	Log    *zap.Logger
}

// NewUploader builds an S3 client from the default AWS credential chain.
func NewUploader(ctx context.Context, bucket, prefix, region string, log *zap.Logger) (*Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("publish: bucket is required")
	}
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Uploader{Client: s3.NewFromConfig(cfg), Bucket: bucket, Prefix: prefix, Log: log}, nil
}

// Key maps a path relative to the uploaded directory to its object key.
func (u *Uploader) Key(rel string) string {
	rel = filepath.ToSlash(rel)
	if u.Prefix == "" {
		return rel
	}
	return path.Join(strings.Trim(u.Prefix, "/"), rel)
}

// UploadDir puts every regular file under dir and returns the keys written.
func (u *Uploader) UploadDir(ctx context.Context, dir string) ([]string, error) {
	log := u.Log
	if log == nil {
		log = zap.NewNop()
	}
	var keys []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		body, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		key := u.Key(rel)
		_, err = u.Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(u.Bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String(ContentType(p)),
		})
		if err != nil {
			return fmt.Errorf("put s3://%s/%s: %w", u.Bucket, key, err)
		}
		log.Debug("uploaded", zap.String("key", key), zap.Int("bytes", len(body)))
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return keys, err
	}
	log.Info("report published", zap.String("bucket", u.Bucket), zap.Int("objects", len(keys)))
	return keys, nil
}

var contentTypes = map[string]string{
	".html":    "text/html; charset=utf-8",
	".json":    "application/json",
	".md":      "text/markdown; charset=utf-8",
	".png":     "image/png",
	".pdf":     "application/pdf",
	".csv":     "text/csv; charset=utf-8",
	".xlsx":    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".parquet": "application/vnd.apache.parquet",
}

func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
