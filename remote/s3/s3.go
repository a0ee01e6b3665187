// Package s3 implements remote.Store for S3-compatible object storage.
package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/unalkalkan/dropfs/remote"
)

// Store addresses a single bucket. Normalized absolute paths map to object
// keys by dropping the leading slash; "folders" are the usual key-prefix
// convention.
type Store struct {
	client *s3.Client
	bucket string
}

// Options holds S3 store configuration.
type Options struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

// New creates a Store for the configured bucket. When no static credentials
// are given, the default AWS credential chain is used.
func New(ctx context.Context, opts Options) (*Store, error) {
	var cfg aws.Config
	var err error

	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		cfg, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(opts.Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				opts.AccessKeyID,
				opts.SecretAccessKey,
				"",
			)),
		)
	} else {
		cfg, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(opts.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true // required for MinIO and similar services
		})
	}

	return &Store{
		client: s3.NewFromConfig(cfg, clientOpts...),
		bucket: opts.Bucket,
	}, nil
}

// key converts a normalized path to an object key.
func key(p string) string {
	return strings.TrimPrefix(p, "/")
}

// folderPrefix converts a normalized folder path to a listing prefix.
func folderPrefix(folder string) string {
	k := key(folder)
	if k == "" {
		return ""
	}
	return k + "/"
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "NoSuchKey") ||
		strings.Contains(msg, "NotFound") ||
		strings.Contains(msg, "404")
}

func (s *Store) Search(ctx context.Context, folder, name string) ([]remote.Match, error) {
	prefix := folderPrefix(folder)

	var matches []remote.Match
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 search %q in %s: %w", name, folder, err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			base := path.Base(*obj.Key)
			if base == name {
				matches = append(matches, remote.Match{Path: "/" + *obj.Key, Name: base})
			}
		}
		for _, cp := range page.CommonPrefixes {
			if cp.Prefix == nil {
				continue
			}
			base := path.Base(strings.TrimSuffix(*cp.Prefix, "/"))
			if base == name {
				matches = append(matches, remote.Match{
					Path: "/" + strings.TrimSuffix(*cp.Prefix, "/"),
					Name: base,
				})
			}
		}
	}
	return matches, nil
}

func (s *Store) ListFolder(ctx context.Context, p string) ([]remote.Entry, error) {
	prefix := folderPrefix(p)

	var entries []remote.Entry
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 list %s: %w", p, err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil || *obj.Key == prefix {
				continue
			}
			entries = append(entries, remote.Entry{Name: path.Base(*obj.Key)})
		}
		for _, cp := range page.CommonPrefixes {
			if cp.Prefix == nil {
				continue
			}
			entries = append(entries, remote.Entry{
				Name:     path.Base(strings.TrimSuffix(*cp.Prefix, "/")),
				IsFolder: true,
			})
		}
	}
	return entries, nil
}

// Delete removes the object at path. Deleting an absent key succeeds; that is
// S3's own semantics and is deliberately not masked.
func (s *Store) Delete(ctx context.Context, p string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(p)),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", p, err)
	}
	return nil
}

func (s *Store) Copy(ctx context.Context, src, dest string) error {
	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		CopySource: aws.String(s.bucket + "/" + key(src)),
		Key:        aws.String(key(dest)),
	})
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("s3 copy %s to %s: %w", src, dest, remote.ErrNotFound)
		}
		return fmt.Errorf("s3 copy %s to %s: %w", src, dest, err)
	}
	return nil
}

// Move is not a native S3 primitive; the client falls back to Copy+Delete.
func (s *Store) Move(ctx context.Context, src, dest string) error {
	return remote.ErrNotSupported
}

func (s *Store) Download(ctx context.Context, p string) (remote.Metadata, io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(p)),
	})
	if err != nil {
		if isNotFound(err) {
			return remote.Metadata{}, nil, fmt.Errorf("s3 download %s: %w", p, remote.ErrNotFound)
		}
		return remote.Metadata{}, nil, fmt.Errorf("s3 download %s: %w", p, err)
	}

	md := remote.Metadata{Path: p}
	if out.ContentLength != nil {
		md.Size = *out.ContentLength
	}
	return md, out.Body, nil
}

func (s *Store) Upload(ctx context.Context, data io.Reader, p string, overwrite bool) error {
	if !overwrite {
		_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key(p)),
		})
		if err == nil {
			return fmt.Errorf("s3 upload %s: destination already exists", p)
		}
		if !isNotFound(err) {
			return fmt.Errorf("s3 upload %s: %w", p, err)
		}
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(p)),
		Body:   data,
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s: %w", p, err)
	}
	return nil
}

// Close cleans up any resources; nothing to release for S3.
func (s *Store) Close() error {
	return nil
}
