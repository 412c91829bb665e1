// Package publish uploads client build output to S3.
//
// Fingerprinted bundles are uploaded with an immutable cache policy.
// Everything else, including the manifest, is revalidated on every
// request. The manifest is uploaded last so it never names a bundle that
// is not in the bucket yet.
package publish

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/hatch/internal/errors"
	"github.com/vango-dev/hatch/pkg/assets"
)

const (
	// CacheImmutable is sent for fingerprinted files.
	CacheImmutable = "public, max-age=31536000, immutable"

	// CacheRevalidate is sent for everything else.
	CacheRevalidate = "no-cache"

	defaultConcurrency = 8
)

// PutObjectAPI is the subset of the S3 client the publisher uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads a directory tree to a bucket.
type S3Publisher struct {
	Client PutObjectAPI
	Bucket string

	// Prefix is prepended to every object key.
	Prefix string

	// Concurrency bounds parallel uploads. Zero uses a default.
	Concurrency int

	// OnUpload is called after each object is stored.
	OnUpload func(key string)
}

// Result summarizes a publish.
type Result struct {
	// Keys are the uploaded object keys in upload order.
	Keys  []string
	Bytes int64
}

// Publish uploads every file under dir.
func (p *S3Publisher) Publish(ctx context.Context, dir string) (*Result, error) {
	if p.Bucket == "" {
		return nil, errors.New("E203").
			WithDetail("No bucket configured.").
			WithSuggestion("Set publish.bucket in hatch.json or HATCH_PUBLISH_BUCKET")
	}

	files, err := collect(dir)
	if err != nil {
		return nil, errors.New("E203").Wrap(err)
	}

	var manifest string
	var rest []string
	for _, f := range files {
		if f == assets.ManifestFile {
			manifest = f
			continue
		}
		rest = append(rest, f)
	}

	limit := p.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	var total atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, rel := range rest {
		g.Go(func() error {
			n, err := p.upload(gctx, dir, rel)
			total.Add(n)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.FromError(err, "E203")
	}

	if manifest != "" {
		n, err := p.upload(ctx, dir, manifest)
		if err != nil {
			return nil, errors.FromError(err, "E203")
		}
		total.Add(n)
		rest = append(rest, manifest)
	}

	keys := make([]string, len(rest))
	for i, rel := range rest {
		keys[i] = p.key(rel)
	}
	return &Result{Keys: keys, Bytes: total.Load()}, nil
}

func (p *S3Publisher) key(rel string) string {
	return path.Join(p.Prefix, rel)
}

func (p *S3Publisher) upload(ctx context.Context, dir, rel string) (int64, error) {
	f, err := os.Open(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	key := p.key(rel)
	_, err = p.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.Bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(ContentType(rel)),
		CacheControl:  aws.String(CacheControl(rel)),
	})
	if err != nil {
		return 0, errors.New("E203").WithDetailf("Uploading %s failed.", key).Wrap(err)
	}
	if p.OnUpload != nil {
		p.OnUpload(key)
	}
	return info.Size(), nil
}

// ContentType returns the MIME type for a file name.
func ContentType(name string) string {
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// CacheControl returns the Cache-Control policy for a file name.
func CacheControl(name string) string {
	if assets.IsFingerprinted(name) {
		return CacheImmutable
	}
	return CacheRevalidate
}

// collect returns every regular file under dir as a slash path, sorted.
func collect(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
