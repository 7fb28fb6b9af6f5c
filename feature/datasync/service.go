package datasync

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"dex-wiki/core/storage"

	"github.com/minio/minio-go/v7"
	natomic "github.com/natefinch/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const recordExt = ".json"

// Report summarizes one transfer run.
type Report struct {
	Transferred int   `json:"transferred"`
	Skipped     int   `json:"skipped"`
	Failed      int   `json:"failed"`
	Bytes       int64 `json:"bytes"`
}

type counters struct {
	transferred atomic.Int64
	skipped     atomic.Int64
	failed      atomic.Int64
	bytes       atomic.Int64
}

func (c *counters) report() *Report {
	return &Report{
		Transferred: int(c.transferred.Load()),
		Skipped:     int(c.skipped.Load()),
		Failed:      int(c.failed.Load()),
		Bytes:       c.bytes.Load(),
	}
}

// Invalidator drops cached records after the data root changed.
type Invalidator interface {
	ClearCache()
}

// Service mirrors the data repository between a bucket and the local data
// root.
type Service struct {
	client  storage.Client
	bucket  string
	cfg     Config
	dataDir string
	logger  *zap.Logger
	cache   Invalidator
}

// NewService creates a sync service. cache may be nil.
func NewService(client storage.Client, bucket string, cfg Config, dataDir string, logger *zap.Logger, cache Invalidator) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		bucket:  bucket,
		cfg:     cfg,
		dataDir: dataDir,
		logger:  logger,
		cache:   cache,
	}
}

// Pull downloads every record file under the prefix into the data root.
// Files whose size matches and that are not older than the object are
// skipped. Each file is replaced atomically so concurrent readers never see a
// partial record.
func (s *Service) Pull(ctx context.Context) (*Report, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	s.logger.Info("Pulling data repository",
		zap.String("bucket", s.bucket),
		zap.String("prefix", s.cfg.Prefix),
		zap.String("dir", s.dataDir),
	)

	var c counters
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.workers())

	opts := minio.ListObjectsOptions{Prefix: s.cfg.Prefix, Recursive: true}
	for obj := range s.client.ListObjects(gctx, s.bucket, opts) {
		if obj.Err != nil {
			_ = g.Wait()
			return c.report(), fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, recordExt) {
			continue
		}
		rel := filepath.FromSlash(strings.TrimPrefix(obj.Key, s.cfg.Prefix))
		if !filepath.IsLocal(rel) {
			s.logger.Warn("Skipping object outside the data root", zap.String("key", obj.Key))
			c.skipped.Add(1)
			continue
		}
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			s.pullObject(gctx, obj, filepath.Join(s.dataDir, rel), &c)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return c.report(), err
	}
	if err := ctx.Err(); err != nil {
		return c.report(), err
	}

	report := c.report()
	if report.Transferred > 0 && s.cache != nil {
		s.cache.ClearCache()
	}
	s.logger.Info("Pull complete",
		zap.Int("downloaded", report.Transferred),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
		zap.Int64("bytes", report.Bytes),
	)
	return report, nil
}

func (s *Service) pullObject(ctx context.Context, obj minio.ObjectInfo, dst string, c *counters) {
	if info, err := os.Stat(dst); err == nil && info.Size() == obj.Size && !info.ModTime().Before(obj.LastModified) {
		c.skipped.Add(1)
		return
	}

	if err := s.download(ctx, obj.Key, dst); err != nil {
		c.failed.Add(1)
		s.logger.Error("Failed to download record", zap.String("key", obj.Key), zap.Error(err))
		return
	}
	if !obj.LastModified.IsZero() {
		_ = os.Chtimes(dst, obj.LastModified, obj.LastModified)
	}
	c.transferred.Add(1)
	c.bytes.Add(obj.Size)
}

func (s *Service) download(ctx context.Context, key, dst string) error {
	body, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to get object: %w", err)
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := natomic.WriteFile(dst, body); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return os.Chmod(dst, 0o644)
}

// Push uploads every record file of the data root under the prefix, creating
// the bucket when it does not exist.
func (s *Service) Push(ctx context.Context) (*Report, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
		s.logger.Info("Created bucket", zap.String("bucket", s.bucket))
	}

	var c counters
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.workers())

	walkErr := filepath.WalkDir(s.dataDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), recordExt) {
			return nil
		}
		if err := gctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(s.dataDir, p)
		if err != nil {
			return err
		}
		key := s.cfg.Prefix + filepath.ToSlash(rel)

		g.Go(func() error {
			n, err := s.upload(gctx, p, key)
			if err != nil {
				c.failed.Add(1)
				s.logger.Error("Failed to upload record", zap.String("key", key), zap.Error(err))
				return nil
			}
			c.transferred.Add(1)
			c.bytes.Add(n)
			return nil
		})
		return nil
	})

	waitErr := g.Wait()
	if walkErr != nil && !errors.Is(walkErr, context.Canceled) {
		return c.report(), fmt.Errorf("failed to walk data root: %w", walkErr)
	}
	if waitErr != nil {
		return c.report(), waitErr
	}
	if err := ctx.Err(); err != nil {
		return c.report(), err
	}

	report := c.report()
	s.logger.Info("Push complete",
		zap.Int("uploaded", report.Transferred),
		zap.Int("failed", report.Failed),
		zap.Int64("bytes", report.Bytes),
	)
	return report, nil
}

func (s *Service) upload(ctx context.Context, src, key string) (int64, error) {
	f, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	_, err = s.client.PutObject(ctx, s.bucket, key, f, info.Size(), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// CheckStructure reports the folders missing locally and in the bucket.
func (s *Service) CheckStructure(ctx context.Context) (local, remote []string, err error) {
	local, err = CheckLocal(s.dataDir)
	if err != nil {
		return nil, nil, err
	}
	remote, err = CheckRemote(ctx, s.client, s.bucket, s.cfg.Prefix)
	if err != nil {
		return local, nil, err
	}
	return local, remote, nil
}

// FixLocal creates the missing local folders.
func (s *Service) FixLocal(missing []string) error {
	if err := FixLocal(s.dataDir, missing); err != nil {
		return err
	}
	if len(missing) > 0 {
		s.logger.Info("Created missing data folders", zap.Strings("folders", missing))
	}
	return nil
}
