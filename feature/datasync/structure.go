package datasync

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"dex-wiki/core/models"
	"dex-wiki/core/storage"

	"github.com/minio/minio-go/v7"
)

// RequiredFolders lists the data root directories every record kind needs,
// relative to the root and slash separated.
func RequiredFolders() []string {
	var folders []string
	for _, kind := range models.Kinds {
		if kind == models.KindCreature {
			for _, sf := range models.CreatureSubfolders {
				folders = append(folders, path.Join(string(kind), sf))
			}
			continue
		}
		folders = append(folders, string(kind))
	}
	return folders
}

// CheckLocal returns the required folders missing under dataDir.
func CheckLocal(dataDir string) ([]string, error) {
	var missing []string
	for _, folder := range RequiredFolders() {
		info, err := os.Stat(filepath.Join(dataDir, filepath.FromSlash(folder)))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			missing = append(missing, folder)
		case err != nil:
			return nil, fmt.Errorf("failed to stat %s: %w", folder, err)
		case !info.IsDir():
			return nil, fmt.Errorf("%s exists but is not a directory", folder)
		}
	}
	return missing, nil
}

// FixLocal creates the missing folders under dataDir.
func FixLocal(dataDir string, missing []string) error {
	for _, folder := range missing {
		if err := os.MkdirAll(filepath.Join(dataDir, filepath.FromSlash(folder)), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", folder, err)
		}
	}
	return nil
}

// CheckRemote returns the required folders with no objects under prefix.
func CheckRemote(ctx context.Context, client storage.Client, bucket, prefix string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	var missing []string
	for _, folder := range RequiredFolders() {
		opts := minio.ListObjectsOptions{
			Prefix:    prefix + folder + "/",
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err != nil {
				return nil, fmt.Errorf("failed to list %s: %w", folder, obj.Err)
			}
			found = true
			break
		}
		if !found {
			missing = append(missing, folder)
		}
	}
	return missing, nil
}
