// Package storage removes uploaded objects from Supabase storage when their
// database records are deleted. Every call is best-effort: callers log failures
// and carry on, a missing object never blocks the primary delete.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
)

type Deleter struct {
	client *storage_go.Client
}

// NewDeleter returns nil when the project URL or service key is absent; a nil
// Deleter silently skips every removal, mirroring a deployment without storage
// credentials.
func NewDeleter(projectURL, serviceKey string) *Deleter {
	if projectURL == "" || serviceKey == "" {
		return nil
	}
	base := strings.TrimRight(projectURL, "/") + "/storage/v1"
	return &Deleter{client: storage_go.NewClient(base, serviceKey, nil)}
}

// ParseObjectURL splits a public object URL into its bucket and object path.
// The expected layout is /storage/v1/object/public/<bucket>/<path...>; anything
// else is rejected.
func ParseObjectURL(raw string) (bucket, path string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	parts := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	if len(parts) < 6 || parts[0] != "storage" || parts[2] != "object" || parts[3] != "public" {
		return "", "", fmt.Errorf("unexpected object URL layout: %q", u.Path)
	}
	return parts[4], strings.Join(parts[5:], "/"), nil
}

// RemoveByURL parses the stored public URL and deletes the object it points at.
func (d *Deleter) RemoveByURL(ctx context.Context, raw string) error {
	if d == nil {
		return nil
	}
	bucket, path, err := ParseObjectURL(raw)
	if err != nil {
		return err
	}
	if _, err := d.client.RemoveFile(bucket, []string{path}); err != nil {
		return fmt.Errorf("remove %s/%s: %w", bucket, path, err)
	}
	return nil
}
