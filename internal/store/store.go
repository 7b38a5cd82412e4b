// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/apex/log"

	awsx "github.com/glebics/basealt-test-task/internal/aws"
	"github.com/glebics/basealt-test-task/internal/config"
)

// ErrNotFound is returned by Get when no blob exists under the key.
var ErrNotFound = errors.New("not found")

// Store reads and writes whole blobs by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	String() string
}

// New returns the Store selected by s. Local keys resolve beneath root.
func New(ctx context.Context, s config.StoreSettings, root string) (Store, error) {
	log.Debugf("store: type=%s root=%s", s.Type, root)

	switch s.Type {
	case "", "local":
		return NewLocal(root), nil
	case "s3":
		var opts []awsx.Option
		if s.Profile != "" {
			opts = append(opts, awsx.WithProfile(s.Profile))
		}
		if s.Region != "" {
			opts = append(opts, awsx.WithRegion(s.Region))
		}
		cfg, err := awsx.LoadAWSConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client := awsx.NewS3(cfg, s3ClientOptions(s)...)
		return NewS3(client, s.Bucket, s.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown store type %q", s.Type)
	}
}

// ListingKey names the persisted listing of branch for arch.
func ListingKey(dir, branch, arch string) string {
	return path.Join(dir, fmt.Sprintf("%s_%s_packages.json", branch, arch))
}

// ReportKey names the full comparison report for arch.
func ReportKey(dir, arch string) string {
	return path.Join(dir, fmt.Sprintf("comparison_result_%s.json", arch))
}

// BucketKey names the file holding a single report bucket for arch, e.g.
// comparison_result_only_in_p10_x86_64.json.
func BucketKey(dir, bucket, arch string) string {
	return path.Join(dir, fmt.Sprintf("comparison_result_%s_%s.json", bucket, arch))
}
