// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	awsx "github.com/glebics/basealt-test-task/internal/aws"
	"github.com/glebics/basealt-test-task/internal/config"
)

// objectAPI is the part of the S3 client the store needs.
type objectAPI interface {
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// S3 stores blobs as objects in Bucket under Prefix.
type S3 struct {
	client objectAPI
	Bucket string
	Prefix string
}

// NewS3 returns an S3 store using client.
func NewS3(client objectAPI, bucket, prefix string) *S3 {
	return &S3{client: client, Bucket: bucket, Prefix: prefix}
}

func s3ClientOptions(s config.StoreSettings) []func(*s3v2.Options) {
	opts := []func(*s3v2.Options){awsx.WithS3PathStyle(s.PathStyle)}
	if s.Endpoint != "" {
		opts = append(opts, awsx.WithS3Endpoint(s.Endpoint), awsx.WithS3RequiredChecksums())
	}
	return opts
}

func (st *S3) key(key string) string {
	if st.Prefix == "" {
		return key
	}
	return path.Join(st.Prefix, key)
}

// Get implements Store.
func (st *S3) Get(ctx context.Context, key string) ([]byte, error) {
	k := st.key(key)
	out, err := st.client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(st.Bucket),
		Key:    awsv2.String(k),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("s3://%s/%s: %w", st.Bucket, k, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get S3 object s3://%s/%s: %w", st.Bucket, k, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}
	return data, nil
}

// Put implements Store.
func (st *S3) Put(ctx context.Context, key string, data []byte) error {
	k := st.key(key)
	_, err := st.client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:        awsv2.String(st.Bucket),
		Key:           awsv2.String(k),
		Body:          bytes.NewReader(data),
		ContentLength: awsv2.Int64(int64(len(data))),
		ContentType:   awsv2.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put S3 object s3://%s/%s: %w", st.Bucket, k, err)
	}
	log.Debugf("s3 put: key=%s bytes=%d", k, len(data))
	return nil
}

func (st *S3) String() string {
	return "s3://" + path.Join(st.Bucket, st.Prefix)
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
