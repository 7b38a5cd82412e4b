// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/glebics/basealt-test-task/internal/log"
)

// options holds optional overrides for AWS config loading.
type options struct {
	profile     string
	region      string
	retryer     func() awsv2.Retryer
	credentials awsv2.CredentialsProvider
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS). Options can override
// profile, region, retryer and credentials without changing callers.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("opts applied: profile=%s, region=%s", o.profile, o.region)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}
	if o.credentials != nil {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(o.credentials))
	}
	log.Debugf("loadOpts built: len=%d", len(loadOpts))

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Debugf("config load err: err=%v", err)
		return awsv2.Config{}, err
	}
	log.Debugf("config loaded")
	return cfg, nil
}

// NewS3 constructs a v2 S3 client from the provided config. Additional service
// options can be supplied via optFns.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	client := s3v2.NewFromConfig(cfg, optFns...)
	log.Debugf("s3 client created")
	return client
}

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithRetryer injects a custom retryer; if not set, SDK defaults are used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// WithCredentials replaces the credential chain, e.g. with
// awsv2.AnonymousCredentials{} for a public bucket.
func WithCredentials(provider awsv2.CredentialsProvider) Option {
	return func(o *options) { o.credentials = provider }
}

// WithS3Endpoint points the client at an S3 compatible server such as MinIO.
// Empty keeps the AWS endpoint.
func WithS3Endpoint(endpoint string) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		if endpoint != "" {
			o.BaseEndpoint = awsv2.String(endpoint)
		}
	}
}

// WithS3PathStyle switches to bucket-in-path addressing.
func WithS3PathStyle(enabled bool) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		o.UsePathStyle = enabled
	}
}

// WithS3RequiredChecksums limits request checksums and response validation to
// the operations that require them. Most S3 compatible servers reject the
// trailing checksums newer SDKs send by default.
func WithS3RequiredChecksums() func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		o.RequestChecksumCalculation = awsv2.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = awsv2.ResponseChecksumValidationWhenRequired
	}
}
