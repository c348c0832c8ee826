// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package s3seed reads the coffee shop seed CSV file from an object
// which is kept in an S3-compatible storage (e.g., MinIO or AWS S3).
// The object must follow the csvseed package format.
package s3seed

import (
	"context"
	"fmt"

	"github.com/dwarthen/coffeeshops/pkg/adapter/seed/csvseed"
	"github.com/dwarthen/coffeeshops/pkg/core/model"
	"github.com/dwarthen/coffeeshops/pkg/core/repo"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Options contains the connection settings of the S3 endpoint.
type Options struct {
	Endpoint  string // host[:port] of the S3 service, without scheme
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string // optional, skips the bucket location lookup
}

// Object is a repo.Seeds implementation which downloads and parses
// one object from an S3 bucket.
type Object struct {
	client *minio.Client
	bucket string
	name   string
}

var _ repo.Seeds = (*Object)(nil)

// New creates an S3 client based on opts, targeting the name object
// in the bucket bucket. No request is sent until Load is called.
func New(opts Options, bucket, name string) (*Object, error) {
	c, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating S3 client for %q: %w", opts.Endpoint, err)
	}
	return &Object{client: c, bucket: bucket, name: name}, nil
}

// Load downloads the seed object and parses its CSV lines.
func (o *Object) Load(ctx context.Context) ([]model.CoffeeShop, error) {
	obj, err := o.client.GetObject(ctx, o.bucket, o.name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("getting s3://%s/%s: %w", o.bucket, o.name, err)
	}
	defer obj.Close()
	shops, err := csvseed.Parse(obj)
	if err != nil {
		return nil, fmt.Errorf("parsing s3://%s/%s: %w", o.bucket, o.name, err)
	}
	return shops, nil
}

// String returns the s3:// URL of the seed object.
func (o *Object) String() string {
	return fmt.Sprintf("s3://%s/%s", o.bucket, o.name)
}
