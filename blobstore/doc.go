// Package blobstore abstracts where a snapshot's bytes come from.
//
// The core only needs a read-once handle; implementations cover the local
// file system (memory-mapped), plain memory (tests), and S3-compatible
// object storage (see the s3 and minio subpackages).
package blobstore
