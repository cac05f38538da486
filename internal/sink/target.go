package sink

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// S3Scheme prefixes S3 output targets.
const S3Scheme = "s3://"

// ErrInvalidTarget indicates an output target that cannot be parsed.
var ErrInvalidTarget = errors.New("invalid output target")

// Target is a parsed output destination.
type Target struct {
	Path   string // local file, empty for S3
	Bucket string
	Key    string
}

// ParseTarget parses a file path or an s3://bucket/key URL.
func ParseTarget(s string) (Target, error) {
	if s == "" {
		return Target{}, fmt.Errorf("%w: empty", ErrInvalidTarget)
	}
	if !strings.HasPrefix(strings.ToLower(s), S3Scheme) {
		return Target{Path: s}, nil
	}

	rest := s[len(S3Scheme):]
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return Target{}, fmt.Errorf("%w: %q (want s3://bucket/key)", ErrInvalidTarget, s)
	}
	if strings.HasSuffix(key, "/") {
		return Target{}, fmt.Errorf("%w: %q names a prefix, not an object", ErrInvalidTarget, s)
	}
	return Target{Bucket: bucket, Key: key}, nil
}

// IsS3 reports whether t is an S3 object.
func (t Target) IsS3() bool {
	return t.Bucket != ""
}

// Join returns the target for name under t, treating t as a directory or
// key prefix.
func (t Target) Join(name string) Target {
	if t.IsS3() {
		return Target{Bucket: t.Bucket, Key: path.Join(t.Key, name)}
	}
	return Target{Path: filepath.Join(t.Path, name)}
}

func (t Target) String() string {
	if t.IsS3() {
		return S3Scheme + t.Bucket + "/" + t.Key
	}
	return t.Path
}

// IsS3Prefix reports whether s looks like an S3 location meant as a prefix
// (s3://bucket or s3://bucket/dir/).
func IsS3Prefix(s string) bool {
	if !strings.HasPrefix(strings.ToLower(s), S3Scheme) {
		return false
	}
	_, key, _ := strings.Cut(s[len(S3Scheme):], "/")
	return key == "" || strings.HasSuffix(key, "/")
}

// ParsePrefix parses an S3 prefix location into a Target whose Key is the
// prefix without the trailing slash.
func ParsePrefix(s string) (Target, error) {
	if !IsS3Prefix(s) {
		return Target{}, fmt.Errorf("%w: %q is not an S3 prefix", ErrInvalidTarget, s)
	}
	bucket, key, _ := strings.Cut(s[len(S3Scheme):], "/")
	if bucket == "" {
		return Target{}, fmt.Errorf("%w: %q has no bucket", ErrInvalidTarget, s)
	}
	return Target{Bucket: bucket, Key: strings.TrimSuffix(key, "/")}, nil
}
