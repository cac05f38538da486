// Package sink delivers rendered PDFs to their destination: a local file
// written atomically, or an S3 object addressed as s3://bucket/key.
package sink
