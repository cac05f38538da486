package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-docpdf/internal/sink"
)

// dotEnvFile is read from the working directory when it exists.
const dotEnvFile = ".env"

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment and the S3 uploader.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	Getenv   func(string) string
	Environ  func() []string
	DotEnv   string        // path of the .env file, empty to skip
	Uploader sink.Uploader // nil creates an AWS uploader on first S3 output
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		DotEnv:  dotEnvFile,
	}
}
