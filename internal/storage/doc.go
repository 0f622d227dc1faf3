package storage

// Package storage places generated images on disk. Results of equivalent
// requests land in the same signature-keyed directory, filenames are
// collision-free, and writes are atomic so a crash never leaves a partial
// image behind.
