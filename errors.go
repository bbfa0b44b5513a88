package aabbtree

import "errors"

// ErrNotBuilt is the panic value of query operations attempted before
// Build, a contract violation per the error handling design's misuse kind.
var ErrNotBuilt = errors.New("aabbtree: index queried before Build")

// ErrAlreadyBuilt is the panic value when Add is called after Build.
var ErrAlreadyBuilt = errors.New("aabbtree: Add called after Build")

// ErrFormat is returned by Load when the header's magic, version, or
// coordinate tag does not match, distinguishing corruption from plain I/O
// failure per the error handling design's format kind.
var ErrFormat = errors.New("aabbtree: invalid or mismatched index format")
