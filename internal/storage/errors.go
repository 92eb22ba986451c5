package storage

import "errors"

var ErrNotFound = errors.New("resource not found")
var ErrConflict = errors.New("resource conflict (e.g., duplicate key)")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrDuplicateApplication = errors.New("application already exists for this job and candidate")
var ErrStaleVersion = errors.New("stale version (row was modified concurrently)")
