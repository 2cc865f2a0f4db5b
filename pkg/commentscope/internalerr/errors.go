package internalerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrDataNotFound  = errors.New("data not found")
	ErrMissingField  = errors.New("missing field")
	ErrEmptyDataset  = errors.New("empty dataset")
)

// DataNotFoundError reports that no usable input file exists, or that the
// selected file could not be parsed.
type DataNotFoundError struct {
	Path string
	Err  error
}

func (e *DataNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data not found at %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("data not found at %s", e.Path)
}

func (e *DataNotFoundError) Unwrap() error { return e.Err }

func (e *DataNotFoundError) Is(target error) bool { return target == ErrDataNotFound }

// MissingFieldError reports a record that lacks a required attribute.
// Index is the record's position in the input list, or -1 for the envelope.
type MissingFieldError struct {
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("missing required field %q", e.Field)
	}
	return fmt.Sprintf("comments[%d]: missing required field %q", e.Index, e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// EmptyDatasetError reports an input file that loaded zero records.
type EmptyDatasetError struct {
	Path string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("no comments in %s", e.Path)
}

func (e *EmptyDatasetError) Is(target error) bool { return target == ErrEmptyDataset }
