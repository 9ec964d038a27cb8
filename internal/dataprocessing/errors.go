package dataprocessing

import (
	"errors"
	"fmt"
)

// Dataset identifies which of the two input exports an error refers to.
type Dataset string

const (
	DatasetCost    Dataset = "cost"
	DatasetRevenue Dataset = "revenue"
)

// Sentinel errors usable with errors.Is.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingColumn     = errors.New("required column not found")
	ErrMissingField      = errors.New("required field not found")
	ErrInvalidRate       = errors.New("exchange rate must be a positive number")
)

// UnsupportedFormatError is returned when an upload is not a CSV export.
type UnsupportedFormatError struct {
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type %q: only %s exports are accepted", e.Filename, SupportedExtension)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// MissingColumnError is returned when a required header label is absent.
type MissingColumnError struct {
	Dataset Dataset
	Column  string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s file: column %q not found", e.Dataset, e.Column)
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// MissingFieldError is returned when a dataset has no usable first record.
type MissingFieldError struct {
	Dataset Dataset
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s file: %s field not found", e.Dataset, e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
