package apperrors

import "errors"

var (
	ErrBadFormat      = errors.New("the data does not have correct format")
	ErrBadFieldType   = errors.New("field value has wrong type")
	ErrNoRecords      = errors.New("no data available for the specified team")
	ErrRecordNotFound = errors.New("record not found")
)
