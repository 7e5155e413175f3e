package domain

import "errors"

var (
	ErrPropertyNotFound     = errors.New("property not found")
	ErrLocationNotFound     = errors.New("property location not found")
	ErrForbidden            = errors.New("user not authorized to perform this action")
	ErrInvalidUpload        = errors.New("invalid photo upload signature")
	ErrUnknownReferenceValue = errors.New("unknown reference value")
	ErrInvalidRegion        = errors.New("region requires at least 4 coordinates")
	ErrInternal             = errors.New("internal failure")
)
