package service

import "errors"

var (
	ErrSessionNotFound = errors.New("assessment session not found")
	ErrForbidden       = errors.New("token does not grant access to this session")
)
