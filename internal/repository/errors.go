package repository

import "errors"

var (
	// ErrDuplicateSession is returned when a session id is already stored
	ErrDuplicateSession = errors.New("session already exists")
	// ErrConcurrentUpdate is returned when a session changed since it was loaded
	ErrConcurrentUpdate = errors.New("session was modified concurrently")
)
