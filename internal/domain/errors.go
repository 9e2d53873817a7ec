package domain

import "errors"

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrRequestNotFound      = errors.New("connection request not found")
	ErrRequestAlreadyExists = errors.New("connection request already exists")
	ErrCannotRequestSelf    = errors.New("cannot send connection request to yourself")
	ErrMatchNotFound        = errors.New("match not found")
	ErrSwipeAlreadyExists   = errors.New("swipe already exists")
	ErrCannotSwipeSelf      = errors.New("cannot swipe yourself")
	ErrInvalidUserID        = errors.New("invalid user id")
)
