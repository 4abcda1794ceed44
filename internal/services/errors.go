package services

import (
	"errors"

	"gorm.io/gorm"
)

// Store failures are classified here, once, into sentinel errors. Handlers
// match on these instead of inspecting driver error codes. The database is
// opened with gorm error translation enabled, so uniqueness and foreign-key
// violations arrive as gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated
// regardless of driver.
var (
	ErrDuplicateEmail  = errors.New("email already in use")
	ErrDuplicateFollow = errors.New("already following this user")
	ErrUserNotFound    = errors.New("user not found")
	ErrPostNotFound    = errors.New("post not found")
	// ErrUserReferenced means posts or tasks still point at the user, so the
	// foreign keys block deletion.
	ErrUserReferenced = errors.New("user still owns posts or tasks")
	// ErrTaskNotFound covers both a missing task and a task owned by someone
	// else; the two are indistinguishable on purpose.
	ErrTaskNotFound = errors.New("task not found or not yours")
)

// translate maps a translated gorm error onto the domain sentinels supplied
// by the caller. A nil sentinel leaves that class of error untouched.
func translate(err error, duplicate, missingRef, notFound error) error {
	switch {
	case err == nil:
		return nil
	case duplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return duplicate
	case missingRef != nil && errors.Is(err, gorm.ErrForeignKeyViolated):
		return missingRef
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	}
	return err
}
