package service

import (
	"errors"

	"stocktrack-backend/internal/apperr"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available, or
// calls fn(nil) directly when db is nil (unit test mode with stub repos).
func runTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.Transaction(fn)
}

// translateDBErr maps GORM errors onto the apperr taxonomy. Unique
// index violations become Conflict as a backstop behind the explicit
// duplicate checks; anything else passes through as a 500.
func translateDBErr(err error, conflictMsg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("%s", conflictMsg)
	}
	return err
}
