// Package store holds the GORM-backed content, progress and identity stores.
package store

import (
	"errors"
	"strings"

	"learnhub/backend/utils"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Store groups the three stores over one connection.
type Store struct {
	Catalog  CatalogStore
	Progress ProgressStore
	Users    UserStore
}

func New(db *gorm.DB, log *utils.Logger) *Store {
	return &Store{
		Catalog:  NewCatalogStore(db, log),
		Progress: NewProgressStore(db, log),
		Users:    NewUserStore(db, log),
	}
}

// wrap maps driver errors onto store sentinels and attaches a stack to the rest.
func wrap(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return ErrDuplicate
	default:
		return pkgerrors.Wrap(err, msg)
	}
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// likePattern builds a case-insensitive LIKE pattern with wildcards escaped.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(s)) + "%"
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("created_at ASC")
}
