package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store hands out repositories bound to one database handle. Inside WithTx the
// handle is the transaction, so every repository obtained from the callback's
// Store takes part in it.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store over db
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Users returns a UserRepository bound to the store's handle
func (s *Store) Users() UserRepository {
	return NewUserRepository(s.db)
}

// Tasks returns a TaskRepository bound to the store's handle
func (s *Store) Tasks() TaskRepository {
	return NewTaskRepository(s.db)
}

// WithTx runs fn in a transaction, committing when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
