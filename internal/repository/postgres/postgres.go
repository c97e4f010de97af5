package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"

	"lendledger-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.BorrowerRepository
	repository.CollectionRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		UserRepository:       NewUserRepository(db),
		BorrowerRepository:   NewBorrowerRepository(db),
		CollectionRepository: NewCollectionRepository(db),
	}
}
