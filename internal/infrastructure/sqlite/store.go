// Package sqlite implementa el Catalog Store embebido sobre modernc.org/sqlite (sin cgo).
// Las transacciones de escritura se abren con BEGIN IMMEDIATE, así que se serializan entre sí.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite"
)

// Store agrupa la conexión SQLite y construye repositorios sobre ella.
type Store struct {
	db   *sql.DB
	path string
}

// Open abre (o crea) la base en path. El esquema lo aplican las migraciones.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: path vacío")
	}
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// dsn arma la cadena de conexión: los pragmas van en el DSN para que apliquen a cada conexión
// del pool, no solo a la primera.
func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

// DB expone la conexión subyacente.
func (s *Store) DB() *sql.DB { return s.db }

// Path ruta del archivo de la base.
func (s *Store) Path() string { return s.path }

// Close cierra la conexión.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Parts repositorio de piezas fuera de transacción (lecturas y edición de datos maestros).
func (s *Store) Parts() *PartRepo { return NewPartRepository(s.db) }

// Locations repositorio de ubicaciones fuera de transacción (solo lecturas).
func (s *Store) Locations() *LocationRepo { return NewLocationRepository(s.db) }

// History repositorio del historial fuera de transacción.
func (s *Store) History() *HistoryRepo { return NewHistoryRepository(s.db) }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return NewUserRepository(s.db) }

// TxRunner runner transaccional para el mutador de inventario.
func (s *Store) TxRunner() *TxRunner { return NewTxRunner(s.db) }
