// Package storage persists solver results: a Redis cache of solved
// tasks keyed by a hash of the task string, and a Postgres archive
// of run summaries.  Both stores are optional; a Store connected
// with empty URLs satisfies every call by doing nothing, so callers
// never branch on what is configured.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/garyburd/redigo/redis"
	"github.com/jackc/pgx"

	"gridbot/puzzle"
)

// A Store holds the open storage connections.  The cache connection
// is guarded by a mutex because redigo connections are not safe for
// concurrent use.
type Store struct {
	rdMutex sync.Mutex
	rdc     redis.Conn // open cache connection, if any
	rdURL   string

	pgConn *pgx.Conn // open database, if any
	pgURL  string
}

// Connect opens whichever stores are configured.  An empty URL
// leaves that store disabled; a non-empty URL that cannot be reached
// is an error.  The archive schema is ensured before Connect
// returns.
func Connect(cacheURL, databaseURL string) (*Store, error) {
	s := &Store{rdURL: cacheURL, pgURL: databaseURL}
	if cacheURL != "" {
		if err := s.rdConnect(); err != nil {
			return nil, err
		}
	}
	if databaseURL != "" {
		if err := s.pgConnect(); err != nil {
			s.Close()
			return nil, err
		}
		if err := s.ensureSchema(); err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

// Close shuts both connections down.  Safe to call on a partially
// connected or nil store.
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.rdMutex.Lock()
	defer s.rdMutex.Unlock()
	s.pgClose()
	s.rdClose()
}

// TaskHash keys a puzzle instance for the cache: the family plus a
// digest of the raw task string.
func TaskHash(kind puzzle.Kind, raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return string(kind) + ":" + hex.EncodeToString(sum[:8])
}

/*

cache using Redis

*/

func (s *Store) rdConnect() error {
	conn, err := redis.DialURL(s.rdURL)
	if err != nil {
		return fmt.Errorf("couldn't connect to cache at %q: %w", s.rdURL, err)
	}
	s.rdc = conn
	return nil
}

func (s *Store) rdClose() {
	if s.rdc != nil {
		s.rdc.Close()
		s.rdc = nil
	}
}

// rdExecute runs the body with the cache mutex held.  Redis
// connections can go away without warning, so it pings first and
// reconnects once if the ping fails.
func (s *Store) rdExecute(body func(conn redis.Conn) error) error {
	s.rdMutex.Lock()
	defer s.rdMutex.Unlock()
	if s.rdc == nil {
		return nil // cache disabled
	}
	if _, err := s.rdc.Do("PING"); err != nil {
		s.rdClose()
		if err := s.rdConnect(); err != nil {
			return fmt.Errorf("failed to reconnect to cache at %q: %w", s.rdURL, err)
		}
	}
	return body(s.rdc)
}

/*

persistence using Postgres

*/

func (s *Store) pgConnect() error {
	cfg, err := pgx.ParseURI(s.pgURL)
	if err != nil {
		return fmt.Errorf("parse failure on Postgres URI %q: %w", s.pgURL, err)
	}
	conn, err := pgx.Connect(cfg)
	if err != nil {
		return fmt.Errorf("couldn't connect to db at %q: %w", s.pgURL, err)
	}
	s.pgConn = conn
	return nil
}

func (s *Store) pgClose() {
	if s.pgConn != nil {
		s.pgConn.Close()
		s.pgConn = nil
	}
}

// pgExecute runs the body inside a single transaction, rolled back
// if the body errs out and committed otherwise.
func (s *Store) pgExecute(body func(tx *pgx.Tx) error) error {
	if s.pgConn == nil {
		return nil // archive disabled
	}
	tx, err := s.pgConn.Begin()
	if err != nil {
		return fmt.Errorf("can't open a transaction against database: %w", err)
	}
	if err := body(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
