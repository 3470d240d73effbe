// Package redis stores libraries as one JSON document per user.
package redis

import (
	"context"
	"encoding/json"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
	"github.com/rubsen49-sketch/MovieMatch/internal/log"
	inredis "github.com/rubsen49-sketch/MovieMatch/internal/redis"
	"github.com/rubsen49-sketch/MovieMatch/library"
)

// concurrent upserts for one user race on WATCH; give up after this many
const maxTxAttempts = 5

type storeImpl struct {
	client redis.UniversalClient
	prefix string
	clock  clockwork.Clock
	logger *log.Logger
}

func NewStore(client redis.UniversalClient, prefix string, clock clockwork.Clock, logger *log.Logger) library.Store {
	return &storeImpl{
		client: client,
		prefix: prefix,
		clock:  clock,
		logger: logger,
	}
}

func (s *storeImpl) key(userID string) string {
	if s.prefix == "" {
		return "lib:" + userID
	}
	return s.prefix + ":lib:" + userID
}

func (s *storeImpl) Get(ctx context.Context, userID string) ([]library.Entry, error) {
	return s.read(ctx, s.client, s.key(userID))
}

func (s *storeImpl) read(ctx context.Context, c redis.Cmdable, key string) ([]library.Entry, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if inredis.IsNil(err) {
		return []library.Entry{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(library.ErrStore, err, "read library")
	}
	var entries []library.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrapf(library.ErrStore, err, "decode library %s", key)
	}
	if entries == nil {
		entries = []library.Entry{}
	}
	return entries, nil
}

func (s *storeImpl) Upsert(ctx context.Context, userID string, entries []library.Entry) ([]library.Entry, error) {
	now := s.clock.Now().UTC()
	incoming := make([]library.Entry, len(entries))
	for i, e := range entries {
		if e.AddedAt.IsZero() {
			e.AddedAt = now
		}
		incoming[i] = e
	}

	key := s.key(userID)
	var merged []library.Entry
	txf := func(tx *redis.Tx) error {
		existing, err := s.read(ctx, tx, key)
		if err != nil {
			return err
		}
		merged = library.Merge(existing, incoming)
		raw, err := json.Marshal(merged)
		if err != nil {
			return errors.Wrap(library.ErrStore, err, "encode library")
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, 0)
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			s.logger.Debug("library upserted",
				log.User(userID),
				log.Int("added", len(incoming)),
				log.Int("total", len(merged)))
			return merged, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, errors.Wrap(library.ErrStore, err, "upsert library")
		}
		s.logger.Debug("library upsert conflict, retrying",
			log.User(userID),
			log.Int("attempt", attempt))
	}
	return nil, errors.Newf(library.ErrStore, "upsert library %s: too many concurrent writers", userID)
}
