package lotto

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/suapapa/lotto645_recommender/kv"
)

const (
	HistoryKey  = "lotto_recommender_history_v1"
	FirstRunKey = "lotto_recommender_first_run_v1"
)

// BlobStore is the key-value storage the history lives in.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// HistoryStore persists the history as one blob. Storage failures are
// logged and swallowed; callers always get a usable history back.
type HistoryStore struct {
	blobs BlobStore
	log   zerolog.Logger
}

func NewHistoryStore(blobs BlobStore, log zerolog.Logger) *HistoryStore {
	return &HistoryStore{
		blobs: blobs,
		log:   log.With().Str("component", "history_store").Logger(),
	}
}

// Load returns the stored history, or an empty one when nothing usable is
// stored.
func (hs *HistoryStore) Load(ctx context.Context) History {
	blob, err := hs.blobs.Get(ctx, HistoryKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			hs.log.Warn().Err(err).Msg("failed to read history")
		}
		return History{}
	}
	h := DecodeHistory(blob)
	hs.log.Debug().Int("entries", len(h)).Msg("history loaded")
	return h
}

// Save overwrites the stored history with its first HistoryLimit entries.
func (hs *HistoryStore) Save(ctx context.Context, h History) {
	blob, err := EncodeHistory(h)
	if err != nil {
		hs.log.Warn().Err(err).Msg("failed to encode history")
		return
	}
	if err := hs.blobs.Set(ctx, HistoryKey, blob); err != nil {
		hs.log.Warn().Err(err).Msg("failed to write history")
	}
}

// Clear removes the stored history.
func (hs *HistoryStore) Clear(ctx context.Context) {
	if err := hs.blobs.Delete(ctx, HistoryKey); err != nil {
		hs.log.Warn().Err(err).Msg("failed to delete history")
	}
}

// FirstRun reports true the first time it is called against a store and
// leaves a marker behind. Any storage error reports false.
func (hs *HistoryStore) FirstRun(ctx context.Context) bool {
	_, err := hs.blobs.Get(ctx, FirstRunKey)
	switch {
	case err == nil:
		return false
	case !errors.Is(err, kv.ErrNotFound):
		hs.log.Warn().Err(err).Msg("failed to read first run marker")
		return false
	}
	if err := hs.blobs.Set(ctx, FirstRunKey, []byte("1")); err != nil {
		hs.log.Warn().Err(err).Msg("failed to write first run marker")
		return false
	}
	return true
}
