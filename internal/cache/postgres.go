package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/standardbeagle/decodex/internal/types"
)

// PostgresStore is the L2 persistent cache (spec §6.a DOMAIN STACK):
// decode results survive process restarts, keyed by input text, with the
// chain serialized as JSON into a jsonb column — the same pgxpool
// connection pattern leanlp-BTC-coinjoin uses for its ledger tables.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect opens a pooled connection to connStr and verifies it with a
// ping, exactly as leanlp-BTC-coinjoin's internal/db.Connect does.
func Connect(ctx context.Context, connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("decodex cache: unable to connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("decodex cache: ping failed: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS decode_cache (
    input_text      TEXT PRIMARY KEY,
    decoded_text    TEXT NOT NULL,
    chain           JSONB NOT NULL,
    recognizer_name TEXT NOT NULL,
    decode_key      TEXT NOT NULL,
    found_at        TIMESTAMPTZ NOT NULL,
    elapsed_ns      BIGINT NOT NULL
);
`

// InitSchema creates the decode_cache table if it does not already exist.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schemaSQL)
	return err
}

// Put upserts entry into the persistent cache.
func (s *PostgresStore) Put(ctx context.Context, entry Entry) error {
	chainJSON, err := json.Marshal(entry.Chain)
	if err != nil {
		return fmt.Errorf("decodex cache: marshal chain: %w", err)
	}

	const upsertSQL = `
		INSERT INTO decode_cache (input_text, decoded_text, chain, recognizer_name, decode_key, found_at, elapsed_ns)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (input_text) DO UPDATE
		SET decoded_text = EXCLUDED.decoded_text,
		    chain = EXCLUDED.chain,
		    recognizer_name = EXCLUDED.recognizer_name,
		    decode_key = EXCLUDED.decode_key,
		    found_at = EXCLUDED.found_at,
		    elapsed_ns = EXCLUDED.elapsed_ns;
	`
	_, err = s.pool.Exec(ctx, upsertSQL,
		entry.InputText, entry.DecodedText, chainJSON, entry.RecognizerName,
		entry.Key, entry.FoundAt, entry.Elapsed.Nanoseconds())
	return err
}

// Get looks up input in the persistent cache.
func (s *PostgresStore) Get(ctx context.Context, input string) (Entry, bool, error) {
	const selectSQL = `
		SELECT input_text, decoded_text, chain, recognizer_name, decode_key, found_at, elapsed_ns
		FROM decode_cache WHERE input_text = $1;
	`
	row := s.pool.QueryRow(ctx, selectSQL, input)

	var (
		entry      Entry
		chainJSON  []byte
		elapsedNs  int64
	)
	err := row.Scan(&entry.InputText, &entry.DecodedText, &chainJSON, &entry.RecognizerName, &entry.Key, &entry.FoundAt, &elapsedNs)
	if err != nil {
		return Entry{}, false, nil
	}

	var chain types.Chain
	if err := json.Unmarshal(chainJSON, &chain); err != nil {
		return Entry{}, false, fmt.Errorf("decodex cache: unmarshal chain: %w", err)
	}
	entry.Chain = chain
	entry.Elapsed = time.Duration(elapsedNs)
	return entry, true, nil
}
