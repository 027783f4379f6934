// Package sqlite keeps contract state in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/weegigs/wee-ledger/we"
)

type StateStore struct {
	db       *sql.DB
	revision *we.RevisionGenerator
}

// NewStateStore opens (and creates if needed) the database at path. Use
// ":memory:" for a throwaway database.
func NewStateStore(path string) (*StateStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	store := &StateStore{db: db, revision: we.NewRevisionGenerator()}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *StateStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS contract_state (
		contract TEXT PRIMARY KEY,
		revision TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		metadata TEXT,
		encoding TEXT NOT NULL,
		data BLOB NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *StateStore) Close() error {
	return s.db.Close()
}

func (s *StateStore) Load(ctx context.Context, id we.ContractId) (we.StateRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT revision, timestamp, metadata, encoding, data FROM contract_state WHERE contract = ?",
		id.Encode().String(),
	)

	var revision, timestamp, encoding string
	var metadata sql.NullString
	var data []byte
	if err := row.Scan(&revision, &timestamp, &metadata, &encoding, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return we.EmptyRecord(id), nil
		}

		return we.StateRecord{}, errors.Wrap(err, "failed to load state")
	}

	record := we.StateRecord{
		Contract:  id,
		Revision:  we.Revision(revision),
		Timestamp: we.Timestamp(timestamp),
		Data:      we.Data{Encoding: encoding, Data: data},
	}

	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &record.Metadata); err != nil {
			return we.StateRecord{}, errors.Wrap(err, "failed to unmarshal metadata")
		}
	}

	return record, nil
}

func (s *StateStore) Save(ctx context.Context, id we.ContractId, options we.SaveOptions, state we.Data) (we.Revision, error) {
	metadata, err := json.Marshal(options.RecordMetadata)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal metadata")
	}

	now := time.Now()
	revision := s.revision.NewRevision(now)
	timestamp := we.TimestampFromTime(now)
	contract := id.Encode().String()

	var result sql.Result
	switch expected := options.ExpectedRevision; expected {
	case "":
		result, err = s.db.ExecContext(ctx,
			`INSERT INTO contract_state (contract, revision, timestamp, metadata, encoding, data) VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(contract) DO UPDATE SET revision = excluded.revision, timestamp = excluded.timestamp,
			metadata = excluded.metadata, encoding = excluded.encoding, data = excluded.data`,
			contract, revision.String(), timestamp.String(), string(metadata), state.Encoding, state.Data,
		)
	case we.InitialRevision:
		result, err = s.db.ExecContext(ctx,
			`INSERT INTO contract_state (contract, revision, timestamp, metadata, encoding, data) VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(contract) DO NOTHING`,
			contract, revision.String(), timestamp.String(), string(metadata), state.Encoding, state.Data,
		)
	default:
		result, err = s.db.ExecContext(ctx,
			`UPDATE contract_state SET revision = ?, timestamp = ?, metadata = ?, encoding = ?, data = ?
			WHERE contract = ? AND revision = ?`,
			revision.String(), timestamp.String(), string(metadata), state.Encoding, state.Data,
			contract, expected.String(),
		)
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to save state")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return "", errors.Wrap(err, "failed to save state")
	}

	if affected == 0 {
		return "", we.RevisionConflict
	}

	return revision, nil
}

func (s *StateStore) Remove(ctx context.Context, id we.ContractId) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM contract_state WHERE contract = ?", id.Encode().String())
	if err != nil {
		return false, errors.Wrap(err, "failed to remove state")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to remove state")
	}

	return affected > 0, nil
}
