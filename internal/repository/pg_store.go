package repository

import (
	"context"
	"errors"
	"log"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sofya-Khabibulina/HabitTracker/pkg/cleanup"
)

// PostgresStore keeps the same whole-document contract as FileStore but
// upserts the serialized document into a single snapshot row. Useful when
// the bot runs somewhere without a persistent filesystem.
type PostgresStore struct {
	conn PgConnection
}

const snapshotRowID = 1

func NewPostgresStore(cfg DBConfig) *PostgresStore {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for snapshot store error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for snapshot store: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &PostgresStore{
		conn: pool,
	}
}

func NewPostgresStoreWithConn(conn PgConnection) *PostgresStore {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for snapshot store: " + err.Error())
	}
	return &PostgresStore{
		conn: conn,
	}
}

func (ps *PostgresStore) Load(ctx context.Context) (*Document, error) {
	var raw []byte
	row := ps.conn.QueryRow(ctx, `SELECT document FROM snapshots WHERE id = $1;`, snapshotRowID)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NewDocument(), nil
		}
		return nil, errors.New("loading snapshot error: " + err.Error())
	}
	doc := &Document{}
	if err := sonic.Unmarshal(raw, doc); err != nil {
		return nil, errors.New("parsing snapshot error: " + err.Error())
	}
	doc.normalize()
	return doc, nil
}

func (ps *PostgresStore) Persist(ctx context.Context, doc *Document) error {
	raw, err := sonic.Marshal(doc)
	if err != nil {
		return errors.New("marshalling snapshot error: " + err.Error())
	}
	_, err = ps.conn.Exec(
		ctx,
		`INSERT INTO snapshots (id, document, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET document = $2, updated_at = NOW();`,
		snapshotRowID,
		raw,
	)
	if err != nil {
		return errors.New("saving snapshot error: " + err.Error())
	}
	return nil
}
