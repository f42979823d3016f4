package database

import (
	"context"
	"errors"
	"fmt"
	"github.com/CvitoyBamp/panelsynth/internal/customerror"
	"github.com/CvitoyBamp/panelsynth/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"time"
)

var runsTable = `CREATE TABLE IF NOT EXISTS runs(
        id          bigserial PRIMARY KEY,
        seed        bigint NOT NULL,
        n_subjects  integer NOT NULL,
        n_periods   integer NOT NULL,
        stream      text NOT NULL check (stream in ('legacy', 'independent')),
        output_path text NOT NULL,
        rows        integer NOT NULL,
        checksum    text NOT NULL,
        timestamp   timestamptz NOT NULL DEFAULT now(),
        UNIQUE (checksum, output_path))`

const queryTimeout = 5 * time.Second

// Postgres is the run registry. It records which tables were written where;
// table contents are never stored.
type Postgres struct {
	conn *pgxpool.Pool
}

// registryConns caps the pool.
const registryConns = 2

// poolConfig parses connString for the registry pool. Connections are opened
// on demand and fail after queryTimeout unless the URI sets connect_timeout.
func poolConfig(connString string) (*pgxpool.Config, error) {
	connCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("database uri is not valid, error: %w", err)
	}

	connCfg.MaxConns = registryConns
	connCfg.MinConns = 0
	connCfg.ConnConfig.RuntimeParams["application_name"] = "panelsynth"
	if connCfg.ConnConfig.ConnectTimeout == 0 {
		connCfg.ConnConfig.ConnectTimeout = queryTimeout
	}

	return connCfg, nil
}

// Open builds the pool for connString and makes sure the runs table exists.
func Open(ctx context.Context, connString string) (*Postgres, error) {
	pgCfg, err := poolConfig(connString)
	if err != nil {
		return nil, err
	}

	db, err := pgxpool.NewWithConfig(ctx, pgCfg)
	if err != nil {
		return nil, fmt.Errorf("it's not possible to initialise database, error: %w", err)
	}
	pg := &Postgres{conn: db}

	if err := pg.CreateTables(ctx); err != nil {
		pg.Close()
		return nil, err
	}

	return pg, nil
}

func (pg *Postgres) Close() {
	pg.conn.Close()
}

func (pg *Postgres) CreateTables(ctx context.Context) error {

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, errRuns := pg.conn.Exec(ctx, runsTable)
	if errRuns != nil {
		return fmt.Errorf("runs table didn't create, error: %w", errRuns)
	}

	return nil
}

// RecordRun stores run and fills in its id and timestamp. A run with the
// same checksum and output path yields customerror.ErrRunExists.
func (pg *Postgres) RecordRun(ctx context.Context, run *model.Run) error {

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := pg.conn.QueryRow(ctx, `INSERT INTO runs (seed, n_subjects, n_periods, stream, output_path, rows, checksum)
	                       VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, timestamp`,
		int64(run.Seed), run.Subjects, run.Periods, run.Stream, run.OutputPath, run.Rows, run.Checksum)

	err := row.Scan(&run.ID, &run.Timestamp)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return fmt.Errorf("%w: %s at %s", customerror.ErrRunExists, run.Checksum, run.OutputPath)
		}
		return err
	}

	return nil
}

// ListRuns returns up to limit runs, newest first.
func (pg *Postgres) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {

	var run model.Run
	var runs []model.Run

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, errQuery := pg.conn.Query(ctx, `select id, seed, n_subjects, n_periods, stream, output_path, rows, checksum, timestamp
	                       from runs order by timestamp desc, id desc limit $1`, limit)
	if errQuery != nil {
		return runs, errQuery
	}
	defer rows.Close()

	for rows.Next() {
		var seed int64
		errScan := rows.Scan(&run.ID, &seed, &run.Subjects, &run.Periods, &run.Stream,
			&run.OutputPath, &run.Rows, &run.Checksum, &run.Timestamp)
		if errScan != nil {
			return runs, errScan
		}
		run.Seed = uint32(seed)

		runs = append(runs, run)
	}

	return runs, rows.Err()
}
