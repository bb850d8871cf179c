package rdbms

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"

	"github.com/alixiazul/data-engineering-project/aws/secrets"
	"github.com/alixiazul/data-engineering-project/logger"
)

// OpenDbConnection opens a Postgres connection using credentials fetched from
// Secrets Manager. Both the operational source and the warehouse are Postgres.
func OpenDbConnection(ctx context.Context, log logger.Logger, s secrets.DbSecret) (Connector, error) {
	log.Debug("opening database connection to host ", s.Host, " db ", s.Dbname) // never log the password.
	cfg, err := pgx.ParseConfig("")
	if err != nil {
		return nil, &ConnectionError{Host: s.Host, Err: err}
	}
	cfg.Host = s.Host
	cfg.Port = uint16(s.Port)
	cfg.Database = s.Dbname
	cfg.User = s.Username
	cfg.Password = s.Password
	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, &ConnectionError{Host: s.Host, Err: err}
	}
	log.Info("successful connection to ", fmt.Sprintf("%v:%v/%v", s.Host, s.Port, s.Dbname))
	return &pgConnection{conn: conn}, nil
}

type pgConnection struct {
	conn *pgx.Conn
}

func (c *pgConnection) Query(ctx context.Context, sql string, args ...interface{}) (Rows, error) {
	rows, err := c.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *pgConnection) QueryRow(ctx context.Context, sql string, args ...interface{}) Row {
	return c.conn.QueryRow(ctx, sql, args...)
}

func (c *pgConnection) Exec(ctx context.Context, sql string, args ...interface{}) error {
	_, err := c.conn.Exec(ctx, sql, args...)
	return err
}

func (c *pgConnection) Begin(ctx context.Context) (Tx, error) {
	tx, err := c.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgTx{tx: tx}, nil
}

func (c *pgConnection) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) Exec(ctx context.Context, sql string, args ...interface{}) error {
	_, err := t.tx.Exec(ctx, sql, args...)
	return err
}

func (t *pgTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *pgTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
