// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/multierr"

	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/models"
	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/queries"
)

// mySQLClient is the concrete implementation of Client.
type mySQLClient struct {
	connStr string
	db      *sql.DB

	// conn keeps one session pinned for the lifetime of the client. USE and
	// the explain calls must share a session, which the database/sql pool
	// does not otherwise guarantee.
	conn *sql.Conn
}

var _ Client = (*mySQLClient)(nil)

// Config represents the configuration needed to create a MySQL client.
type Config struct {
	Username             string
	Password             string
	Endpoint             string
	Database             string
	Transport            string
	AllowNativePasswords bool
}

// NewMySQLClient creates a new MySQL client with the given configuration.
func NewMySQLClient(cfg Config) Client {
	driverConf := mysql.NewConfig()
	driverConf.User = cfg.Username
	driverConf.Passwd = cfg.Password
	driverConf.Net = cfg.Transport
	driverConf.Addr = cfg.Endpoint
	driverConf.DBName = cfg.Database
	driverConf.AllowNativePasswords = cfg.AllowNativePasswords

	return &mySQLClient{
		connStr: driverConf.FormatDSN(),
	}
}

func (c *mySQLClient) Connect(ctx context.Context) error {
	db, err := sql.Open("mysql", c.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to pin session: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.db = db
	c.conn = conn
	return nil
}

func (c *mySQLClient) MaxTimerStart(ctx context.Context) (int64, bool, error) {
	var max sql.NullInt64
	err := c.conn.QueryRowContext(ctx, queries.MaxTimerStartSQL).Scan(&max)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if !max.Valid {
		return 0, false, nil
	}
	return max.Int64, true, nil
}

func (c *mySQLClient) QueryStatementEvents(ctx context.Context, sinceTimerStart int64, limit int) ([]models.StatementEvent, error) {
	rows, err := c.conn.QueryContext(ctx, queries.HistoryEventsSQL,
		queries.StatementEventNamePrefix, queries.SelfExplainPattern, sinceTimerStart, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query statement history: %w", err)
	}
	defer rows.Close()

	var events []models.StatementEvent
	for rows.Next() {
		var e models.StatementEvent
		err := rows.Scan(
			&e.CurrentSchema, &e.SQLText, &e.DigestText,
			&e.TimerStart, &e.TimerWaitNS, &e.LockTimeNS,
			&e.RowsAffected, &e.RowsSent, &e.RowsExamined,
			&e.SelectFullJoin, &e.SelectFullRangeJoin, &e.SelectRange, &e.SelectRangeCheck, &e.SelectScan,
			&e.SortMergePasses, &e.SortRange, &e.SortRows, &e.SortScan,
			&e.NoIndexUsed, &e.NoGoodIndexUsed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement events: %w", err)
	}

	return events, nil
}

func (c *mySQLClient) DisableSQLNotes(ctx context.Context) error {
	_, err := c.conn.ExecContext(ctx, queries.DisableSQLNotesSQL)
	return err
}

func (c *mySQLClient) EnableHistoryConsumer(ctx context.Context) error {
	_, err := c.conn.ExecContext(ctx, queries.EnableHistoryConsumerSQL)
	return err
}

func (c *mySQLClient) SelectSchema(ctx context.Context, schema string) error {
	_, err := c.conn.ExecContext(ctx, queries.GetUseSchemaSQL(schema))
	return err
}

func (c *mySQLClient) ExplainWithProcedure(ctx context.Context, statement string) (string, error) {
	var plan string
	err := c.conn.QueryRowContext(ctx, queries.ExplainProcedureSQL, statement).Scan(&plan)
	if err != nil {
		return "", err
	}
	return plan, nil
}

func (c *mySQLClient) ExplainDirect(ctx context.Context, statement string) (string, error) {
	var plan string
	err := c.conn.QueryRowContext(ctx, queries.GetExplainDirectSQL(statement)).Scan(&plan)
	if err != nil {
		return "", err
	}
	return plan, nil
}

func (c *mySQLClient) Close() error {
	var errs error
	if c.conn != nil {
		errs = multierr.Append(errs, c.conn.Close())
		c.conn = nil
	}
	if c.db != nil {
		errs = multierr.Append(errs, c.db.Close())
		c.db = nil
	}
	return errs
}
