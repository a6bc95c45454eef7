// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package scrapers

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/client"
	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/models"
)

// HistoryScanner reads statement events from
// performance_schema.events_statements_history_long incrementally. The
// checkpoint is the highest timer_start seen so far and only moves forward;
// it lives in memory, so a restart re-baselines from the server's current
// maximum.
type HistoryScanner struct {
	client   client.Client
	logger   *zap.Logger
	rowLimit int

	checkpoint    int64
	checkpointSet bool

	autoEnable      bool
	consumerEnabled bool
}

func NewHistoryScanner(dbClient client.Client, logger *zap.Logger, rowLimit int, autoEnable bool) *HistoryScanner {
	return &HistoryScanner{
		client:     dbClient,
		logger:     logger,
		rowLimit:   rowLimit,
		autoEnable: autoEnable,
	}
}

// scanResult is one cycle's worth of usable statement events plus the counts
// of rows that were fetched but could not be used.
type scanResult struct {
	Events     []models.StatementEvent
	Incomplete int
	Truncated  int
}

// EnsureReady prepares the scanner for its first scan: it enables the
// history consumer when configured to, and baselines the checkpoint at the
// server's current maximum timer_start so only events that arrive after
// startup are collected. A history table with no high-water mark yet (empty,
// or consumer still disabled) is a soft condition: ready comes back false
// and the baseline is retried next cycle.
func (s *HistoryScanner) EnsureReady(ctx context.Context) (bool, error) {
	if s.autoEnable && !s.consumerEnabled {
		s.enableHistoryConsumer(ctx)
	}
	if s.checkpointSet {
		return true, nil
	}
	maxTimer, ok, err := s.client.MaxTimerStart(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		s.logger.Debug("Statement history has no high-water mark yet, skipping collection")
		return false, nil
	}
	s.checkpoint = maxTimer
	s.checkpointSet = true
	s.logger.Debug("Initialized statement history checkpoint",
		zap.Int64("timer_start", s.checkpoint))
	return true, nil
}

func (s *HistoryScanner) enableHistoryConsumer(ctx context.Context) {
	err := s.client.EnableHistoryConsumer(ctx)
	if err == nil {
		s.consumerEnabled = true
		s.logger.Info("Enabled events_statements_history_long consumer")
		return
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errCodeTableAccessDenied:
			s.logger.Error("Insufficient privilege to enable events_statements_history_long consumer",
				zap.Error(err))
			return
		case errCodeInstanceReadOnly:
			// Read replica; stop trying for the life of the process.
			s.autoEnable = false
			s.logger.Warn("Database instance is read-only, cannot enable events_statements_history_long consumer",
				zap.Error(err))
			return
		}
	}
	s.logger.Error("Failed to enable events_statements_history_long consumer", zap.Error(err))
}

// Scan fetches statement events newer than the checkpoint. The checkpoint
// advances past every returned row, including rows that are dropped, so a
// bad row can never be re-fetched forever.
func (s *HistoryScanner) Scan(ctx context.Context) (scanResult, error) {
	var res scanResult
	events, err := s.client.QueryStatementEvents(ctx, s.checkpoint, s.rowLimit)
	if err != nil {
		return res, err
	}
	for _, event := range events {
		if ts := event.GetTimerStart(); ts > s.checkpoint {
			s.checkpoint = ts
		}
		if !event.IsComplete() {
			res.Incomplete++
			continue
		}
		if event.IsTruncated() {
			res.Truncated++
			continue
		}
		res.Events = append(res.Events, event)
	}
	if res.Incomplete > 0 {
		s.logger.Debug("Dropped incomplete statement events",
			zap.Int("dropped", res.Incomplete))
	}
	return res, nil
}
