// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package scrapers

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error codes the acquisition engine classifies. Anything
// outside this set with the structured *mysql.MySQLError shape is treated as
// retryable; errors without that shape are propagated unclassified.
const (
	errCodeUnknownDatabase   = 1049 // ER_BAD_DB_ERROR
	errCodeDBAccessDenied    = 1044 // ER_DBACCESS_DENIED_ERROR
	errCodeNoStatementAccess = 1046 // no permission on the explained statement
	errCodeParse             = 1064 // ER_PARSE_ERROR
	errCodeProcDoesNotExist  = 1305 // ER_SP_DOES_NOT_EXIST
	errCodeProcAccessDenied  = 1370 // ER_PROCACCESS_DENIED_ERROR
	errCodeTableAccessDenied = 1142 // ER_TABLEACCESS_DENIED_ERROR
	errCodeInstanceReadOnly  = 1290 // ER_OPTION_PREVENTS_STATEMENT
)

// retryableError marks a failure as transient or statement-dependent: the
// current attempt yields no plan but the capability is not ruled out.
type retryableError struct {
	cause *mysql.MySQLError
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable database error: %s", e.cause.Error())
}

func (e *retryableError) Unwrap() error { return e.cause }

// nonRetryableError marks a permissions or definition problem: the failing
// capability is ruled out for the schema until process restart.
type nonRetryableError struct {
	cause *mysql.MySQLError
}

func (e *nonRetryableError) Error() string {
	return fmt.Sprintf("non-retryable database error: %s", e.cause.Error())
}

func (e *nonRetryableError) Unwrap() error { return e.cause }

func isRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

func isNonRetryable(err error) bool {
	var nre *nonRetryableError
	return errors.As(err, &nre)
}

// classifySchemaSwitch classifies a USE failure. Unknown database and access
// denied rule the schema out entirely; other structured errors may be
// transient. Errors without the structured shape pass through unchanged.
func classifySchemaSwitch(err error) error {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return err
	}
	switch myErr.Number {
	case errCodeUnknownDatabase, errCodeDBAccessDenied:
		return &nonRetryableError{cause: myErr}
	default:
		return &retryableError{cause: myErr}
	}
}

// classifyProcedureExplain classifies a failure of the explain_statement
// stored procedure call.
func classifyProcedureExplain(err error) error {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return err
	}
	switch myErr.Number {
	case errCodeProcAccessDenied, errCodeProcDoesNotExist:
		return &nonRetryableError{cause: myErr}
	default:
		return &retryableError{cause: myErr}
	}
}

// classifyDirectExplain classifies a failure of the EXPLAIN statement form.
// Parse errors are retryable: they can depend on the shape of the statement
// being explained rather than on a fixed capability.
func classifyDirectExplain(err error) error {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return err
	}
	switch myErr.Number {
	case errCodeNoStatementAccess:
		return &nonRetryableError{cause: myErr}
	case errCodeParse:
		// The server could not re-parse the statement text; this depends on
		// the statement, not on a capability.
		return &retryableError{cause: myErr}
	default:
		return &retryableError{cause: myErr}
	}
}
