package repository

import (
	"database/sql"
	"fmt"
	"strings"
)

// withTx runs fn inside a transaction and guarantees commit-or-rollback on
// every exit path.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// orderClause turns a "column,direction" sort parameter into an ORDER BY
// fragment, admitting only whitelisted columns. Anything unrecognized falls
// back to the default so client input never reaches the query text.
func orderClause(sort, defaultColumn string, allowed map[string]string) string {
	column := defaultColumn
	direction := "ASC"

	parts := strings.SplitN(sort, ",", 2)
	if col, ok := allowed[strings.TrimSpace(parts[0])]; ok {
		column = col
	}
	if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
		direction = "DESC"
	}

	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}
