package storage

import (
	"time"

	"github.com/jackc/pgx"

	"gridbot/puzzle"
	"gridbot/solve"
)

// The archive is one append-only table of run summaries.  The
// schema is ensured at connect time so fresh databases need no
// separate preparation step.
const runsSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id         SERIAL PRIMARY KEY,
	kind       TEXT NOT NULL,
	variant    TEXT NOT NULL,
	result     TEXT NOT NULL,
	nodes      BIGINT NOT NULL,
	guesses    BIGINT NOT NULL,
	backtracks BIGINT NOT NULL,
	elapsed_ms BIGINT NOT NULL,
	run_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func (s *Store) ensureSchema() error {
	return s.pgExecute(func(tx *pgx.Tx) error {
		_, err := tx.Exec(runsSchema)
		return err
	})
}

// A Run is one archived solve summary.
type Run struct {
	Kind       puzzle.Kind
	Variant    string
	Result     solve.Result
	Nodes      int64
	Guesses    int64
	Backtracks int64
	Elapsed    time.Duration
	At         time.Time
}

// SaveRun archives one solve.  A disabled archive is a silent
// no-op.
func (s *Store) SaveRun(kind puzzle.Kind, variant string, sol *solve.Solution) error {
	return s.pgExecute(func(tx *pgx.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO runs (kind, variant, result, nodes, guesses, backtracks, elapsed_ms)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			string(kind), variant, sol.Result.String(),
			sol.Stats.Nodes, sol.Stats.Guesses, sol.Stats.Backtracks,
			sol.Stats.Elapsed.Milliseconds())
		return err
	})
}

// RecentRuns returns the newest archived runs, most recent first.
// A disabled archive returns nothing.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := s.pgExecute(func(tx *pgx.Tx) error {
		rows, err := tx.Query(
			`SELECT kind, variant, result, nodes, guesses, backtracks, elapsed_ms, run_at
			 FROM runs ORDER BY run_at DESC LIMIT $1`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var (
				run       Run
				kind, res string
				elapsedMS int64
			)
			if err := rows.Scan(&kind, &run.Variant, &res,
				&run.Nodes, &run.Guesses, &run.Backtracks,
				&elapsedMS, &run.At); err != nil {
				return err
			}
			run.Kind = puzzle.Kind(kind)
			run.Result = parseResult(res)
			run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
			runs = append(runs, run)
		}
		return rows.Err()
	})
	return runs, err
}

func parseResult(s string) solve.Result {
	for _, r := range []solve.Result{solve.Unsatisfiable, solve.Solved, solve.Cancelled} {
		if r.String() == s {
			return r
		}
	}
	return solve.Unsatisfiable
}
