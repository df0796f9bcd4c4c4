package marketdata

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// PGFixingFeed reads index fixings from a Postgres snapshot table.
//
// Expected schema:
//
//	CREATE TABLE euribor_fixings (
//	    fixing_date date NOT NULL,
//	    tenor       text NOT NULL,
//	    rate        double precision NOT NULL,
//	    PRIMARY KEY (fixing_date, tenor)
//	);
//
// Rates are stored in percent, matching the CSV export.
type PGFixingFeed struct {
	db    *sql.DB
	table string
}

// OpenPGFixingFeed connects using the FRNLIB_PG_DSN environment variable,
// loading a .env file first if present.
func OpenPGFixingFeed() (*PGFixingFeed, error) {
	_ = godotenv.Load()

	dsn := os.Getenv("FRNLIB_PG_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("OpenPGFixingFeed: FRNLIB_PG_DSN is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("OpenPGFixingFeed: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenPGFixingFeed: ping: %w", err)
	}
	return &PGFixingFeed{db: db, table: "euribor_fixings"}, nil
}

// RateOn implements FixingFeed.
func (f *PGFixingFeed) RateOn(date time.Time, tenor string) (float64, bool) {
	var rate float64
	query := fmt.Sprintf("SELECT rate FROM %s WHERE fixing_date = $1 AND tenor = $2", f.table)
	err := f.db.QueryRow(query, date.Format("2006-01-02"), tenor).Scan(&rate)
	if err != nil {
		return 0, false
	}
	return rate, true
}

// Close releases the underlying connection pool.
func (f *PGFixingFeed) Close() error {
	return f.db.Close()
}
