package marketdata

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// StoreConfig holds Postgres connection settings, loadable from the
// environment with the OPTLIB_ prefix (OPTLIB_HOST, OPTLIB_DBNAME, ...).
type StoreConfig struct {
	Host     string `default:"localhost"`
	Port     int    `default:"5432"`
	User     string `default:"optlib"`
	Password string
	DBName   string `default:"optlib" split_words:"true"`
	SSLMode  string `default:"disable" split_words:"true"`
}

// StoreConfigFromEnv reads StoreConfig from OPTLIB_-prefixed environment
// variables.
func StoreConfigFromEnv() (StoreConfig, error) {
	var cfg StoreConfig
	if err := envconfig.Process("optlib", &cfg); err != nil {
		return StoreConfig{}, fmt.Errorf("marketdata: load store config: %w", err)
	}
	return cfg, nil
}

// Store reads option quotes from a Postgres table:
//
//	CREATE TABLE option_quotes (
//	    symbol  text, strike numeric, expiry date, option_type text,
//	    bid numeric, ask numeric, as_of timestamptz,
//	    PRIMARY KEY (symbol, strike, expiry, option_type, as_of)
//	);
type Store struct {
	db *sql.DB
}

// OpenStore connects to Postgres and verifies the connection.
func OpenStore(ctx context.Context, cfg StoreConfig) (*Store, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("marketdata: open store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("marketdata: ping store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// LatestQuote returns the most recent quote for the contract.
func (s *Store) LatestQuote(ctx context.Context, key QuoteKey) (Quote, error) {
	const q = `
		SELECT symbol, strike, expiry, option_type, bid, ask, as_of
		FROM option_quotes
		WHERE symbol = $1 AND strike = $2 AND expiry = $3 AND option_type = $4
		ORDER BY as_of DESC
		LIMIT 1`

	var (
		quote            Quote
		strike, bid, ask string
		expiry, asOf     time.Time
	)
	err := s.db.QueryRowContext(ctx, q, key.Symbol, key.Strike, key.Expiry, key.Type).
		Scan(&quote.Symbol, &strike, &expiry, &quote.Type, &bid, &ask, &asOf)
	if err == sql.ErrNoRows {
		return Quote{}, fmt.Errorf("marketdata: no quote for %s %s %s %s",
			key.Symbol, key.Strike, key.Expiry, key.Type)
	}
	if err != nil {
		return Quote{}, fmt.Errorf("marketdata: query quote: %w", err)
	}

	if quote.Strike, err = decimal.NewFromString(strike); err != nil {
		return Quote{}, fmt.Errorf("marketdata: parse strike %q: %w", strike, err)
	}
	if quote.Bid, err = decimal.NewFromString(bid); err != nil {
		return Quote{}, fmt.Errorf("marketdata: parse bid %q: %w", bid, err)
	}
	if quote.Ask, err = decimal.NewFromString(ask); err != nil {
		return Quote{}, fmt.Errorf("marketdata: parse ask %q: %w", ask, err)
	}
	quote.Expiry = expiry
	quote.AsOf = asOf
	return quote, nil
}
