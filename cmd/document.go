package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chriserin/zgr/internal/config"
	"github.com/chriserin/zgr/internal/db"
	"github.com/chriserin/zgr/internal/lexer"
)

// ErrDocumentTooLarge is returned for documents over the configured size bound.
var ErrDocumentTooLarge = errors.New("document too large")

// readDocument reads path, refusing anything over cfg.MaxDocumentBytes.
func readDocument(cfg config.Config, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, cfg.MaxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if int64(len(data)) > cfg.MaxDocumentBytes {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", path, ErrDocumentTooLarge, cfg.MaxDocumentBytes)
	}
	return data, nil
}

// openIndex opens the index database of an initialized project.
func openIndex(cfg config.Config) (*sql.DB, error) {
	if _, err := os.Stat(cfg.Dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("run `zgr init` first")
	}
	sqlDB, err := db.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return sqlDB, nil
}

func keywords(cfg config.Config) lexer.KeywordSet {
	return lexer.NewKeywordSet(cfg.Keywords...)
}

// checkOffset rejects cursor offsets outside buf.
func checkOffset(buf []byte, offset int) error {
	if offset < 0 || offset > len(buf) {
		return fmt.Errorf("offset %d outside document of %d bytes", offset, len(buf))
	}
	return nil
}
