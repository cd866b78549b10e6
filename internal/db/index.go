package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/chriserin/zgr/internal/parser"
	"github.com/chriserin/zgr/internal/structure"
)

// IndexFile records pf as the current state of path: the file row is
// created or updated, scenarios keep their ids when their names survive,
// and the statement set is replaced. It reports whether path was new.
func IndexFile(sqlDB *sql.DB, path string, pf *parser.ParsedFile) (created bool, err error) {
	tx, err := sqlDB.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning index of %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var fileID int64
	err = tx.QueryRow(`SELECT id FROM files WHERE file_path = ?`, path).Scan(&fileID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.Exec(`INSERT INTO files (file_path, name, error_count) VALUES (?, ?, ?)`,
			path, pf.Name, len(pf.Errors))
		if err != nil {
			return false, fmt.Errorf("inserting %s: %w", path, err)
		}
		if fileID, err = res.LastInsertId(); err != nil {
			return false, fmt.Errorf("reading id of %s: %w", path, err)
		}
		created = true
	case err != nil:
		return false, fmt.Errorf("querying %s: %w", path, err)
	default:
		_, err = tx.Exec(`UPDATE files SET name = ?, error_count = ?, updated_at = datetime('now') WHERE id = ?`,
			pf.Name, len(pf.Errors), fileID)
		if err != nil {
			return false, fmt.Errorf("updating %s: %w", path, err)
		}
	}

	if err = indexScenarios(tx, fileID, pf.Scenarios); err != nil {
		return false, fmt.Errorf("indexing scenarios of %s: %w", path, err)
	}
	if err = indexStatements(tx, fileID, pf.Statements); err != nil {
		return false, fmt.Errorf("indexing statements of %s: %w", path, err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("committing %s: %w", path, err)
	}
	return created, nil
}

func indexScenarios(tx *sql.Tx, fileID int64, scenarios []parser.ParsedScenario) error {
	rows, err := tx.Query(`SELECT id, name FROM scenarios WHERE file_id = ? ORDER BY id`, fileID)
	if err != nil {
		return err
	}
	existing := make(map[string][]int64)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return err
		}
		existing[name] = append(existing[name], id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, sc := range scenarios {
		if ids := existing[sc.Name]; len(ids) > 0 {
			existing[sc.Name] = ids[1:]
			_, err := tx.Exec(`UPDATE scenarios SET line = ?, content = ?, updated_at = datetime('now') WHERE id = ?`,
				sc.Line, sc.Content, ids[0])
			if err != nil {
				return err
			}
			continue
		}
		_, err := tx.Exec(`INSERT INTO scenarios (file_id, name, line, content) VALUES (?, ?, ?, ?)`,
			fileID, sc.Name, sc.Line, sc.Content)
		if err != nil {
			return err
		}
	}

	for _, ids := range existing {
		for _, id := range ids {
			if _, err := tx.Exec(`DELETE FROM scenarios WHERE id = ?`, id); err != nil {
				return err
			}
		}
	}
	return nil
}

func indexStatements(tx *sql.Tx, fileID int64, statements []parser.ParsedStatement) error {
	if _, err := tx.Exec(`DELETE FROM statements WHERE file_id = ?`, fileID); err != nil {
		return err
	}
	for _, st := range statements {
		_, err := tx.Exec(`INSERT INTO statements (file_id, keyword, template, line) VALUES (?, ?, ?, ?)`,
			fileID, st.Keyword.String(), st.Template, st.Line)
		if err != nil {
			return err
		}
	}
	return nil
}

// RemoveFile drops path and everything indexed from it. It reports whether
// the file was indexed.
func RemoveFile(sqlDB *sql.DB, path string) (bool, error) {
	res, err := sqlDB.Exec(`DELETE FROM files WHERE file_path = ?`, path)
	if err != nil {
		return false, fmt.Errorf("removing %s: %w", path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("removing %s: %w", path, err)
	}
	return n > 0, nil
}

// FilePaths lists every indexed file path in order.
func FilePaths(sqlDB *sql.DB) ([]string, error) {
	rows, err := sqlDB.Query(`SELECT file_path FROM files ORDER BY file_path`)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// Statements returns the distinct templates indexed under keyword across
// the project, in file then line order.
func Statements(sqlDB *sql.DB, keyword structure.Keyword) ([]string, error) {
	rows, err := sqlDB.Query(`
		SELECT st.template
		FROM statements st
		JOIN files f ON st.file_id = f.id
		WHERE st.keyword = ?
		ORDER BY f.file_path, st.line
	`, keyword.String())
	if err != nil {
		return nil, fmt.Errorf("querying %s statements: %w", keyword, err)
	}
	defer rows.Close()

	var out []string
	seen := make(map[string]bool)
	for rows.Next() {
		var tmpl string
		if err := rows.Scan(&tmpl); err != nil {
			return nil, fmt.Errorf("scanning statement: %w", err)
		}
		if !seen[tmpl] {
			seen[tmpl] = true
			out = append(out, tmpl)
		}
	}
	return out, rows.Err()
}
