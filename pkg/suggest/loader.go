package suggest

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// LoadPathList reads one path per line. Blank lines and lines starting with
// '#' are skipped.
func LoadPathList(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read path list: %w", err)
	}
	return paths, nil
}

// LoadPathFile reads a path list from disk.
func LoadPathFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	paths, err := LoadPathList(f)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d paths from %s", len(paths), filename)
	return paths, nil
}

// LoadSQLite reads every row of the filenames(name) table of a build
// database, opened read-only.
func LoadSQLite(ctx context.Context, dbPath string) ([]string, error) {
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "select name from filenames")
	if err != nil {
		return nil, fmt.Errorf("query filenames in %s: %w", dbPath, err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan filename: %w", err)
		}
		paths = append(paths, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d paths from %s", len(paths), dbPath)
	return paths, nil
}
