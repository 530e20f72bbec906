// Package catalog persists generated DSM products and connectivity
// analysis runs in a sqlite database so pipeline stages can find the
// outputs of earlier dates.
package catalog

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS dsm_products (
			product_id        TEXT PRIMARY KEY,
			sources           BIGINT,
			grid_width        BIGINT,
			grid_height       BIGINT,
			resolution        DOUBLE,
			epsg              BIGINT,
			layers            BIGINT,
			output_path       TEXT,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS connectivity_runs (
			run_id            TEXT PRIMARY KEY,
			cameras           BIGINT,
			min_matches       BIGINT,
			components        BIGINT,
			missing_cameras   TEXT,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// Product is one generated DSM recorded in the catalog.
type Product struct {
	ID         string
	Sources    int
	GridWidth  int
	GridHeight int
	Resolution float64
	EPSG       int
	Layers     int
	OutputPath string
	Timestamp  time.Time
}

// Run is one connectivity analysis recorded in the catalog.
type Run struct {
	ID             string
	Cameras        int
	MinMatches     int
	Components     int
	MissingCameras []int
	Timestamp      time.Time
}

// RecordProduct inserts a product row and returns its generated id.
func (db *DB) RecordProduct(p Product) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO dsm_products
			(product_id, sources, grid_width, grid_height, resolution, epsg, layers, output_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Sources, p.GridWidth, p.GridHeight, p.Resolution, p.EPSG, p.Layers, p.OutputPath,
	)
	if err != nil {
		return "", fmt.Errorf("recording product: %w", err)
	}
	return id, nil
}

// Products returns recorded products, newest first.
func (db *DB) Products() ([]Product, error) {
	rows, err := db.Query(
		`SELECT product_id, sources, grid_width, grid_height, resolution, epsg, layers, output_path, timestamp
		FROM dsm_products ORDER BY timestamp DESC, product_id LIMIT 500`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Sources, &p.GridWidth, &p.GridHeight,
			&p.Resolution, &p.EPSG, &p.Layers, &p.OutputPath, &p.Timestamp); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// RecordRun inserts a connectivity run row and returns its generated id.
func (db *DB) RecordRun(r Run) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO connectivity_runs
			(run_id, cameras, min_matches, components, missing_cameras)
		VALUES (?, ?, ?, ?, ?)`,
		id, r.Cameras, r.MinMatches, r.Components, encodeCameraList(r.MissingCameras),
	)
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	return id, nil
}

// Runs returns recorded connectivity runs, newest first.
func (db *DB) Runs() ([]Run, error) {
	rows, err := db.Query(
		`SELECT run_id, cameras, min_matches, components, missing_cameras, timestamp
		FROM connectivity_runs ORDER BY timestamp DESC, run_id LIMIT 500`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var missing string
		if err := rows.Scan(&r.ID, &r.Cameras, &r.MinMatches, &r.Components, &missing, &r.Timestamp); err != nil {
			return nil, err
		}
		r.MissingCameras, err = decodeCameraList(missing)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

// encodeCameraList stores camera indices as a space-separated string.
func encodeCameraList(cams []int) string {
	parts := make([]string, len(cams))
	for i, c := range cams {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, " ")
}

func decodeCameraList(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Fields(s)
	cams := make([]int, len(fields))
	for i, f := range fields {
		c, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad camera index %q: %v", f, err)
		}
		cams[i] = c
	}
	return cams, nil
}
