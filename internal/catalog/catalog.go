// Package catalog persists class declarations in a SQLite file, so that a
// universe assembled from several sources can be snapshotted and restored
// without re-reading those sources.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/funvibe/typewalk/internal/registry"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS classes (
	name    TEXT PRIMARY KEY,
	kind    TEXT NOT NULL,
	element INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS params (
	class TEXT NOT NULL REFERENCES classes(name) ON DELETE CASCADE,
	pos   INTEGER NOT NULL,
	name  TEXT NOT NULL,
	PRIMARY KEY (class, pos)
);
CREATE TABLE IF NOT EXISTS bounds (
	class TEXT NOT NULL REFERENCES classes(name) ON DELETE CASCADE,
	param INTEGER NOT NULL,
	pos   INTEGER NOT NULL,
	expr  TEXT NOT NULL,
	PRIMARY KEY (class, param, pos)
);
CREATE TABLE IF NOT EXISTS supers (
	class TEXT NOT NULL REFERENCES classes(name) ON DELETE CASCADE,
	pos   INTEGER NOT NULL,
	expr  TEXT NOT NULL,
	PRIMARY KEY (class, pos)
);
CREATE TABLE IF NOT EXISTS fields (
	class TEXT NOT NULL REFERENCES classes(name) ON DELETE CASCADE,
	pos   INTEGER NOT NULL,
	name  TEXT NOT NULL,
	type  TEXT NOT NULL,
	PRIMARY KEY (class, pos)
);
`

// Catalog is an open SQLite catalog file.
type Catalog struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens (creating if needed) the catalog at path.
func Open(ctx context.Context, path string, log *zap.Logger) (*Catalog, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema in %s: %w", path, err)
	}
	return &Catalog{db: db, log: log.With(zap.String("catalog", path))}, nil
}

// Close releases the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Save stores decls, replacing any earlier record of the same classes.
func (c *Catalog) Save(ctx context.Context, decls []registry.ClassDecl) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting catalog write: %w", err)
	}
	defer tx.Rollback()

	for _, d := range decls {
		if err := saveDecl(ctx, tx, d); err != nil {
			return fmt.Errorf("saving %s: %w", d.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing catalog write: %w", err)
	}
	c.log.Debug("catalog saved", zap.Int("classes", len(decls)))
	return nil
}

func saveDecl(ctx context.Context, tx *sql.Tx, d registry.ClassDecl) error {
	kind := d.Kind
	if kind == "" {
		kind = registry.KindClass
	}
	for _, table := range []string{"bounds", "params", "supers", "fields"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE class = ?`, d.Name); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM classes WHERE name = ?`, d.Name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO classes (name, kind, element) VALUES (?, ?, ?)`,
		d.Name, kind, d.Element); err != nil {
		return err
	}
	for i, p := range d.Params {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO params (class, pos, name) VALUES (?, ?, ?)`,
			d.Name, i, p.Name); err != nil {
			return err
		}
		for j, b := range p.Bounds {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO bounds (class, param, pos, expr) VALUES (?, ?, ?, ?)`,
				d.Name, i, j, b); err != nil {
				return err
			}
		}
	}
	for i, s := range d.Extends {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO supers (class, pos, expr) VALUES (?, ?, ?)`,
			d.Name, i, s); err != nil {
			return err
		}
	}
	for i, f := range d.Fields {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO fields (class, pos, name, type) VALUES (?, ?, ?, ?)`,
			d.Name, i, f.Name, f.Type); err != nil {
			return err
		}
	}
	return nil
}

// Load reads every stored declaration, ordered by class name.
func (c *Catalog) Load(ctx context.Context) ([]registry.ClassDecl, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT name, kind, element FROM classes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("reading classes: %w", err)
	}
	var decls []registry.ClassDecl
	index := make(map[string]int)
	for rows.Next() {
		var d registry.ClassDecl
		if err := rows.Scan(&d.Name, &d.Kind, &d.Element); err != nil {
			rows.Close()
			return nil, fmt.Errorf("reading classes: %w", err)
		}
		index[d.Name] = len(decls)
		decls = append(decls, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading classes: %w", err)
	}
	declOf := func(class string) (*registry.ClassDecl, error) {
		i, ok := index[class]
		if !ok {
			return nil, fmt.Errorf("row for undeclared class %s", class)
		}
		return &decls[i], nil
	}

	if err := c.each(ctx, `SELECT class, name FROM params ORDER BY class, pos`, func(rows *sql.Rows) error {
		var class, name string
		if err := rows.Scan(&class, &name); err != nil {
			return err
		}
		d, err := declOf(class)
		if err != nil {
			return err
		}
		d.Params = append(d.Params, registry.ParamDecl{Name: name})
		return nil
	}); err != nil {
		return nil, fmt.Errorf("reading params: %w", err)
	}

	if err := c.each(ctx, `SELECT class, param, expr FROM bounds ORDER BY class, param, pos`, func(rows *sql.Rows) error {
		var class, expr string
		var param int
		if err := rows.Scan(&class, &param, &expr); err != nil {
			return err
		}
		d, err := declOf(class)
		if err != nil {
			return err
		}
		if param >= len(d.Params) {
			return fmt.Errorf("%s: bound for missing parameter %d", class, param)
		}
		d.Params[param].Bounds = append(d.Params[param].Bounds, expr)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("reading bounds: %w", err)
	}

	if err := c.each(ctx, `SELECT class, expr FROM supers ORDER BY class, pos`, func(rows *sql.Rows) error {
		var class, expr string
		if err := rows.Scan(&class, &expr); err != nil {
			return err
		}
		d, err := declOf(class)
		if err != nil {
			return err
		}
		d.Extends = append(d.Extends, expr)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("reading supers: %w", err)
	}

	if err := c.each(ctx, `SELECT class, name, type FROM fields ORDER BY class, pos`, func(rows *sql.Rows) error {
		var class string
		var f registry.FieldDecl
		if err := rows.Scan(&class, &f.Name, &f.Type); err != nil {
			return err
		}
		d, err := declOf(class)
		if err != nil {
			return err
		}
		d.Fields = append(d.Fields, f)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("reading fields: %w", err)
	}

	c.log.Debug("catalog loaded", zap.Int("classes", len(decls)))
	return decls, nil
}

func (c *Catalog) each(ctx context.Context, query string, fn func(*sql.Rows) error) error {
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Snapshot writes every declaration of u to the catalog at path.
func Snapshot(ctx context.Context, u *registry.Universe, path string, log *zap.Logger) error {
	c, err := Open(ctx, path, log)
	if err != nil {
		return err
	}
	defer c.Close()
	return c.Save(ctx, u.Decls())
}

// Restore builds a universe from the catalog at path.
func Restore(ctx context.Context, path string, log *zap.Logger) (*registry.Universe, error) {
	c, err := Open(ctx, path, log)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	decls, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	u := registry.NewUniverse()
	if len(decls) == 0 {
		return u, nil
	}
	if err := u.Define(decls...); err != nil {
		return nil, fmt.Errorf("restoring %s: %w", path, err)
	}
	return u, nil
}
