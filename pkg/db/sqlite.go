package db

// use sqlite https://modernc.org/sqlite/

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-errors/errors"
	_ "modernc.org/sqlite"
)

const (
	dbFile              string = "controlnet.sqlite"
	getCurrentMigration string = `PRAGMA user_version;`
	setCurrentMigration string = `PRAGMA user_version = ?;`
	setForeignKeyCheck  string = `PRAGMA foreign_keys = ON;`
)

type Sqlite struct {
	*sql.DB
	context context.Context
}

type migration struct {
	migrationName  string
	migrationQuery string
}

var migrations = []migration{
	{migrationName: "create generations table", migrationQuery: createGenerations},
	{migrationName: "create detections table", migrationQuery: createDetections},
}

// sql statements
const (
	createGenerations = `
	CREATE TABLE IF NOT EXISTS generations (
		generation_id TEXT PRIMARY KEY,
		endpoint TEXT NOT NULL,
		prompt TEXT NOT NULL,
		units INTEGER NOT NULL,
-- 		store the unit modules as a json string
		modules BLOB,
		images INTEGER NOT NULL,
		info BLOB,
		duration_ms INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)
	`

	createDetections = `
	CREATE TABLE IF NOT EXISTS detections (
		detection_id TEXT PRIMARY KEY,
		module TEXT NOT NULL,
		images INTEGER NOT NULL,
		resolution INTEGER NOT NULL,
		threshold_a REAL NOT NULL,
		threshold_b REAL NOT NULL,
		duration_ms INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)
	`
)

func New(ctx context.Context) (*Sqlite, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	filename := ":memory:"
	if inMemory, ok := ctx.Value(":memory:").(bool); !ok || !inMemory {
		var err error
		filename, err = DBFilename()
		if err != nil {
			return nil, err
		}

		if err := touchDBFile(filename); err != nil {
			return nil, errors.New("failed to create db file")
		}
	}

	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(setForeignKeyCheck)
	if err != nil {
		return nil, errors.New("failed to enable foreign key checks")
	}

	err = migrate(ctx, db)
	if err != nil {
		return nil, err
	}

	return &Sqlite{db, ctx}, nil
}

func (db Sqlite) Context() context.Context {
	return db.context
}

func DBFilename() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return dir + "/" + dbFile, nil
}

func touchDBFile(filename string) error {
	_, err := os.Stat(filename)
	if os.IsNotExist(err) {
		file, createErr := os.Create(filename)
		if createErr != nil {
			return createErr
		}

		closeErr := file.Close()
		if closeErr != nil {
			return closeErr
		}
	}

	return nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	var currentMigration int

	row := db.QueryRowContext(ctx, getCurrentMigration)

	err := row.Scan(&currentMigration)
	if err != nil {
		return err
	}

	requiredMigration := len(migrations)

	if currentMigration < requiredMigration {
		for migrationNum := currentMigration + 1; migrationNum <= requiredMigration; migrationNum++ {
			err = execMigration(ctx, db, migrationNum)
			if err != nil {
				log.Printf("Error running migration %v '%v'\n", migrationNum, migrations[migrationNum-1].migrationName)

				return err
			}
		}
	}

	return nil
}

func execMigration(ctx context.Context, db *sql.DB, migrationNum int) error {
	log.Printf("Running migration %v '%v'\n", migrationNum, migrations[migrationNum-1].migrationName)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	//nolint
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, migrations[migrationNum-1].migrationQuery)
	if err != nil {
		return err
	}

	setQuery := strings.Replace(setCurrentMigration, "?", strconv.Itoa(migrationNum), 1)

	_, err = tx.ExecContext(ctx, setQuery)
	if err != nil {
		return err
	}

	err = tx.Commit()
	if err != nil {
		return err
	}

	return nil
}

var nilDatabase = errors.New("database error")

const timeout = 15 * time.Second

func Error(db *Sqlite) error {
	if db == nil {
		return nilDatabase
	}
	ctx, cancel := context.WithTimeout(db.Context(), timeout)
	defer cancel()
	return db.PingContext(ctx)
}
