package config

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// ConnectDB opens the SQLite database at the given path and bootstraps the
// schema. The caller owns the returned handle.
func ConnectDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	// Raw SQL commands to construct the schema natively
	userTableQuery := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		email TEXT UNIQUE,
		password TEXT
	);`

	profileTableQuery := `
	CREATE TABLE IF NOT EXISTS profiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER UNIQUE,
		phone TEXT,
		dob TEXT,
		education TEXT,
		university TEXT,
		graduation_year TEXT,
		current_status TEXT,
		current_role TEXT,
		skills TEXT,
		interests TEXT,
		linkedin TEXT,
		github TEXT,
		bio TEXT,
		photo TEXT,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);`

	if _, err := db.Exec(userTableQuery); err != nil {
		return err
	}

	if _, err := db.Exec(profileTableQuery); err != nil {
		return err
	}

	return nil
}
