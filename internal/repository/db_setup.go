package repository

import (
	"database/sql"
	"log"
)

func CreateTableIfNotExists(db *sql.DB) {
	query := `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    first_name VARCHAR(255) NOT NULL,
    last_name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL UNIQUE,
    password VARCHAR(255) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS task_statuses (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS labels (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tasks (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    description TEXT,
    task_status_id INT NOT NULL REFERENCES task_statuses (id) ON DELETE RESTRICT,
    author_id INT NOT NULL REFERENCES users (id) ON DELETE RESTRICT,
    executor_id INT REFERENCES users (id) ON DELETE RESTRICT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS task_label (
    task_id INT NOT NULL REFERENCES tasks (id) ON DELETE CASCADE,
    label_id INT NOT NULL REFERENCES labels (id) ON DELETE RESTRICT,
    PRIMARY KEY (task_id, label_id)
);
    `

	if _, err := db.Exec(query); err != nil {
		log.Fatalf("Error creating tables: %v", err)
	}
}

func DeleteAllTable(db *sql.DB) {
	query := `
    DROP TABLE IF EXISTS task_label;
    DROP TABLE IF EXISTS tasks;
    DROP TABLE IF EXISTS labels;
    DROP TABLE IF EXISTS task_statuses;
    DROP TABLE IF EXISTS users;
    `

	if _, err := db.Exec(query); err != nil {
		log.Fatalf("Error deleting tables: %v", err)
	}
}
