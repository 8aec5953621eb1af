package database

import (
	"database/sql"
	"log"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/yleoer/abbr/pkg/abbr"
)

// sqliteStore 是 PhraseStore 接口的 SQLite 实现
type sqliteStore struct {
	db     *sql.DB
	logger *log.Logger
}

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS special_cases (
		phrase TEXT PRIMARY KEY,
		abbreviation TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

const (
	upsertPhraseSQL = "INSERT INTO special_cases (phrase, abbreviation, created_at) VALUES (?, ?, ?) " +
		"ON CONFLICT(phrase) DO UPDATE SET abbreviation = excluded.abbreviation, created_at = excluded.created_at"
	deletePhraseSQL = "DELETE FROM special_cases WHERE phrase = ?"
	listPhrasesSQL  = "SELECT phrase, abbreviation, created_at FROM special_cases ORDER BY phrase"
)

// NewSQLiteStore 初始化 SQLite 数据库并返回 PhraseStore 接口实例
func NewSQLiteStore(dataSourceName string, logger *log.Logger) (PhraseStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}
	store, err := newStore(db, logger)
	if err != nil {
		return nil, err
	}
	logger.Printf("SQLite database initialized at: %s", dataSourceName)
	return store, nil
}

func newStore(db *sql.DB, logger *log.Logger) (*sqliteStore, error) {
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create special_cases table")
	}
	return &sqliteStore{db: db, logger: logger}, nil
}

// Close 关闭数据库连接
func (s *sqliteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.logger.Println("SQLite database connection closed.")
		return err
	}
	return nil
}

// AddPhrase 校验后写入特例词，已存在时覆盖
func (s *sqliteStore) AddPhrase(phrase, abbreviation string) error {
	if err := abbr.ValidatePhrase(phrase, abbreviation); err != nil {
		return err
	}
	if _, err := s.db.Exec(upsertPhraseSQL, phrase, abbreviation, time.Now()); err != nil {
		s.logger.Printf("ERROR: Failed to add phrase %s: %v", phrase, err)
		return errors.Wrapf(err, "failed to add phrase %s", phrase)
	}
	s.logger.Printf("Phrase %s -> %s saved.", phrase, abbreviation)
	return nil
}

// RemovePhrase 删除特例词
func (s *sqliteStore) RemovePhrase(phrase string) (bool, error) {
	res, err := s.db.Exec(deletePhraseSQL, phrase)
	if err != nil {
		s.logger.Printf("ERROR: Failed to remove phrase %s: %v", phrase, err)
		return false, errors.Wrapf(err, "failed to remove phrase %s", phrase)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrapf(err, "failed to remove phrase %s", phrase)
	}
	if n > 0 {
		s.logger.Printf("Phrase %s removed.", phrase)
	}
	return n > 0, nil
}

// ListPhrases 列出所有特例词
func (s *sqliteStore) ListPhrases() ([]Phrase, error) {
	rows, err := s.db.Query(listPhrasesSQL)
	if err != nil {
		s.logger.Printf("ERROR: Failed to list phrases: %v", err)
		return nil, errors.Wrap(err, "failed to list phrases")
	}
	defer rows.Close()

	var phrases []Phrase
	for rows.Next() {
		var p Phrase
		if err := rows.Scan(&p.Phrase, &p.Abbreviation, &p.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan phrase row")
		}
		phrases = append(phrases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list phrases")
	}
	return phrases, nil
}
