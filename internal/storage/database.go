package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// 결과 길이 제한 (스키마 상한, 초과분은 저장 시 잘라냄)
const (
	resultMaxLen    = 2000
	imagePathMaxLen = 500
)

// RecordStore는 predictions 테이블에 대한 접근을 담당한다.
// 전역 핸들 대신 생성 후 핸들러에 주입해서 사용한다.
type RecordStore struct {
	db *sql.DB
}

// NewRecordStore는 SQLite 파일을 열고 테이블을 준비한다.
func NewRecordStore(dbPath string) (*RecordStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("NewRecordStore(): failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("NewRecordStore(): failed to connect to database: %w", err)
	}

	createPredictionsTable := `
	CREATE TABLE IF NOT EXISTS predictions (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"result" TEXT NOT NULL,
			"image_path" TEXT NOT NULL DEFAULT '',
			"created_at" DATETIME NOT NULL
	);`

	if _, err := db.Exec(createPredictionsTable); err != nil {
		return nil, fmt.Errorf("NewRecordStore(): failed to create predictions table: %w", err)
	}
	return &RecordStore{db: db}, nil
}

func (s *RecordStore) Close() error {
	return s.db.Close()
}
