package storage

import (
	"log"
	"time"
	"unicode/utf8"

	"VisionAnalyzer_AIProject/internal/models"
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// CreateRecord는 분석 결과 1건을 저장한다. created_at은 현재 UTC 시각.
func (s *RecordStore) CreateRecord(result, imagePath string) error {
	stmt, err := s.db.Prepare("INSERT INTO predictions(result, image_path, created_at) VALUES(?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(
		truncate(result, resultMaxLen),
		truncate(imagePath, imagePathMaxLen),
		time.Now().UTC().Format(sqliteTimeLayout),
	)
	return err
}

// GetAllRecords는 전체 기록을 id 내림차순(최신순)으로 반환한다.
func (s *RecordStore) GetAllRecords() ([]models.Record, error) {
	query := `
		SELECT id, result, image_path, created_at
		FROM predictions
		ORDER BY id DESC
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var r models.Record
		var createdStr string // SQLite는 시간을 문자열로 저장함

		if err := rows.Scan(&r.ID, &r.Result, &r.ImagePath, &createdStr); err != nil {
			return nil, err
		}

		parsedTime, err := time.Parse(sqliteTimeLayout, createdStr)
		if err != nil {
			log.Printf("GetAllRecords(): failed to parse created_at %q: %v", createdStr, err)
		}
		r.CreatedAt = parsedTime

		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteRecord는 해당 id의 기록을 삭제한다. 존재하지 않으면 false를 반환.
func (s *RecordStore) DeleteRecord(id int) (bool, error) {
	res, err := s.db.Exec("DELETE FROM predictions WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// truncate는 s를 최대 max 바이트로 자른다. 멀티바이트 문자가
// 경계에 걸리면 문자 시작점까지 물러나서 깨진 UTF-8을 남기지 않는다.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
