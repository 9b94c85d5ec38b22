package models

import "time"

// 분석 결과 1건 (predictions 테이블과 매핑)
type Record struct {
	ID        int       `json:"id"`
	Result    string    `json:"result"`
	ImagePath string    `json:"image"` // Cloudinary URL 또는 빈 문자열
	CreatedAt time.Time `json:"-"`
}

// /history 응답 항목
type HistoryEntry struct {
	ID        int    `json:"id"`
	Result    string `json:"result"`
	Timestamp string `json:"timestamp" example:"2025-01-02 15:04"`
	Image     string `json:"image"`
}
