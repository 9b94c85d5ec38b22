/**
* Name: 			config.go
* Description: 		환경변수 기반 서버 설정 로드
* Workflow: 		.env 로드 → 환경변수 조회 → Config 구조체 반환
 */
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// 서버 런타임 설정
type Config struct {
	Addr                string // HTTP 바인드 주소
	DBPath              string // SQLite 파일 경로
	HFAPIKey            string // Hugging Face Router API 키
	HFBaseURL           string // OpenAI 호환 엔드포인트 주소
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

// Load는 .env 파일(있는 경우)과 환경변수로부터 설정을 읽는다.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Load(): no .env file found, using environment variables only")
	}

	cfg := &Config{
		Addr:                getEnv("PORT_ADDR", ":5000"),
		DBPath:              getEnv("DB_PATH", "./app.db"),
		HFAPIKey:            os.Getenv("HF_API_KEY"),
		HFBaseURL:           getEnv("HF_BASE_URL", "https://router.huggingface.co/v1"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}
	return cfg
}

// Cloudinary 자격 증명이 모두 설정되어 있는지 확인
func (c *Config) CloudinaryConfigured() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
