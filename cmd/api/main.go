package main

import (
	"log"
	"time"

	"VisionAnalyzer_AIProject/internal/config"
	"VisionAnalyzer_AIProject/internal/handler"
	"VisionAnalyzer_AIProject/internal/llm"
	"VisionAnalyzer_AIProject/internal/media"
	"VisionAnalyzer_AIProject/internal/middleware"
	"VisionAnalyzer_AIProject/internal/storage"

	_ "VisionAnalyzer_AIProject/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// @title           AI Vision Analyzer API
// @version         1.0
// @description     멀티모달 모델 기반 이미지/텍스트 분석 백엔드
// @BasePath        /
func main() {
	cfg := config.Load()

	store, err := storage.NewRecordStore(cfg.DBPath)
	if err != nil {
		log.Fatal("main(): ", err)
	}

	llmClient := llm.NewClient(cfg.HFAPIKey, cfg.HFBaseURL)

	// Cloudinary 미설정 시 uploader 없이 동작 (인라인 전송으로 대체됨)
	var uploader handler.ImageUploader
	if cfg.CloudinaryConfigured() {
		u, err := media.NewUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Fatal("main(): ", err)
		}
		uploader = u
	} else {
		log.Println("main(): Cloudinary is not configured, uploads will be sent inline")
	}

	h := handler.New(llmClient, uploader, store)

	router := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	router.Use(cors.New(corsConfig))
	router.Use(middleware.RequestID())

	// 클라이언트 IP별 요청 제한 (/analyze 한정)
	analyzeLimiter := limit.NewRateLimiter(func(c *gin.Context) string {
		return c.ClientIP()
	}, func(c *gin.Context) (*rate.Limiter, time.Duration) {
		return rate.NewLimiter(rate.Every(time.Second), 5), time.Hour
	}, func(c *gin.Context) {
		c.AbortWithStatusJSON(429, gin.H{"result": "Too many requests"})
	})

	router.POST("/analyze", analyzeLimiter, h.Analyze)
	router.GET("/history", h.GetHistory)
	router.DELETE("/delete/:id", h.DeleteRecord)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", handler.ServeIndex)
	router.NoRoute(handler.ServeStatic)

	log.Fatal(router.Run(cfg.Addr))
}
