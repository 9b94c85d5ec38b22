/**
* Name: 			analyze.go
* Description: 		분석 요청 디스패처 (Gin 핸들러)
* Workflow: 		mode 판별 → (업로드) → 모델 호출 → 기록 저장 → JSON 응답
 */
package handler

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"

	"VisionAnalyzer_AIProject/internal/prompt"
	"VisionAnalyzer_AIProject/internal/storage"

	"github.com/gin-gonic/gin"
)

// 멀티모달 모델 호출 (테스트 대체 가능하도록 인터페이스로 주입)
type Generator interface {
	GenerateFromText(ctx context.Context, prompt string) (string, error)
	GenerateFromImageURL(ctx context.Context, imageURL, prompt string) (string, error)
	GenerateFromImageBytes(ctx context.Context, image []byte, prompt string) (string, error)
}

// 이미지 업로드 (Cloudinary)
type ImageUploader interface {
	UploadImage(ctx context.Context, file io.Reader, filename string) (string, error)
}

// /analyze 응답 바디
type AnalyzeResponse struct {
	Result string `json:"result"`
}

// Handler는 외부 서비스 핸들을 주입받아 전체 API를 처리한다.
type Handler struct {
	llm      Generator
	uploader ImageUploader // nil이면 Cloudinary 미설정 (인라인 전송으로 대체)
	store    *storage.RecordStore
}

func New(llm Generator, uploader ImageUploader, store *storage.RecordStore) *Handler {
	return &Handler{llm: llm, uploader: uploader, store: store}
}

// Analyze godoc
// @Summary      이미지/텍스트 분석 요청
// @Description  mode(text|url|upload)에 따라 멀티모달 모델을 호출하고 결과를 기록합니다.
// @Description  오류도 result 문자열에 담겨 200으로 반환됩니다. (mode 누락 시에만 400)
// @Tags         Analyze
// @Accept       mpfd
// @Produce      json
// @Param        mode        formData  string  true   "text | url | upload"
// @Param        prompt      formData  string  false  "텍스트 프롬프트 (mode=text)"
// @Param        image_url   formData  string  false  "이미지 URL (mode=url)"
// @Param        prompt_type formData  string  false  "describe | caption | objects | explain"
// @Param        image       formData  file    false  "이미지 파일 (mode=upload)"
// @Success      200 {object} handler.AnalyzeResponse
// @Failure      400 {object} handler.AnalyzeResponse "mode 필드 누락"
// @Router       /analyze [post]
func (h *Handler) Analyze(c *gin.Context) {
	mode := c.PostForm("mode")
	if mode == "" {
		c.JSON(http.StatusBadRequest, AnalyzeResponse{Result: "Error: mode field is missing"})
		return
	}

	ctx := c.Request.Context()
	result := ""
	imagePath := "" // Cloudinary URL 또는 빈 문자열

	switch mode {
	case "text":
		promptText := strings.TrimSpace(c.PostForm("prompt"))
		if promptText != "" {
			out, err := h.llm.GenerateFromText(ctx, promptText+prompt.TextSuffix)
			if err != nil {
				result = "Text model error: " + err.Error()
			} else {
				result = out
			}
		} else {
			result = "Please enter a prompt."
		}

	case "url":
		imageURL := strings.TrimSpace(c.PostForm("image_url"))
		instruction := prompt.Template(c.PostForm("prompt_type"))
		if imageURL != "" {
			out, err := h.llm.GenerateFromImageURL(ctx, imageURL, instruction)
			if err != nil {
				result = "Image URL model error: " + err.Error()
			} else {
				result = out
			}
		} else {
			result = "Please provide a valid image URL."
		}

	case "upload":
		result, imagePath = h.analyzeUpload(c)

	default:
		result = "Invalid mode."
	}

	// 모든 도달 가능한 분기에서 기록 1건 저장 (mode 누락 제외)
	if err := h.store.CreateRecord(result, imagePath); err != nil {
		log.Printf("Analyze(): failed to save record: %v", err)
	}

	c.JSON(http.StatusOK, AnalyzeResponse{Result: result})
}

// 업로드 모드 처리. (결과 문자열, 이미지 URL)을 반환한다.
func (h *Handler) analyzeUpload(c *gin.Context) (string, string) {
	fileHeader, err := c.FormFile("image")
	if err != nil || fileHeader.Filename == "" {
		return "No image file selected.", ""
	}

	instruction := prompt.Template(c.PostForm("prompt_type"))
	ctx := c.Request.Context()

	file, err := fileHeader.Open()
	if err != nil {
		return "Error during processing: " + err.Error(), ""
	}
	defer file.Close()

	// Cloudinary 미설정 시 이미지 바이트를 모델에 직접 인라인 전송
	if h.uploader == nil {
		data, err := io.ReadAll(file)
		if err != nil {
			return "Error during processing: " + err.Error(), ""
		}
		out, err := h.llm.GenerateFromImageBytes(ctx, data, instruction)
		if err != nil {
			return "Image upload model error: " + err.Error(), ""
		}
		return out, ""
	}

	imageURL, err := h.uploader.UploadImage(ctx, file, fileHeader.Filename)
	if err != nil {
		result := "Cloudinary upload failed: " + err.Error()
		log.Printf("analyzeUpload(): %s", result)
		return result, ""
	}

	// 업로드 성공 시 추론 실패 여부와 무관하게 URL은 기록에 남긴다
	out, err := h.llm.GenerateFromImageURL(ctx, imageURL, instruction)
	if err != nil {
		return "Image URL model error: " + err.Error(), imageURL
	}
	return out, imageURL
}
