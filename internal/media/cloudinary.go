/**
* Name: 			cloudinary.go
* Description: 		Cloudinary 이미지 업로드 래퍼
* Workflow: 		이미지 스트림 업로드 → secure URL 반환
 */
package media

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// 업로드 대상 폴더
const uploadFolder = "ai-vision-uploads"

// Uploader는 Cloudinary 업로드 API를 감싼다.
type Uploader struct {
	cld *cloudinary.Cloudinary
}

// NewUploader는 Cloudinary 클라이언트를 초기화한다.
func NewUploader(cloudName, apiKey, apiSecret string) (*Uploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, errors.New("NewUploader(): failed to create Cloudinary client: " + err.Error())
	}
	cld.Config.URL.Secure = true
	return &Uploader{cld: cld}, nil
}

// UploadImage는 이미지를 고정 폴더에 업로드하고 공개 URL을 반환한다.
// 파일명 랜덤화를 끄기 때문에 같은 이름은 기존 자산을 덮어쓴다.
func (u *Uploader) UploadImage(ctx context.Context, file io.Reader, filename string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		ResourceType:     "image",
		Folder:           uploadFolder,
		UseFilename:      api.Bool(true),
		UniqueFilename:   api.Bool(false),
		FilenameOverride: filename,
	})
	if err != nil {
		return "", err
	}
	// Cloudinary SDK는 API 오류를 err 대신 응답 바디로 돌려주는 경우가 있음
	if resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}

	log.Printf("UploadImage(): Cloudinary upload success: %s", resp.SecureURL)
	return resp.SecureURL, nil
}
