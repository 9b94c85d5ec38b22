package prompt

// 이미지 분석 모드에서 사용하는 지시문 종류
const (
	TypeDescribe = "describe"
	TypeCaption  = "caption"
	TypeObjects  = "objects"
	TypeExplain  = "explain"
)

// 서식(이모지, 볼드) 지시가 포함된 고정 지시문 테이블
var templates = map[string]string{
	TypeDescribe: "Describe this image in full detail with emojis to highlight features and **bold** key elements. Be engaging and comprehensive.",
	TypeCaption:  "Write a detailed caption for this image, using emojis for emphasis and **bold** important words. Make it vivid and full.",
	TypeObjects:  "List all objects in this image in detail, with emojis next to each and **bold** the main ones. Provide full descriptions.",
	TypeExplain:  "Explain the scene in this image thoroughly, using emojis to illustrate points and **bold** key concepts. Be detailed and engaging.",
}

// 텍스트 모드 프롬프트에 덧붙이는 서식 지시
const TextSuffix = " Respond in full detail with emojis and **bold** text for emphasis."

// Template은 promptType에 해당하는 지시문을 반환한다.
// 모르는 키나 빈 키는 describe로 대체된다.
func Template(promptType string) string {
	if t, ok := templates[promptType]; ok {
		return t
	}
	return templates[TypeDescribe]
}
