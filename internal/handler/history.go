package handler

import (
	"net/http"
	"strconv"

	"VisionAnalyzer_AIProject/internal/models"

	"github.com/gin-gonic/gin"
)

// GetHistory godoc
// @Summary      분석 기록 조회
// @Description  저장된 분석 기록 전체를 최신순(id 내림차순)으로 반환합니다.
// @Tags         History
// @Produce      json
// @Success      200 {array}  models.HistoryEntry
// @Failure      500 {object} map[string]string "DB 조회 실패"
// @Router       /history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	records, err := h.store.GetAllRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch records"})
		return
	}

	history := make([]models.HistoryEntry, 0, len(records))
	for _, r := range records {
		history = append(history, models.HistoryEntry{
			ID:        r.ID,
			Result:    r.Result,
			Timestamp: r.CreatedAt.Format("2006-01-02 15:04"),
			Image:     r.ImagePath,
		})
	}

	c.JSON(http.StatusOK, history)
}

// DeleteRecord godoc
// @Summary      분석 기록 삭제
// @Description  해당 id의 기록 1건을 삭제합니다.
// @Tags         History
// @Produce      json
// @Param        id   path      int  true  "기록 id"
// @Success      200  {object}  map[string]string "status: deleted"
// @Failure      404  {object}  map[string]string "status: not found"
// @Router       /delete/{id} [delete]
func (h *Handler) DeleteRecord(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "not found"})
		return
	}

	deleted, err := h.store.DeleteRecord(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"status": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
