package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/tcg-tracker/collection/internal/database"
	"github.com/codyseavey/tcg-tracker/collection/internal/metrics"
	"github.com/codyseavey/tcg-tracker/collection/internal/models"
)

type CollectionHandler struct{}

func NewCollectionHandler() *CollectionHandler {
	return &CollectionHandler{}
}

func (h *CollectionHandler) GetCollection(c *gin.Context) {
	db := database.GetDB()

	var items []models.CollectionItem
	query := db.Preload("Card").Order("added_at DESC")

	// Optional filters
	if set := c.Query("set"); set != "" {
		query = query.Joins("JOIN cards ON cards.id = collection_items.card_id").
			Where("cards.set_code = ?", set)
	}
	if run := c.Query("import_run"); run != "" {
		query = query.Where("collection_items.import_run_id = ?", run)
	}

	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *CollectionHandler) DeleteCollectionItem(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	db := database.GetDB()

	result := db.Delete(&models.CollectionItem{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *CollectionHandler) GetStats(c *gin.Context) {
	db := database.GetDB()

	stats := models.CollectionStats{BySet: map[string]int{}}

	// Total and unique cards
	if err := db.Model(&models.CollectionItem{}).Select("COALESCE(SUM(quantity), 0)").Scan(&stats.TotalCards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var uniqueCount int64
	if err := db.Model(&models.CollectionItem{}).Distinct("card_id").Count(&uniqueCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	stats.UniqueCards = int(uniqueCount)

	if err := db.Model(&models.CollectionItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("printing IN ?", []models.PrintingType{models.PrintingFoil, models.PrintingEtched}).
		Scan(&stats.FoilCards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type setCount struct {
		SetCode string
		Count   int
	}
	var setResults []setCount
	if err := db.Table("collection_items").
		Select("cards.set_code, SUM(collection_items.quantity) as count").
		Joins("JOIN cards ON cards.id = collection_items.card_id").
		Group("cards.set_code").
		Scan(&setResults).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for _, sr := range setResults {
		stats.BySet[sr.SetCode] = sr.Count
	}

	metrics.CollectionCardsTotal.Set(float64(stats.TotalCards))
	c.JSON(http.StatusOK, stats)
}
