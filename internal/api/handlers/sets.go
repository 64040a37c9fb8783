package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/tcg-tracker/collection/internal/catalog"
	"github.com/codyseavey/tcg-tracker/collection/internal/database"
	"github.com/codyseavey/tcg-tracker/collection/internal/models"
)

// SetHandler exposes the read-only catalog so rejected rows can be fixed by
// looking up the right set code and collector number.
type SetHandler struct{}

func NewSetHandler() *SetHandler {
	return &SetHandler{}
}

func (h *SetHandler) ListSets(c *gin.Context) {
	db := database.GetDB()

	query := db.Model(&models.Set{}).Order("code")
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR code LIKE ?", like, like)
	}

	var sets []models.Set
	if err := query.Find(&sets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.SetListResult{Sets: sets, TotalCount: len(sets)})
}

// GetSetCards lists the printings of one set. The set may be given by code or
// by its exact display name, which is what rejected rows carry.
func (h *SetHandler) GetSetCards(c *gin.Context) {
	ctx := c.Request.Context()
	ref := strings.TrimSpace(c.Param("code"))

	// Stores cache card lists for their lifetime, so one per request.
	store, err := catalog.NewStore(database.GetDB(), 1)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	set, err := store.FindSetByCode(ctx, ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	code := ""
	if set != nil {
		code = set.Code
	} else {
		found, ok, err := store.FindSetByName(ctx, ref)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "set not found"})
			return
		}
		code = found
	}

	cards, err := store.FindCardsInSet(ctx, code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if name := c.Query("name"); name != "" {
		filtered := make([]models.Card, 0, len(cards))
		for _, card := range cards {
			if card.Name == name {
				filtered = append(filtered, card)
			}
		}
		cards = filtered
	}

	c.JSON(http.StatusOK, models.CardListResult{Cards: cards, TotalCount: len(cards)})
}
