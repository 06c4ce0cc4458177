package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/slonskitech/slownik/src/api/dictionary"
)

type PartsOfSpeech struct {
	store *dictionary.Store
}

func NewPartsOfSpeech(store *dictionary.Store) PartsOfSpeech {
	return PartsOfSpeech{store: store}
}

func (h PartsOfSpeech) List(c *gin.Context) {
	parts, err := h.store.ListPartsOfSpeech()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"partsOfSpeech": parts})
}

func (h PartsOfSpeech) Create(c *gin.Context) {
	var req dictionary.PartOfSpeechInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pos, err := h.store.CreatePartOfSpeech(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pos)
}

func (h PartsOfSpeech) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid part of speech id"})
		return
	}
	var req dictionary.PartOfSpeechInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pos, err := h.store.UpdatePartOfSpeech(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pos)
}

func (h PartsOfSpeech) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid part of speech id"})
		return
	}
	if err := h.store.DeletePartOfSpeech(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
