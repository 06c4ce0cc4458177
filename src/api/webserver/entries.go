package webserver

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/slonskitech/slownik/src/api/dictionary"
)

type Entries struct {
	store *dictionary.Store
}

func NewEntries(store *dictionary.Store) Entries {
	return Entries{store: store}
}

func (h Entries) List(c *gin.Context) {
	categoryID, _ := strconv.ParseUint(c.Query("category"), 10, 64)
	entries, total, err := h.store.ListEntries(dictionary.EntryFilter{
		Status:     c.Query("status"),
		Query:      c.Query("q"),
		CategoryID: categoryID,
		Limit:      limitParam(c, 50),
		Offset:     offsetParam(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": total})
}

func (h Entries) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}
	entry, err := h.store.GetEntryByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h Entries) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}
	var req dictionary.EntryUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.store.UpdateEntry(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("entry %d updated [%s]", id, c.GetString(requestIDKey))
	c.JSON(http.StatusOK, entry)
}

func (h Entries) Stats(c *gin.Context) {
	stats, err := h.store.Stats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
