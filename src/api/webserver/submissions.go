package webserver

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/slonskitech/slownik/src/api/dictionary"
)

type Submissions struct {
	store *dictionary.Store
}

func NewSubmissions(store *dictionary.Store) Submissions {
	return Submissions{store: store}
}

func (s Submissions) List(c *gin.Context) {
	subs, err := s.store.ListSubmissions(c.Query("status"), limitParam(c, 50))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs})
}

// Review applies the terminal approve/reject transition. Approval
// promotes the submission into a brand new dictionary entry.
func (s Submissions) Review(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
		return
	}

	var req struct {
		Action      string `json:"action" binding:"required,oneof=approve reject"`
		ReviewNotes string `json:"reviewNotes" binding:"max=2000"`
		AdminID     string `json:"adminId" binding:"required,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Action {
	case "approve":
		entry, err := s.store.Approve(id, req.AdminID, req.ReviewNotes)
		if err != nil {
			respondError(c, err)
			return
		}
		log.Printf("admin %s approved submission %d as entry %d [%s]",
			req.AdminID, id, entry.ID, c.GetString(requestIDKey))
		c.JSON(http.StatusOK, gin.H{"status": "APPROVED", "entryId": entry.ID})
	default:
		if err := s.store.Reject(id, req.AdminID, req.ReviewNotes); err != nil {
			respondError(c, err)
			return
		}
		log.Printf("admin %s rejected submission %d [%s]", req.AdminID, id, c.GetString(requestIDKey))
		c.JSON(http.StatusOK, gin.H{"status": "REJECTED"})
	}
}
