package webserver

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/slonskitech/slownik/src/api/config"
	"github.com/slonskitech/slownik/src/api/data"
	"github.com/slonskitech/slownik/src/api/dictionary"
	"github.com/slonskitech/slownik/src/api/types"
)

type Public struct {
	store        *dictionary.Store
	rdb          *redis.Client
	submitRate   int
	submitWindow time.Duration
}

func NewPublic(store *dictionary.Store, rdb *redis.Client, cfg config.Config) Public {
	return Public{
		store:        store,
		rdb:          rdb,
		submitRate:   cfg.SubmitRate,
		submitWindow: time.Duration(cfg.SubmitWindow) * time.Second,
	}
}

// Index lists all approved entries plus the derived initial-letter index.
func (p Public) Index(c *gin.Context) {
	entries, total, err := p.store.ListEntries(dictionary.EntryFilter{
		Status: types.EntryApproved,
		Limit:  200,
		Offset: offsetParam(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	letters, err := p.store.LetterIndex()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "letters": letters, "total": total})
}

func (p Public) Featured(c *gin.Context) {
	entries, err := p.store.FeaturedEntries(limitParam(c, 6))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (p Public) Recent(c *gin.Context) {
	entries, err := p.store.RecentEntries(limitParam(c, 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (p Public) GetBySlug(c *gin.Context) {
	entry, err := p.store.GetEntryBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (p Public) Search(c *gin.Context) {
	categoryID, _ := strconv.ParseUint(c.Query("category"), 10, 64)
	entries, total, err := p.store.ListEntries(dictionary.EntryFilter{
		Status:     types.EntryApproved,
		Query:      c.Query("q"),
		SourceLang: c.Query("lang"),
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

func (p Public) Submit(c *gin.Context) {
	if p.rdb != nil {
		ok, err := data.AllowSubmit(c, p.rdb, c.ClientIP(), p.submitRate, p.submitWindow)
		if err != nil {
			// Rate limiting is best effort; a broken redis must not
			// block intake.
			log.Printf("submit rate limit check failed: %v", err)
		} else if !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many submissions, try again later"})
			return
		}
	}

	var req struct {
		SourceWord       string `json:"sourceWord" binding:"required,max=256"`
		SourceLang       string `json:"sourceLang"`
		TargetWord       string `json:"targetWord" binding:"required,max=512"`
		TargetLang       string `json:"targetLang"`
		Pronunciation    string `json:"pronunciation" binding:"max=256"`
		PartOfSpeech     string `json:"partOfSpeech" binding:"max=64"`
		CategoryID       uint64 `json:"categoryId"`
		NewCategoryName  string `json:"newCategoryName" binding:"max=128"`
		SubmitterName    string `json:"submitterName" binding:"max=128"`
		SubmitterEmail   string `json:"submitterEmail" binding:"omitempty,email,max=256"`
		Notes            string `json:"notes" binding:"max=2000"`
		ExampleSentences []struct {
			SourceText     string `json:"sourceText" binding:"max=1024"`
			TranslatedText string `json:"translatedText" binding:"max=1024"`
		} `json:"exampleSentences" binding:"required,min=1,max=10"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := dictionary.SubmissionInput{
		SourceWord:      req.SourceWord,
		SourceLang:      req.SourceLang,
		TargetWord:      req.TargetWord,
		TargetLang:      req.TargetLang,
		Pronunciation:   req.Pronunciation,
		PartOfSpeech:    req.PartOfSpeech,
		CategoryID:      req.CategoryID,
		NewCategoryName: req.NewCategoryName,
		SubmitterName:   req.SubmitterName,
		SubmitterEmail:  req.SubmitterEmail,
		Notes:           req.Notes,
	}
	for _, ex := range req.ExampleSentences {
		in.Examples = append(in.Examples, dictionary.SubmissionExample{
			SourceText:     ex.SourceText,
			TranslatedText: ex.TranslatedText,
		})
	}

	sub, err := p.store.Submit(in)
	if err != nil {
		respondError(c, err)
		return
	}

	if p.rdb != nil {
		_ = data.PublishSubmission(c, p.rdb, map[string]any{
			"id":         sub.ID,
			"sourceWord": sub.SourceWord,
			"targetWord": sub.TargetWord,
			"time":       sub.CreatedAt.Unix(),
		})
	}

	c.JSON(http.StatusCreated, gin.H{"id": sub.ID, "status": sub.Status})
}

func limitParam(c *gin.Context, def int) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func offsetParam(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("offset"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
