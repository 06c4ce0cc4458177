package data

import (
	"log"

	"github.com/slonskitech/slownik/src/api/types"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func MustMySQL(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Category{},
		&types.PartOfSpeech{},
		&types.DictionaryEntry{},
		&types.ExampleSentence{},
		&types.PublicSubmission{},
	)
}
