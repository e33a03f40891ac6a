package repository

import (
	"gorm.io/gorm"

	"github.com/talentstack/cvintake/interfaces"
	"github.com/talentstack/cvintake/internal/models"
)

type Repositories struct {
	MessageRecordRepository interfaces.MessageRecordRepository
	CandidateRepository     interfaces.CandidateRepository
}

func InitRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		MessageRecordRepository: NewMessageRecordRepository(db),
		CandidateRepository:     NewCandidateRepository(db),
	}
}

func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.MessageRecord{},
		&models.Candidate{},
	)
}
