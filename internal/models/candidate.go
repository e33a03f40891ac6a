package models

import (
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/talentstack/cvintake/internal/utils"
)

// Candidate is the structured record persisted for each parsed CV.
type Candidate struct {
	ID          string     `gorm:"type:varchar(50);primaryKey" json:"id"`
	FullName    string     `gorm:"type:varchar(500);not null" json:"fullName"`
	Position    string     `gorm:"type:varchar(500)" json:"position"`
	DateOfBirth *time.Time `gorm:"type:date" json:"dateOfBirth"`
	Nationality string     `gorm:"type:varchar(255)" json:"nationality"`
	Email       string     `gorm:"type:varchar(500);index" json:"email"`
	Phone       string     `gorm:"type:varchar(100)" json:"phone"`
	Address     string     `gorm:"type:varchar(1000)" json:"address"`
	Overview    string     `gorm:"type:text" json:"overview"`

	Skills             pq.StringArray         `gorm:"type:varchar(255)[]" json:"skills"`
	Education          EducationList          `gorm:"type:jsonb" json:"education"`
	WorkExperience     WorkExperienceList     `gorm:"type:jsonb" json:"workExperience"`
	Certifications     CertificationList      `gorm:"type:jsonb" json:"certifications"`
	Languages          LanguageList           `gorm:"type:jsonb" json:"languages"`
	MilitaryExperience MilitaryExperienceList `gorm:"type:jsonb" json:"militaryExperience"`

	Score int `gorm:"default:0;index" json:"score"`

	// Provenance
	SourceMessageID string `gorm:"type:varchar(255);index" json:"sourceMessageId"`
	SourceFilename  string `gorm:"type:varchar(500)" json:"sourceFilename"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`
}

// TableName overrides the table name for Candidate
func (Candidate) TableName() string {
	return "candidates"
}

func (c *Candidate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = utils.GenerateNanoIDWithPrefix("cand", 12)
	}
	c.CreatedAt = utils.Now()
	return nil
}

type Education struct {
	Degree       string     `json:"degree"`
	Institution  string     `json:"institution"`
	FieldOfStudy string     `json:"fieldOfStudy"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
}

type WorkExperience struct {
	JobTitle  string     `json:"jobTitle"`
	Company   string     `json:"company"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

type Certification struct {
	Name                string `json:"name"`
	IssuingOrganization string `json:"issuingOrganization"`
}

type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

type MilitaryExperience struct {
	Rank      string     `json:"rank"`
	Branch    string     `json:"branch"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Duties    []string   `json:"duties"`
}

// JSONB-backed collections

type EducationList []Education

func (l EducationList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *EducationList) Scan(value interface{}) error {
	return jsonScan(value, l)
}

type WorkExperienceList []WorkExperience

func (l WorkExperienceList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *WorkExperienceList) Scan(value interface{}) error {
	return jsonScan(value, l)
}

type CertificationList []Certification

func (l CertificationList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *CertificationList) Scan(value interface{}) error {
	return jsonScan(value, l)
}

type LanguageList []Language

func (l LanguageList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *LanguageList) Scan(value interface{}) error {
	return jsonScan(value, l)
}

type MilitaryExperienceList []MilitaryExperience

func (l MilitaryExperienceList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *MilitaryExperienceList) Scan(value interface{}) error {
	return jsonScan(value, l)
}
