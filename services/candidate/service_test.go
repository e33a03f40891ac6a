package candidate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentstack/cvintake/dto"
	"github.com/talentstack/cvintake/internal/logger"
	"github.com/talentstack/cvintake/internal/models"
)

type fakeCandidateRepository struct {
	saved []*models.Candidate
}

func (f *fakeCandidateRepository) Save(ctx context.Context, candidate *models.Candidate) error {
	f.saved = append(f.saved, candidate)
	return nil
}

func (f *fakeCandidateRepository) GetByID(ctx context.Context, id string) (*models.Candidate, error) {
	return nil, nil
}

func (f *fakeCandidateRepository) ListByScore(ctx context.Context) ([]*models.Candidate, error) {
	return f.saved, nil
}

func testLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{DevMode: true})
	appLogger.InitLogger()
	return appLogger
}

func sampleDocument() *dto.CandidateDocument {
	end := dto.NewCivilDate(2024, time.June, 30)
	return &dto.CandidateDocument{
		PersonalInfo: dto.PersonalInfo{
			FullName:    "Jan Kowalski",
			DateOfBirth: dto.NewCivilDate(1995, time.March, 12),
			Nationality: "Polish",
			Contact: dto.Contact{
				Email:   "jan@example.com",
				Phone:   "+48 600 000 000",
				Address: "Warszawa",
			},
		},
		Overview: "Backend engineer with infantry background.",
		Education: []dto.Education{
			{
				Degree:       "BSc",
				Institution:  "Politechnika Warszawska",
				FieldOfStudy: "Computer Science",
				StartDate:    dto.NewCivilDate(2014, time.October, 1),
				EndDate:      &end,
			},
		},
		WorkExperience: []dto.WorkExperience{
			{JobTitle: "Developer", Company: "Acme", StartDate: dto.NewCivilDate(2018, time.January, 1)},
			{JobTitle: "Senior Developer", Company: "Globex", StartDate: dto.NewCivilDate(2021, time.January, 1)},
		},
		Skills:         []string{"Go", "PostgreSQL", "Docker"},
		Certifications: []dto.Certification{{Name: "CKA", IssuingOrganization: "CNCF"}},
		Languages: []dto.Language{
			{Language: "Polish", Proficiency: "native"},
			{Language: "English", Proficiency: "C1"},
		},
		MilitaryExperience: []dto.MilitaryExperience{
			{
				Rank:      "Corporal",
				Branch:    "Land Forces",
				StartDate: dto.NewCivilDate(2015, time.July, 1),
				Duties:    []string{"logistics", "signals"},
			},
		},
	}
}

func TestProcessDocument_MapsAllFields(t *testing.T) {
	// Arrange
	repo := &fakeCandidateRepository{}
	service := NewCandidateService(repo, testLogger())

	// Act
	candidate, err := service.ProcessDocument(context.Background(), sampleDocument(), "msg-1", "cv.pdf")

	// Assert
	require.NoError(t, err)
	require.Len(t, repo.saved, 1)

	assert.Equal(t, "Jan Kowalski", candidate.FullName)
	require.NotNil(t, candidate.DateOfBirth)
	assert.Equal(t, 1995, candidate.DateOfBirth.Year())
	assert.Equal(t, "Polish", candidate.Nationality)
	assert.Equal(t, "jan@example.com", candidate.Email)
	assert.Equal(t, "+48 600 000 000", candidate.Phone)
	assert.Equal(t, "Warszawa", candidate.Address)
	assert.Equal(t, "Backend engineer with infantry background.", candidate.Overview)

	require.Len(t, candidate.Education, 1)
	assert.Equal(t, "Politechnika Warszawska", candidate.Education[0].Institution)
	require.NotNil(t, candidate.Education[0].EndDate)

	require.Len(t, candidate.WorkExperience, 2)
	assert.Equal(t, "Senior Developer", candidate.WorkExperience[1].JobTitle)
	assert.Nil(t, candidate.WorkExperience[0].EndDate)

	assert.Equal(t, []string{"Go", "PostgreSQL", "Docker"}, []string(candidate.Skills))
	require.Len(t, candidate.Certifications, 1)
	require.Len(t, candidate.Languages, 2)

	require.Len(t, candidate.MilitaryExperience, 1)
	assert.Equal(t, "Corporal", candidate.MilitaryExperience[0].Rank)
	assert.Equal(t, []string{"logistics", "signals"}, candidate.MilitaryExperience[0].Duties)

	assert.Equal(t, "msg-1", candidate.SourceMessageID)
	assert.Equal(t, "cv.pdf", candidate.SourceFilename)
}

func TestProcessDocument_ScoreIsDeterministic(t *testing.T) {
	repo := &fakeCandidateRepository{}
	service := NewCandidateService(repo, testLogger())

	first, err := service.ProcessDocument(context.Background(), sampleDocument(), "msg-1", "cv.pdf")
	require.NoError(t, err)
	second, err := service.ProcessDocument(context.Background(), sampleDocument(), "msg-2", "cv.pdf")
	require.NoError(t, err)

	assert.Equal(t, first.Score, second.Score)
	// 2 jobs (20) + 1 education (10) + 3 skills (6) + 1 cert (5) + 2 languages (10)
	assert.Equal(t, 51, first.Score)
}

func TestProcessDocument_ScoreCaps(t *testing.T) {
	doc := sampleDocument()
	for i := 0; i < 10; i++ {
		doc.WorkExperience = append(doc.WorkExperience, dto.WorkExperience{JobTitle: "Job", Company: "X"})
		doc.Skills = append(doc.Skills, "skill")
		doc.Certifications = append(doc.Certifications, dto.Certification{Name: "cert"})
	}

	repo := &fakeCandidateRepository{}
	service := NewCandidateService(repo, testLogger())

	candidate, err := service.ProcessDocument(context.Background(), doc, "msg-1", "cv.pdf")
	require.NoError(t, err)

	// 40 + 10 + 20 + 10 + 10, all component caps hit except education
	assert.Equal(t, 90, candidate.Score)
}

func TestProcessDocument_EmptyOptionalSections(t *testing.T) {
	doc := &dto.CandidateDocument{}
	doc.PersonalInfo.FullName = "Anna Nowak"
	doc.PersonalInfo.Contact.Email = "anna@example.com"

	repo := &fakeCandidateRepository{}
	service := NewCandidateService(repo, testLogger())

	candidate, err := service.ProcessDocument(context.Background(), doc, "msg-1", "cv.docx")
	require.NoError(t, err)

	assert.Equal(t, "Anna Nowak", candidate.FullName)
	assert.Nil(t, candidate.DateOfBirth)
	assert.Empty(t, candidate.Education)
	assert.Equal(t, 0, candidate.Score)
}
