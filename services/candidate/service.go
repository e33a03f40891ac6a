package candidate

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/talentstack/cvintake/dto"
	"github.com/talentstack/cvintake/interfaces"
	"github.com/talentstack/cvintake/internal/logger"
	"github.com/talentstack/cvintake/internal/models"
	"github.com/talentstack/cvintake/internal/tracing"
)

type candidateService struct {
	repository interfaces.CandidateRepository
	log        logger.Logger
}

func NewCandidateService(repository interfaces.CandidateRepository, log logger.Logger) interfaces.CandidateService {
	return &candidateService{
		repository: repository,
		log:        log,
	}
}

// ProcessDocument maps a parsed CV document onto a candidate record,
// scores it and persists it.
func (s *candidateService) ProcessDocument(ctx context.Context, doc *dto.CandidateDocument, sourceMessageID, sourceFilename string) (*models.Candidate, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "candidateService.ProcessDocument")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	candidate := mapDocument(doc)
	candidate.SourceMessageID = sourceMessageID
	candidate.SourceFilename = sourceFilename
	candidate.Score = scoreDocument(doc)

	if err := s.repository.Save(ctx, candidate); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return candidate, nil
}

func mapDocument(doc *dto.CandidateDocument) *models.Candidate {
	candidate := &models.Candidate{
		FullName:    doc.PersonalInfo.FullName,
		DateOfBirth: doc.PersonalInfo.DateOfBirth.TimePtr(),
		Nationality: doc.PersonalInfo.Nationality,
		Email:       doc.PersonalInfo.Contact.Email,
		Phone:       doc.PersonalInfo.Contact.Phone,
		Address:     doc.PersonalInfo.Contact.Address,
		Overview:    doc.Overview,
		Skills:      doc.Skills,
	}

	for _, e := range doc.Education {
		candidate.Education = append(candidate.Education, models.Education{
			Degree:       e.Degree,
			Institution:  e.Institution,
			FieldOfStudy: e.FieldOfStudy,
			StartDate:    e.StartDate.TimePtr(),
			EndDate:      e.EndDate.TimePtr(),
		})
	}

	for _, w := range doc.WorkExperience {
		candidate.WorkExperience = append(candidate.WorkExperience, models.WorkExperience{
			JobTitle:  w.JobTitle,
			Company:   w.Company,
			StartDate: w.StartDate.TimePtr(),
			EndDate:   w.EndDate.TimePtr(),
		})
	}

	for _, c := range doc.Certifications {
		candidate.Certifications = append(candidate.Certifications, models.Certification{
			Name:                c.Name,
			IssuingOrganization: c.IssuingOrganization,
		})
	}

	for _, l := range doc.Languages {
		candidate.Languages = append(candidate.Languages, models.Language{
			Language:    l.Language,
			Proficiency: l.Proficiency,
		})
	}

	for _, m := range doc.MilitaryExperience {
		candidate.MilitaryExperience = append(candidate.MilitaryExperience, models.MilitaryExperience{
			Rank:      m.Rank,
			Branch:    m.Branch,
			StartDate: m.StartDate.TimePtr(),
			EndDate:   m.EndDate.TimePtr(),
			Duties:    m.Duties,
		})
	}

	return candidate
}

// scoreDocument ranks a CV deterministically so re-parsing the same
// document yields the same score. Weights favor work experience and
// education over list padding.
func scoreDocument(doc *dto.CandidateDocument) int {
	score := 0
	score += capped(len(doc.WorkExperience)*10, 40)
	score += capped(len(doc.Education)*10, 20)
	score += capped(len(doc.Skills)*2, 20)
	score += capped(len(doc.Certifications)*5, 10)
	score += capped(len(doc.Languages)*5, 10)
	return score
}

func capped(value, max int) int {
	if value > max {
		return max
	}
	return value
}
