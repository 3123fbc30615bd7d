package report

import (
	"context"

	"go.uber.org/zap"

	"cognicare-go/internal/models"
)

// DocumentSource is the read side of the document store. Declared here
// so the report layer does not depend on the persistence package.
type DocumentSource interface {
	Get(ctx context.Context, collection, id string) (map[string]any, error)
}

// Service assembles the report screen's data: one DomainReport per
// domain with data, plus the overall assessment. Every domain is
// evaluated independently; a domain that cannot be read or whose
// document matches no known shape contributes zero records rather than
// failing the whole report.
type Service struct {
	docs DocumentSource
	log  *zap.Logger
}

func NewService(docs DocumentSource, log *zap.Logger) *Service {
	return &Service{docs: docs, log: log}
}

// DomainReports reads and folds all five domains. All reads complete
// before the result is returned, so callers never see a partial set
// presented as final.
func (s *Service) DomainReports(ctx context.Context, userID string) map[models.Domain]models.DomainReport {
	reports := make(map[models.Domain]models.DomainReport, len(models.AllDomains))
	for _, domain := range models.AllDomains {
		doc, err := s.docs.Get(ctx, domain.Collection(), userID)
		if err != nil {
			s.log.Error("Failed to read domain document, treating as empty",
				zap.String("userID", userID),
				zap.String("domain", string(domain)),
				zap.Error(err))
			continue
		}
		records := Normalize(domain, doc)
		if len(records) == 0 {
			continue
		}
		reports[domain] = BuildDomainReport(domain, records)
	}
	return reports
}

// OverallAssessment builds the cross-domain assessment, or nil when no
// domain has scored records.
func (s *Service) OverallAssessment(ctx context.Context, userID string) (*models.OverallAssessment, map[models.Domain]models.DomainReport) {
	reports := s.DomainReports(ctx, userID)
	return BuildOverallAssessment(reports), reports
}
