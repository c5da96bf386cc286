package storage

import "github.com/lcalzada-xor/sentinel/internal/core/domain"

func toAlertModel(a domain.AlertRecord) AlertModel {
	return AlertModel{
		ID:          a.ID,
		GeneratedAt: a.GeneratedAt,
		Severity:    string(a.Severity),
		Title:       a.Title,
		RiskScore:   a.Analysis.RiskScore,
		AnomalyFlag: a.Analysis.AnomalyFlag,
		RelatedIP:   a.RelatedIP,
	}
}

func toAlertSummary(m AlertModel) domain.AlertSummary {
	return domain.AlertSummary{
		ID:          m.ID,
		GeneratedAt: m.GeneratedAt,
		Severity:    domain.Severity(m.Severity),
		Title:       m.Title,
		RiskScore:   m.RiskScore,
		AnomalyFlag: m.AnomalyFlag,
		RelatedIP:   m.RelatedIP,
	}
}
