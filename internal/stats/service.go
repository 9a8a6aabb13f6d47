package stats

import (
	"context"
	"fmt"
	"time"

	"instock_back_end/internal/models"
)

// DataSource fournit l'historique complet des évènements de stock d'un
// commerce, un StatItem par article. Jamais de données partielles : les
// totaux en dépendent.
type DataSource interface {
	FetchStatsData(ctx context.Context, businessID string) ([]models.StatItem, error)
}

// Service assemble les agrégats et les suggestions en une seule réponse.
// Le contrôle d'accès est fait en amont : le service ne revérifie jamais
// que le demandeur possède le commerce.
type Service struct {
	source DataSource
	now    func() time.Time
}

func NewService(source DataSource) *Service {
	return &Service{source: source, now: time.Now}
}

// NewServiceWithClock permet d'injecter une horloge fixe dans les tests.
func NewServiceWithClock(source DataSource, now func() time.Time) *Service {
	return &Service{source: source, now: now}
}

// GetStats calcule l'ensemble des statistiques d'un commerce. Un commerce
// sans article est une réponse valide (structures à zéro et sentinelle de
// suggestions), distincte d'un échec du magasin de données qui remonte en
// erreur. Les évènements illisibles sont collectés en diagnostics et le
// résultat reste au mieux.
func (s *Service) GetStats(ctx context.Context, businessID string) (*models.AllStats, []EventError, error) {
	items, err := s.source.FetchStatsData(ctx, businessID)
	if err != nil {
		return nil, nil, fmt.Errorf("récupération des données de stats: %w", err)
	}

	if len(items) == 0 {
		return &models.AllStats{
			OverallPerformance: newReasonMap(),
			CategoryBreakdown:  make(map[string]map[string]int),
			SalesByMonth:       make(map[int]map[string]int),
			DeductionsByMonth:  make(map[int]map[string]int),
			Suggestions:        NoSuggestions(),
		}, nil, nil
	}

	agg, diags := ComputeAggregates(items)
	suggestions, suggDiags := ComputeSuggestions(items, s.now())
	diags = append(diags, suggDiags...)

	return &models.AllStats{
		OverallPerformance: agg.OverallPerformance,
		CategoryBreakdown:  agg.CategoryBreakdown,
		SalesByMonth:       agg.SalesByMonth,
		DeductionsByMonth:  agg.DeductionsByMonth,
		Suggestions:        suggestions,
	}, diags, nil
}
