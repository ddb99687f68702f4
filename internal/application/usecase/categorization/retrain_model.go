package categorization

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-assistant/backend/internal/application/ml"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// TrainingSampleRepository supplies labeled samples for retraining, taken
// from transactions that already carry a category.
type TrainingSampleRepository interface {
	GetLabeledSamples(ctx context.Context) ([]entity.LabeledSample, error)
}

// RetrainModelOutput represents the output of retraining the model.
type RetrainModelOutput struct {
	SampleCount  int     `json:"sample_count"`
	TrainCount   int     `json:"train_count"`
	HoldoutCount int     `json:"holdout_count"`
	Accuracy     float64 `json:"accuracy"`
}

// RetrainModelUseCase handles retraining the categorization model from the
// ledger's categorized transactions. With no stored samples the categorizer
// falls back to its bootstrap dataset.
type RetrainModelUseCase struct {
	categorizer *ml.Categorizer
	sampleRepo  TrainingSampleRepository
}

// NewRetrainModelUseCase creates a new RetrainModelUseCase instance. The
// sample repository may be nil; retraining then always uses the bootstrap
// dataset.
func NewRetrainModelUseCase(
	categorizer *ml.Categorizer,
	sampleRepo TrainingSampleRepository,
) *RetrainModelUseCase {
	return &RetrainModelUseCase{
		categorizer: categorizer,
		sampleRepo:  sampleRepo,
	}
}

// Execute gathers training samples and retrains the model. The previous
// model stays published until the replacement is ready.
func (uc *RetrainModelUseCase) Execute(ctx context.Context) (*RetrainModelOutput, error) {
	var samples []entity.LabeledSample

	if uc.sampleRepo != nil {
		var err error
		samples, err = uc.sampleRepo.GetLabeledSamples(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get training samples: %w", err)
		}
	}

	report, err := uc.categorizer.Train(samples)
	if err != nil {
		return nil, fmt.Errorf("failed to retrain model: %w", err)
	}

	slog.Info("Retrained categorization model",
		"samples", report.SampleCount,
		"accuracy", report.Accuracy,
	)

	return &RetrainModelOutput{
		SampleCount:  report.SampleCount,
		TrainCount:   report.TrainCount,
		HoldoutCount: report.HoldoutCount,
		Accuracy:     report.Accuracy,
	}, nil
}
