package ml

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/domain/entity"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
)

// memoryArtifactStore keeps the artifact blob in memory for tests.
type memoryArtifactStore struct {
	blob    []byte
	loadErr error
	saves   int
}

func (s *memoryArtifactStore) Save(blob []byte) error {
	s.blob = blob
	s.saves++
	return nil
}

func (s *memoryArtifactStore) Load() ([]byte, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.blob, nil
}

func TestCategorizerPredict(t *testing.T) {
	t.Run("untrained categorizer returns the low-confidence default", func(t *testing.T) {
		c := NewCategorizer(nil)

		result := c.Predict("STARBUCKS COFFEE", "Starbucks", decimal.RequireFromString("5.25"))

		if result.Category != entity.CategoryOtherExpense {
			t.Errorf("expected %s, got %s", entity.CategoryOtherExpense, result.Category)
		}
		if result.Subcategory != "" {
			t.Errorf("expected empty subcategory, got %q", result.Subcategory)
		}
		if result.Confidence != untrainedConfidence {
			t.Errorf("expected confidence %v, got %v", untrainedConfidence, result.Confidence)
		}
	})

	t.Run("bootstrap model recognizes seed merchants", func(t *testing.T) {
		c := NewCategorizer(nil)
		if _, err := c.Train(nil); err != nil {
			t.Fatalf("unexpected training error: %v", err)
		}

		result := c.Predict("STARBUCKS COFFEE", "Starbucks", decimal.RequireFromString("5.25"))

		if result.Category != entity.CategoryFoodDining {
			t.Errorf("expected %s, got %s", entity.CategoryFoodDining, result.Category)
		}
		if result.Subcategory != "coffee" {
			t.Errorf("expected subcategory coffee, got %q", result.Subcategory)
		}
		if result.Confidence < 0 || result.Confidence > 1 {
			t.Errorf("confidence %v out of [0,1]", result.Confidence)
		}
	})

	t.Run("subcategory comes only from the predicted category's rules", func(t *testing.T) {
		c := NewCategorizer(nil)
		if _, err := c.Train(nil); err != nil {
			t.Fatalf("unexpected training error: %v", err)
		}

		// "gas" is a transportation keyword, so a shopping prediction must
		// not pick it up.
		result := c.Predict("SHELL GAS STATION", "Shell", decimal.RequireFromString("35.00"))

		if result.Category == entity.CategoryShopping && result.Subcategory == "gas" {
			t.Error("subcategory resolved from a foreign category's rules")
		}
		if result.Category == entity.CategoryTransportation && result.Subcategory != "gas" {
			t.Errorf("expected subcategory gas, got %q", result.Subcategory)
		}
	})
}

func TestCategorizerTrain(t *testing.T) {
	t.Run("training reports a stratified hold-out", func(t *testing.T) {
		c := NewCategorizer(nil)

		report, err := c.Train(nil)
		if err != nil {
			t.Fatalf("unexpected training error: %v", err)
		}

		if report.SampleCount != len(BootstrapSamples()) {
			t.Errorf("expected %d samples, got %d", len(BootstrapSamples()), report.SampleCount)
		}
		if report.TrainCount+report.HoldoutCount != report.SampleCount {
			t.Errorf("train %d + holdout %d does not cover %d samples",
				report.TrainCount, report.HoldoutCount, report.SampleCount)
		}
		if report.HoldoutCount == 0 {
			t.Error("expected a non-empty hold-out")
		}
		if report.Accuracy < 0 || report.Accuracy > 1 {
			t.Errorf("accuracy %v out of [0,1]", report.Accuracy)
		}
	})

	t.Run("training persists the artifact", func(t *testing.T) {
		store := &memoryArtifactStore{}
		c := NewCategorizer(store)

		if _, err := c.Train(nil); err != nil {
			t.Fatalf("unexpected training error: %v", err)
		}

		if store.saves != 1 {
			t.Errorf("expected one artifact save, got %d", store.saves)
		}
		if len(store.blob) == 0 {
			t.Error("expected a non-empty artifact blob")
		}
	})

	t.Run("retraining swaps the model without unpublishing", func(t *testing.T) {
		c := NewCategorizer(nil)
		if _, err := c.Train(nil); err != nil {
			t.Fatalf("unexpected training error: %v", err)
		}
		first := c.model.Load()

		if _, err := c.Train(nil); err != nil {
			t.Fatalf("unexpected retraining error: %v", err)
		}

		if !c.IsTrained() {
			t.Error("categorizer lost its model across a retrain")
		}
		if c.model.Load() == first {
			t.Error("expected a fresh model after retraining")
		}
	})
}

func TestCategorizerLoadOrTrain(t *testing.T) {
	t.Run("restores a previously saved artifact", func(t *testing.T) {
		store := &memoryArtifactStore{}
		trainer := NewCategorizer(store)
		if _, err := trainer.Train(nil); err != nil {
			t.Fatalf("unexpected training error: %v", err)
		}

		restored := NewCategorizer(store)
		if err := restored.LoadOrTrain(); err != nil {
			t.Fatalf("unexpected load error: %v", err)
		}

		if store.saves != 1 {
			t.Errorf("expected no retrain on a valid artifact, got %d saves", store.saves)
		}
		result := restored.Predict("NETFLIX SUBSCRIPTION", "Netflix", decimal.RequireFromString("15.99"))
		if result.Category != entity.CategoryEntertainment {
			t.Errorf("expected %s, got %s", entity.CategoryEntertainment, result.Category)
		}
	})

	t.Run("corrupt artifact falls back to retraining", func(t *testing.T) {
		store := &memoryArtifactStore{blob: []byte("not json")}
		c := NewCategorizer(store)

		if err := c.LoadOrTrain(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !c.IsTrained() {
			t.Error("expected a retrained model after a corrupt artifact")
		}
		if store.saves != 1 {
			t.Errorf("expected the retrained artifact to be saved, got %d saves", store.saves)
		}
	})

	t.Run("unreadable store falls back to retraining", func(t *testing.T) {
		store := &memoryArtifactStore{loadErr: errors.New("disk failure")}
		c := NewCategorizer(store)

		if err := c.LoadOrTrain(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !c.IsTrained() {
			t.Error("expected a retrained model after a load failure")
		}
	})

	t.Run("missing artifact trains from bootstrap data", func(t *testing.T) {
		c := NewCategorizer(&memoryArtifactStore{})

		if err := c.LoadOrTrain(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !c.IsTrained() {
			t.Error("expected a bootstrap-trained model")
		}
	})
}

func TestArtifactCodec(t *testing.T) {
	t.Run("round-trips a trained model", func(t *testing.T) {
		c := NewCategorizer(nil)
		if _, err := c.Train(nil); err != nil {
			t.Fatalf("unexpected training error: %v", err)
		}
		m := c.model.Load()

		blob, err := encodeModel(m)
		if err != nil {
			t.Fatalf("unexpected encode error: %v", err)
		}
		decoded, err := decodeModel(blob)
		if err != nil {
			t.Fatalf("unexpected decode error: %v", err)
		}

		if len(decoded.classes) != len(m.classes) {
			t.Errorf("expected %d classes, got %d", len(m.classes), len(decoded.classes))
		}
		if decoded.vectorizer.NumFeatures() != m.vectorizer.NumFeatures() {
			t.Errorf("vocabulary size changed across the round-trip")
		}
		if len(decoded.forest.Trees) != len(m.forest.Trees) {
			t.Errorf("ensemble size changed across the round-trip")
		}
	})

	t.Run("rejects an unsupported schema version", func(t *testing.T) {
		_, err := decodeModel([]byte(`{"schema_version":99,"classes":["x"]}`))

		if !errors.Is(err, domainerror.ErrIncompatibleArtifact) {
			t.Errorf("expected ErrIncompatibleArtifact, got %v", err)
		}
	})

	t.Run("rejects a blob with missing sections", func(t *testing.T) {
		_, err := decodeModel([]byte(`{"schema_version":1,"classes":["x"]}`))

		if !errors.Is(err, domainerror.ErrIncompatibleArtifact) {
			t.Errorf("expected ErrIncompatibleArtifact, got %v", err)
		}
	})
}
