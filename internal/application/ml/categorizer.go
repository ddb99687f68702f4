package ml

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

const (
	// holdoutFraction is the share of samples held out, stratified by label,
	// for evaluating a freshly trained model.
	holdoutFraction = 0.2

	// untrainedConfidence is reported when no trained model is available.
	// The low value lets callers proceed while flagging the default.
	untrainedConfidence = 0.1
)

// TrainingReport summarizes one training run.
type TrainingReport struct {
	SampleCount  int     `json:"sample_count"`
	TrainCount   int     `json:"train_count"`
	HoldoutCount int     `json:"holdout_count"`
	Accuracy     float64 `json:"accuracy"`
}

// Categorizer assigns a category, sub-category and confidence to transaction
// descriptions. The trained model is published by reference: concurrent
// Predict calls share one immutable model with no locking, and Train swaps
// in a complete replacement atomically. In-flight predictions may finish
// against the previous model across a retrain.
type Categorizer struct {
	store adapter.ArtifactStore
	rules []CategoryRules
	model atomic.Pointer[model]
}

// NewCategorizer creates an untrained categorizer. Call LoadOrTrain to bring
// it into service.
func NewCategorizer(store adapter.ArtifactStore) *Categorizer {
	return &Categorizer{
		store: store,
		rules: DefaultSubcategoryRules(),
	}
}

// IsTrained reports whether a trained model is currently published.
func (c *Categorizer) IsTrained() bool {
	return c.model.Load() != nil
}

// LoadOrTrain restores the persisted artifact if one exists and is
// compatible; otherwise it trains a fresh model from the bootstrap dataset.
// A corrupt or incompatible artifact is logged and replaced, never fatal.
func (c *Categorizer) LoadOrTrain() error {
	if c.store != nil {
		blob, err := c.store.Load()
		if err != nil {
			slog.Warn("Failed to read model artifact, retraining", "error", err)
		} else if blob != nil {
			m, err := decodeModel(blob)
			if err == nil {
				c.model.Store(m)
				slog.Info("Loaded transaction categorization model",
					"classes", len(m.classes),
					"vocabulary", m.vectorizer.NumFeatures(),
				)
				return nil
			}
			slog.Warn("Incompatible model artifact, retraining from bootstrap data", "error", err)
		}
	}

	report, err := c.Train(nil)
	if err != nil {
		return fmt.Errorf("failed to train bootstrap model: %w", err)
	}
	slog.Info("Trained bootstrap categorization model", "accuracy", report.Accuracy)
	return nil
}

// Train fits a new model on the labeled samples (the bootstrap dataset when
// none are given), evaluates it on a stratified hold-out, persists the
// artifact and atomically publishes the new model.
func (c *Categorizer) Train(samples []entity.LabeledSample) (*TrainingReport, error) {
	if len(samples) == 0 {
		samples = BootstrapSamples()
	}

	docs := make([]string, len(samples))
	for i, s := range samples {
		docs[i] = preprocessText(s.Description, s.MerchantName)
	}

	vectorizer := fitVectorizer(docs)
	classes := collectClasses(samples)
	classIndex := make(map[entity.TransactionCategory]int, len(classes))
	for i, cl := range classes {
		classIndex[cl] = i
	}

	features := make([][]float64, len(samples))
	labels := make([]int, len(samples))
	for i, s := range samples {
		features[i] = appendAmountFeature(vectorizer.Transform(docs[i]), s.Amount)
		labels[i] = classIndex[s.Category]
	}

	rng := rand.New(rand.NewSource(randomSeed))
	trainIdx, holdoutIdx := stratifiedSplit(labels, len(classes), holdoutFraction, rng)

	f := fitForest(subset(features, trainIdx), subsetInts(labels, trainIdx), len(classes), rng)

	// Evaluate on the hold-out before publishing.
	correct := 0
	for _, i := range holdoutIdx {
		pred, _ := f.predict(features[i])
		if pred == labels[i] {
			correct++
		}
	}
	accuracy := 0.0
	if len(holdoutIdx) > 0 {
		accuracy = float64(correct) / float64(len(holdoutIdx))
	}

	m := &model{
		vectorizer: vectorizer,
		forest:     f,
		classes:    classes,
	}

	if c.store != nil {
		blob, err := encodeModel(m)
		if err != nil {
			return nil, err
		}
		if err := c.store.Save(blob); err != nil {
			return nil, fmt.Errorf("failed to persist model artifact: %w", err)
		}
	}

	c.model.Store(m)

	return &TrainingReport{
		SampleCount:  len(samples),
		TrainCount:   len(trainIdx),
		HoldoutCount: len(holdoutIdx),
		Accuracy:     accuracy,
	}, nil
}

// Predict categorizes one transaction description. Without a trained model
// it returns the documented low-confidence default instead of an error.
func (c *Categorizer) Predict(description, merchantName string, amount decimal.Decimal) entity.CategorizationResult {
	m := c.model.Load()
	if m == nil {
		return entity.CategorizationResult{
			Category:    entity.CategoryOtherExpense,
			Subcategory: "",
			Confidence:  untrainedConfidence,
		}
	}

	doc := preprocessText(description, merchantName)
	features := appendAmountFeature(m.vectorizer.Transform(doc), amount)

	best, probs := m.forest.predict(features)
	category := m.classes[best]

	return entity.CategorizationResult{
		Category:    category,
		Subcategory: resolveSubcategory(c.rules, category, description, merchantName),
		Confidence:  probs[best],
	}
}

// collectClasses returns the distinct labels in deterministic (sorted) order.
func collectClasses(samples []entity.LabeledSample) []entity.TransactionCategory {
	seen := make(map[entity.TransactionCategory]struct{})
	for _, s := range samples {
		seen[s.Category] = struct{}{}
	}
	classes := make([]entity.TransactionCategory, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	return classes
}

// appendAmountFeature concatenates the raw decimal amount as one extra
// feature dimension. The amount is deliberately not normalized.
func appendAmountFeature(vec []float64, amount decimal.Decimal) []float64 {
	f, _ := amount.Float64()
	return append(vec, f)
}

// stratifiedSplit partitions sample indices into train and hold-out sets,
// drawing the hold-out fraction from every class separately.
func stratifiedSplit(labels []int, numClasses int, fraction float64, rng *rand.Rand) (train, holdout []int) {
	byClass := make([][]int, numClasses)
	for i, l := range labels {
		byClass[l] = append(byClass[l], i)
	}

	for _, group := range byClass {
		rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})

		cut := int(float64(len(group)) * fraction)
		holdout = append(holdout, group[:cut]...)
		train = append(train, group[cut:]...)
	}

	return train, holdout
}

func subset(rows [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}

func subsetInts(values []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = values[j]
	}
	return out
}
