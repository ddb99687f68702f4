package ml

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
)

// separableData builds a small two-class dataset split cleanly on feature 0.
func separableData() (features [][]float64, labels []int) {
	for i := 0; i < 20; i++ {
		features = append(features, []float64{0.1 + float64(i%5)*0.01, 1, 0})
		labels = append(labels, 0)
		features = append(features, []float64{0.9 + float64(i%5)*0.01, 0, 1})
		labels = append(labels, 1)
	}
	return features, labels
}

func TestForest(t *testing.T) {
	features, labels := separableData()

	t.Run("learns a separable dataset", func(t *testing.T) {
		f := fitForest(features, labels, 2, rand.New(rand.NewSource(randomSeed)))

		pred, _ := f.predict([]float64{0.12, 1, 0})
		if pred != 0 {
			t.Errorf("expected class 0, got %d", pred)
		}

		pred, _ = f.predict([]float64{0.95, 0, 1})
		if pred != 1 {
			t.Errorf("expected class 1, got %d", pred)
		}
	})

	t.Run("probabilities sum to one", func(t *testing.T) {
		f := fitForest(features, labels, 2, rand.New(rand.NewSource(randomSeed)))

		probs := f.predictProba([]float64{0.5, 0.5, 0.5})
		sum := 0.0
		for _, p := range probs {
			if p < 0 || p > 1 {
				t.Errorf("probability %v out of [0,1]", p)
			}
			sum += p
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("probabilities sum to %v, expected 1", sum)
		}
	})

	t.Run("training with the same seed is reproducible", func(t *testing.T) {
		f1 := fitForest(features, labels, 2, rand.New(rand.NewSource(randomSeed)))
		f2 := fitForest(features, labels, 2, rand.New(rand.NewSource(randomSeed)))

		if !reflect.DeepEqual(f1, f2) {
			t.Error("forests differ between identically seeded training runs")
		}
	})

	t.Run("ensemble size and depth respect the configuration", func(t *testing.T) {
		f := fitForest(features, labels, 2, rand.New(rand.NewSource(randomSeed)))

		if len(f.Trees) != numTrees {
			t.Errorf("expected %d trees, got %d", numTrees, len(f.Trees))
		}

		for ti := range f.Trees {
			if depth := treeDepth(&f.Trees[ti], 0); depth > maxTreeDepth+1 {
				t.Errorf("tree %d depth %d exceeds bound %d", ti, depth, maxTreeDepth+1)
			}
		}
	})
}

// treeDepth measures the depth of the subtree rooted at node i.
func treeDepth(tr *decisionTree, i int) int {
	node := tr.Nodes[i]
	if node.Left == -1 {
		return 1
	}
	left := treeDepth(tr, node.Left)
	right := treeDepth(tr, node.Right)
	if left > right {
		return left + 1
	}
	return right + 1
}
