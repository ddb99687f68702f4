package ml

import "math/rand"

const (
	// numTrees is the size of the bagged ensemble.
	numTrees = 100

	// maxTreeDepth bounds every tree in the ensemble.
	maxTreeDepth = 10

	// randomSeed fixes the training randomness so identical training data
	// always produces an identical model.
	randomSeed = 42
)

// forest is a bagged ensemble of decision trees sharing one class index.
type forest struct {
	Trees      []decisionTree `json:"trees"`
	NumClasses int            `json:"num_classes"`
}

// fitForest trains the ensemble: each tree is grown on a bootstrap sample
// (drawn with replacement, same size as the training set) of the data.
// Trees are trained sequentially from a single seeded source so training is
// fully deterministic.
func fitForest(features [][]float64, labels []int, numClasses int, rng *rand.Rand) *forest {
	f := &forest{
		Trees:      make([]decisionTree, 0, numTrees),
		NumClasses: numClasses,
	}

	n := len(features)
	for t := 0; t < numTrees; t++ {
		sampleIdx := make([]int, n)
		for i := range sampleIdx {
			sampleIdx[i] = rng.Intn(n)
		}

		tree := fitTree(features, labels, numClasses, sampleIdx, maxTreeDepth, rng)
		f.Trees = append(f.Trees, *tree)
	}

	return f
}

// predictProba averages the leaf distributions of all trees.
func (f *forest) predictProba(features []float64) []float64 {
	probs := make([]float64, f.NumClasses)
	for i := range f.Trees {
		treeProbs := f.Trees[i].predictProba(features)
		for c, p := range treeProbs {
			probs[c] += p
		}
	}
	for c := range probs {
		probs[c] /= float64(len(f.Trees))
	}
	return probs
}

// predict returns the class index with the highest averaged probability;
// ties resolve to the lowest class index, keeping inference deterministic.
func (f *forest) predict(features []float64) (int, []float64) {
	probs := f.predictProba(features)
	best := 0
	for c := 1; c < len(probs); c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return best, probs
}
