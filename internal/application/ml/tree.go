package ml

import (
	"math"
	"math/rand"
	"sort"
)

// treeNode is one node of a serialized decision tree. Leaves have Left == -1
// and carry the class-probability distribution of their training samples.
type treeNode struct {
	Feature   int       `json:"f"`
	Threshold float64   `json:"t"`
	Left      int       `json:"l"`
	Right     int       `json:"r"`
	Probs     []float64 `json:"p,omitempty"`
}

// decisionTree is a fitted classification tree over dense feature vectors.
type decisionTree struct {
	Nodes []treeNode `json:"nodes"`
}

// predictProba walks the tree and returns the leaf's class distribution.
func (t *decisionTree) predictProba(features []float64) []float64 {
	i := 0
	for {
		node := t.Nodes[i]
		if node.Left == -1 {
			return node.Probs
		}
		if features[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}

// treeBuilder grows a single tree with gini splits over a random feature
// subset per node.
type treeBuilder struct {
	features   [][]float64
	labels     []int
	numClasses int
	maxDepth   int
	minSplit   int
	numTry     int // features considered per split
	rng        *rand.Rand

	nodes []treeNode
}

// fitTree grows a depth-bounded classification tree on the given sample
// indices. numTry features are drawn per node, which is what makes the
// bagged ensemble more than repeated copies of one tree.
func fitTree(features [][]float64, labels []int, numClasses int, sampleIdx []int, maxDepth int, rng *rand.Rand) *decisionTree {
	numFeatures := 0
	if len(features) > 0 {
		numFeatures = len(features[0])
	}
	numTry := int(math.Sqrt(float64(numFeatures)))
	if numTry < 1 {
		numTry = 1
	}

	b := &treeBuilder{
		features:   features,
		labels:     labels,
		numClasses: numClasses,
		maxDepth:   maxDepth,
		minSplit:   2,
		numTry:     numTry,
		rng:        rng,
	}

	b.grow(sampleIdx, 0)
	return &decisionTree{Nodes: b.nodes}
}

// grow appends the subtree for the given samples and returns its node index.
func (b *treeBuilder) grow(sampleIdx []int, depth int) int {
	counts := make([]float64, b.numClasses)
	for _, i := range sampleIdx {
		counts[b.labels[i]]++
	}

	if depth >= b.maxDepth || len(sampleIdx) < b.minSplit || isPure(counts) {
		return b.leaf(counts)
	}

	feature, threshold, ok := b.bestSplit(sampleIdx)
	if !ok {
		return b.leaf(counts)
	}

	var left, right []int
	for _, i := range sampleIdx {
		if b.features[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return b.leaf(counts)
	}

	nodeIdx := len(b.nodes)
	b.nodes = append(b.nodes, treeNode{Feature: feature, Threshold: threshold})
	leftIdx := b.grow(left, depth+1)
	rightIdx := b.grow(right, depth+1)
	b.nodes[nodeIdx].Left = leftIdx
	b.nodes[nodeIdx].Right = rightIdx
	return nodeIdx
}

// leaf appends a leaf node holding the normalized class distribution.
func (b *treeBuilder) leaf(counts []float64) int {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	probs := make([]float64, len(counts))
	if total > 0 {
		for i, c := range counts {
			probs[i] = c / total
		}
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, treeNode{Left: -1, Right: -1, Probs: probs})
	return idx
}

// bestSplit searches a random feature subset for the split minimizing the
// weighted gini impurity of the children.
func (b *treeBuilder) bestSplit(sampleIdx []int) (feature int, threshold float64, ok bool) {
	numFeatures := len(b.features[0])
	candidates := b.rng.Perm(numFeatures)[:b.numTry]

	bestGini := math.Inf(1)

	for _, f := range candidates {
		values := make([]float64, 0, len(sampleIdx))
		for _, i := range sampleIdx {
			values = append(values, b.features[i][f])
		}
		sort.Float64s(values)

		for vi := 0; vi+1 < len(values); vi++ {
			if values[vi] == values[vi+1] {
				continue
			}
			thr := (values[vi] + values[vi+1]) / 2

			gini := b.splitGini(sampleIdx, f, thr)
			if gini < bestGini {
				bestGini = gini
				feature = f
				threshold = thr
				ok = true
			}
		}
	}

	return feature, threshold, ok
}

// splitGini computes the sample-weighted gini impurity of the two children
// induced by feature <= threshold.
func (b *treeBuilder) splitGini(sampleIdx []int, feature int, threshold float64) float64 {
	leftCounts := make([]float64, b.numClasses)
	rightCounts := make([]float64, b.numClasses)
	var nLeft, nRight float64

	for _, i := range sampleIdx {
		if b.features[i][feature] <= threshold {
			leftCounts[b.labels[i]]++
			nLeft++
		} else {
			rightCounts[b.labels[i]]++
			nRight++
		}
	}

	total := nLeft + nRight
	return (nLeft/total)*gini(leftCounts, nLeft) + (nRight/total)*gini(rightCounts, nRight)
}

// gini computes the impurity of a class-count vector.
func gini(counts []float64, total float64) float64 {
	if total == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := c / total
		g -= p * p
	}
	return g
}

// isPure reports whether all samples share one class.
func isPure(counts []float64) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}
