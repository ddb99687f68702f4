package ml

import (
	"math"
	"sort"
	"strings"
)

// maxVocabularySize bounds the TF-IDF vocabulary to the most frequent terms.
const maxVocabularySize = 1000

// tfidfVectorizer turns preprocessed text into fixed-size TF-IDF feature
// vectors over a unigram+bigram vocabulary. Once fitted it is immutable and
// safe for concurrent Transform calls.
type tfidfVectorizer struct {
	// Vocabulary holds the selected terms in index order.
	Vocabulary []string `json:"vocabulary"`
	// IDF holds the inverse-document-frequency weight per vocabulary index.
	IDF []float64 `json:"idf"`

	index map[string]int
}

// tokenize splits a preprocessed document into unigram tokens, dropping
// stop-words and single-character tokens.
func tokenize(doc string) []string {
	fields := strings.Fields(doc)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || isStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// termsOf returns the unigrams and bigrams of a document.
func termsOf(doc string) []string {
	tokens := tokenize(doc)
	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// fitVectorizer builds a vectorizer over the document corpus: it selects the
// maxVocabularySize most frequent terms (ties broken alphabetically, so
// fitting is deterministic) and computes smoothed IDF weights.
func fitVectorizer(docs []string) *tfidfVectorizer {
	termCounts := make(map[string]int)
	docFreq := make(map[string]int)

	for _, doc := range docs {
		terms := termsOf(doc)
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			termCounts[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	candidates := make([]string, 0, len(termCounts))
	for term := range termCounts {
		candidates = append(candidates, term)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if termCounts[candidates[i]] != termCounts[candidates[j]] {
			return termCounts[candidates[i]] > termCounts[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})

	if len(candidates) > maxVocabularySize {
		candidates = candidates[:maxVocabularySize]
	}
	sort.Strings(candidates)

	nDocs := float64(len(docs))
	idf := make([]float64, len(candidates))
	for i, term := range candidates {
		idf[i] = math.Log((1+nDocs)/(1+float64(docFreq[term]))) + 1
	}

	v := &tfidfVectorizer{Vocabulary: candidates, IDF: idf}
	v.buildIndex()
	return v
}

// buildIndex rebuilds the term-to-index lookup, needed after decoding a
// persisted vectorizer.
func (v *tfidfVectorizer) buildIndex() {
	v.index = make(map[string]int, len(v.Vocabulary))
	for i, term := range v.Vocabulary {
		v.index[term] = i
	}
}

// Transform converts one document into an L2-normalized TF-IDF vector of
// length len(Vocabulary). Unknown terms are ignored.
func (v *tfidfVectorizer) Transform(doc string) []float64 {
	vec := make([]float64, len(v.Vocabulary))

	for _, term := range termsOf(doc) {
		if i, ok := v.index[term]; ok {
			vec[i] += v.IDF[i]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}

	return vec
}

// NumFeatures returns the vector length produced by Transform.
func (v *tfidfVectorizer) NumFeatures() int {
	return len(v.Vocabulary)
}
