package ml

import (
	"math"
	"reflect"
	"testing"
)

func TestPreprocessText(t *testing.T) {
	t.Run("lowercases and strips non-letters", func(t *testing.T) {
		got := preprocessText("MCDONALD'S #123", "McDonald's")

		if got != "mcdonald s mcdonald s" {
			t.Errorf("unexpected preprocessed text: %q", got)
		}
	})

	t.Run("collapses whitespace runs", func(t *testing.T) {
		got := preprocessText("ELECTRIC   BILL\tPAYMENT", "")

		if got != "electric bill payment" {
			t.Errorf("unexpected preprocessed text: %q", got)
		}
	})

	t.Run("merchant name is optional", func(t *testing.T) {
		got := preprocessText("UBER RIDE", "")

		if got != "uber ride" {
			t.Errorf("unexpected preprocessed text: %q", got)
		}
	})
}

func TestTfidfVectorizer(t *testing.T) {
	docs := []string{
		"starbucks coffee starbucks",
		"shell gas station",
		"electric bill payment",
		"netflix subscription",
	}

	t.Run("fit produces unigrams and bigrams", func(t *testing.T) {
		v := fitVectorizer(docs)

		hasUnigram := false
		hasBigram := false
		for _, term := range v.Vocabulary {
			if term == "starbucks" {
				hasUnigram = true
			}
			if term == "starbucks coffee" {
				hasBigram = true
			}
		}
		if !hasUnigram {
			t.Error("expected unigram 'starbucks' in vocabulary")
		}
		if !hasBigram {
			t.Error("expected bigram 'starbucks coffee' in vocabulary")
		}
	})

	t.Run("stop-words are excluded", func(t *testing.T) {
		v := fitVectorizer([]string{"the payment for the bill", "a payment"})

		for _, term := range v.Vocabulary {
			if term == "the" || term == "for" || term == "a" {
				t.Errorf("stop-word %q present in vocabulary", term)
			}
		}
	})

	t.Run("transform is L2 normalized", func(t *testing.T) {
		v := fitVectorizer(docs)
		vec := v.Transform("starbucks coffee")

		var norm float64
		for _, x := range vec {
			norm += x * x
		}
		if math.Abs(norm-1) > 1e-9 {
			t.Errorf("expected unit norm, got %v", math.Sqrt(norm))
		}
	})

	t.Run("unknown terms are ignored", func(t *testing.T) {
		v := fitVectorizer(docs)
		vec := v.Transform("completely unrelated words")

		for i, x := range vec {
			if x != 0 {
				t.Errorf("expected zero vector, got %v at index %d", x, i)
			}
		}
	})

	t.Run("fitting is deterministic", func(t *testing.T) {
		v1 := fitVectorizer(docs)
		v2 := fitVectorizer(docs)

		if !reflect.DeepEqual(v1.Vocabulary, v2.Vocabulary) {
			t.Error("vocabulary differs between identical fits")
		}
		if !reflect.DeepEqual(v1.IDF, v2.IDF) {
			t.Error("IDF weights differ between identical fits")
		}
	})

	t.Run("vocabulary is capped", func(t *testing.T) {
		v := fitVectorizer(docs)

		if len(v.Vocabulary) > maxVocabularySize {
			t.Errorf("vocabulary size %d exceeds cap %d", len(v.Vocabulary), maxVocabularySize)
		}
		if len(v.IDF) != len(v.Vocabulary) {
			t.Errorf("IDF length %d does not match vocabulary length %d", len(v.IDF), len(v.Vocabulary))
		}
	})
}
