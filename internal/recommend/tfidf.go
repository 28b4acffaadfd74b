// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

package recommend

import (
	"math"
	"strings"
	"unicode"
)

// SparseVector is an L2-normalized term-weight vector keyed by
// vocabulary index. A nil or empty map is the zero vector.
type SparseVector map[int]float64

// Dot returns the inner product of two sparse vectors. Since both sides
// are L2-normalized this is also their cosine similarity, and the zero
// vector yields 0 rather than NaN.
func (v SparseVector) Dot(other SparseVector) float64 {
	// Iterate the smaller map.
	if len(other) < len(v) {
		v, other = other, v
	}
	var sum float64
	for idx, w := range v {
		if ow, ok := other[idx]; ok {
			sum += w * ow
		}
	}
	return sum
}

// Vectorizer builds TF-IDF weight vectors over a fixed vocabulary
// discovered at fit time. Fitting is deterministic: the vocabulary and
// every document vector are a pure function of the input texts.
// A fitted Vectorizer is read-only and safe for concurrent use.
type Vectorizer struct {
	minTokenLength int

	vocab map[string]int
	terms []string
	idf   []float64
	docs  int
}

// NewVectorizer returns an unfitted vectorizer.
func NewVectorizer(minTokenLength int) *Vectorizer {
	if minTokenLength < 1 {
		minTokenLength = 1
	}
	return &Vectorizer{
		minTokenLength: minTokenLength,
		vocab:          make(map[string]int),
	}
}

// VocabularySize returns the number of distinct terms seen at fit time.
func (v *Vectorizer) VocabularySize() int {
	return len(v.terms)
}

// Fit builds the vocabulary and inverse-document-frequency table from
// the given documents, then returns one weight vector per document.
// IDF uses the smoothed form ln((1+n)/(1+df)) + 1 so that terms present
// in every document still carry non-zero weight, and every vector is
// L2-normalized. Documents that tokenize to nothing get the zero vector.
func (v *Vectorizer) Fit(documents []string) []SparseVector {
	v.vocab = make(map[string]int)
	v.terms = v.terms[:0]
	v.docs = len(documents)

	// First pass: vocabulary in first-seen order plus document frequency.
	tokenized := make([][]string, len(documents))
	df := make(map[string]int)
	for i, doc := range documents {
		tokens := v.tokenize(doc)
		tokenized[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := v.vocab[tok]; !ok {
				v.vocab[tok] = len(v.terms)
				v.terms = append(v.terms, tok)
			}
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				df[tok]++
			}
		}
	}

	v.idf = make([]float64, len(v.terms))
	for term, idx := range v.vocab {
		v.idf[idx] = math.Log(float64(1+v.docs)/float64(1+df[term])) + 1
	}

	vectors := make([]SparseVector, len(documents))
	for i, tokens := range tokenized {
		vectors[i] = v.weigh(tokens)
	}
	return vectors
}

// Transform embeds a text into the fitted vector space. Terms unseen at
// fit time are ignored; a text with no known terms yields the zero
// vector, never an error.
func (v *Vectorizer) Transform(text string) SparseVector {
	return v.weigh(v.tokenize(text))
}

// weigh turns a token list into an L2-normalized TF-IDF vector.
func (v *Vectorizer) weigh(tokens []string) SparseVector {
	vec := make(SparseVector)
	for _, tok := range tokens {
		idx, ok := v.vocab[tok]
		if !ok {
			continue
		}
		vec[idx] += v.idf[idx]
	}
	if len(vec) == 0 {
		return vec
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return vec
	}
	for idx, w := range vec {
		vec[idx] = w / norm
	}
	return vec
}

// tokenize lowercases the text, splits on non-alphanumeric runes, and
// drops stop words and tokens shorter than the configured minimum.
func (v *Vectorizer) tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < v.minTokenLength {
			continue
		}
		if _, ok := stopWords[f]; ok {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// stopWords is the English stop-word list applied during tokenization.
var stopWords = func() map[string]struct{} {
	words := []string{
		"a", "about", "above", "across", "after", "afterwards", "again",
		"against", "all", "almost", "alone", "along", "already", "also",
		"although", "always", "am", "among", "amongst", "an", "and",
		"another", "any", "anyhow", "anyone", "anything", "anyway",
		"anywhere", "are", "around", "as", "at", "back", "be", "became",
		"because", "become", "becomes", "becoming", "been", "before",
		"beforehand", "behind", "being", "below", "beside", "besides",
		"between", "beyond", "both", "but", "by", "can", "cannot",
		"could", "did", "do", "does", "doing", "done", "down", "during",
		"each", "either", "else", "elsewhere", "enough", "etc", "even",
		"ever", "every", "everyone", "everything", "everywhere", "except",
		"few", "first", "for", "former", "formerly", "from", "further",
		"had", "has", "have", "having", "he", "hence", "her", "here",
		"hereafter", "hereby", "herein", "hereupon", "hers", "herself",
		"him", "himself", "his", "how", "however", "i", "if", "in",
		"indeed", "into", "is", "it", "its", "itself", "last", "latter",
		"latterly", "least", "less", "many", "may", "me", "meanwhile",
		"might", "mine", "more", "moreover", "most", "mostly", "much",
		"must", "my", "myself", "namely", "neither", "never",
		"nevertheless", "next", "no", "nobody", "none", "noone", "nor",
		"not", "nothing", "now", "nowhere", "of", "off", "often", "on",
		"once", "one", "only", "onto", "or", "other", "others",
		"otherwise", "our", "ours", "ourselves", "out", "over", "own",
		"per", "perhaps", "please", "rather", "same", "seem", "seemed",
		"seeming", "seems", "several", "she", "should", "since", "so",
		"some", "somehow", "someone", "something", "sometime",
		"sometimes", "somewhere", "still", "such", "than", "that", "the",
		"their", "them", "themselves", "then", "thence", "there",
		"thereafter", "thereby", "therefore", "therein", "thereupon",
		"these", "they", "this", "those", "though", "through",
		"throughout", "thru", "thus", "to", "together", "too", "toward",
		"towards", "under", "until", "up", "upon", "us", "very", "via",
		"was", "we", "well", "were", "what", "whatever", "when",
		"whence", "whenever", "where", "whereafter", "whereas",
		"whereby", "wherein", "whereupon", "wherever", "whether",
		"which", "while", "whither", "who", "whoever", "whole", "whom",
		"whose", "why", "will", "with", "within", "without", "would",
		"yet", "you", "your", "yours", "yourself", "yourselves",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()
