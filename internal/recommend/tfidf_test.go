// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

package recommend

import (
	"math"
	"reflect"
	"testing"
)

func TestVectorizerFitIsDeterministic(t *testing.T) {
	docs := []string{
		"machine learning and data structures",
		"operating systems design",
		"machine learning theory",
	}

	v1 := NewVectorizer(2)
	vecs1 := v1.Fit(docs)
	v2 := NewVectorizer(2)
	vecs2 := v2.Fit(docs)

	if !reflect.DeepEqual(vecs1, vecs2) {
		t.Error("fitting the same documents twice produced different vectors")
	}
	if v1.VocabularySize() != v2.VocabularySize() {
		t.Errorf("vocabulary sizes differ: %d vs %d", v1.VocabularySize(), v2.VocabularySize())
	}
}

func TestVectorizerVectorsAreNormalized(t *testing.T) {
	v := NewVectorizer(2)
	vecs := v.Fit([]string{
		"algorithms and complexity",
		"databases and storage systems",
	})

	for i, vec := range vecs {
		var norm float64
		for _, w := range vec {
			norm += w * w
		}
		if math.Abs(math.Sqrt(norm)-1.0) > 1e-9 {
			t.Errorf("document %d: norm = %f, want 1.0", i, math.Sqrt(norm))
		}
	}
}

func TestVectorizerStopWordsRemoved(t *testing.T) {
	v := NewVectorizer(2)
	v.Fit([]string{"the quick brown fox and the lazy dog"})

	for _, term := range []string{"the", "and"} {
		if _, ok := v.vocab[term]; ok {
			t.Errorf("stop word %q should not be in vocabulary", term)
		}
	}
	for _, term := range []string{"quick", "brown", "fox", "lazy", "dog"} {
		if _, ok := v.vocab[term]; !ok {
			t.Errorf("term %q missing from vocabulary", term)
		}
	}
}

func TestVectorizerShortTokensDropped(t *testing.T) {
	v := NewVectorizer(2)
	v.Fit([]string{"c programming x y"})

	if _, ok := v.vocab["c"]; ok {
		t.Error("single-character token should be dropped")
	}
	if _, ok := v.vocab["programming"]; !ok {
		t.Error("token \"programming\" missing from vocabulary")
	}
}

func TestVectorizerEmptyDocumentsYieldEmptyVocabulary(t *testing.T) {
	v := NewVectorizer(2)
	vecs := v.Fit([]string{"", "", ""})

	if v.VocabularySize() != 0 {
		t.Errorf("vocabulary size = %d, want 0", v.VocabularySize())
	}
	for i, vec := range vecs {
		if len(vec) != 0 {
			t.Errorf("document %d: expected zero vector, got %v", i, vec)
		}
	}
}

func TestTransformIgnoresUnseenTerms(t *testing.T) {
	v := NewVectorizer(2)
	v.Fit([]string{"compilers parsing"})

	vec := v.Transform("quantum chromodynamics")
	if len(vec) != 0 {
		t.Errorf("expected zero vector for fully unseen query, got %v", vec)
	}
}

func TestDotZeroVectorIsZero(t *testing.T) {
	v := NewVectorizer(2)
	vecs := v.Fit([]string{"graph theory"})

	zero := SparseVector{}
	if got := zero.Dot(vecs[0]); got != 0 {
		t.Errorf("zero vector dot product = %f, want 0", got)
	}
	if got := vecs[0].Dot(nil); got != 0 {
		t.Errorf("dot with nil = %f, want 0", got)
	}
}

func TestDotIdenticalDocumentsScoreOne(t *testing.T) {
	v := NewVectorizer(2)
	vecs := v.Fit([]string{"distributed consensus protocols", "distributed consensus protocols"})

	if got := vecs[0].Dot(vecs[1]); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("identical documents similarity = %f, want 1.0", got)
	}
}

func TestIDFWeightsRarerTermsHigher(t *testing.T) {
	v := NewVectorizer(2)
	v.Fit([]string{
		"networks security",
		"networks routing",
		"networks congestion",
	})

	shared := v.idf[v.vocab["networks"]]
	rare := v.idf[v.vocab["security"]]
	if rare <= shared {
		t.Errorf("rare term idf %f should exceed common term idf %f", rare, shared)
	}
}
