package llm

import (
	"sync"
	"unicode"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encMu    sync.Mutex
	encCache = make(map[string]*tiktoken.Tiktoken)
)

// EstimateTokens estimates the token count of text for the given model.
// It uses the model's BPE encoding when available and falls back to a
// character-class heuristic when the encoding cannot be loaded (e.g. an
// unknown model or no network access to fetch the BPE vocabulary).
func EstimateTokens(model, text string) int {
	if text == "" {
		return 0
	}
	if enc := encodingFor(model); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	return ApproxTokens(text)
}

func encodingFor(model string) *tiktoken.Tiktoken {
	encMu.Lock()
	defer encMu.Unlock()

	if enc, ok := encCache[model]; ok {
		return enc
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			encCache[model] = nil
			return nil
		}
	}
	encCache[model] = enc
	return enc
}

// ApproxTokens estimates token count without a BPE vocabulary.
// CJK characters count as one token each; other text averages four
// characters per token.
func ApproxTokens(text string) int {
	if text == "" {
		return 0
	}
	cjk, other := 0, 0
	for _, r := range text {
		if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) ||
			unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r) {
			cjk++
		} else {
			other++
		}
	}
	approx := cjk + (other+3)/4
	if approx < 1 {
		approx = 1
	}
	return approx
}
