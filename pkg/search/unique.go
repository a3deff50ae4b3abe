package search

import (
	"github.com/bastiangx/lstrings/pkg/rank"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Unique drops every string whose text was already seen earlier in ranked.
// The kept entries stay in their original order.
func Unique(buf []byte, ranked []rank.Ranked) []rank.Ranked {
	seen := patricia.NewTrie()
	out := make([]rank.Ranked, 0, len(ranked))
	for _, r := range ranked {
		if seen.Insert(patricia.Prefix(r.Bytes(buf)), r.Start) {
			out = append(out, r)
		}
	}
	return out
}
