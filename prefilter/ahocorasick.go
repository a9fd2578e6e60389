package prefilter

import (
	"fmt"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/minire/literal"
)

// ahoCorasickPrefilter searches for many literals at once.
//
// Every needle is cut to the length of the shortest literal. With equal
// lengths the match that ends first is also the one that starts first, so
// the automaton reports the leftmost candidate whatever its match semantics.
type ahoCorasickPrefilter struct {
	auto    *ahocorasick.Automaton
	needles int
	width   int
}

func newAhoCorasickPrefilter(seq *literal.Seq) (Prefilter, error) {
	width := seq.MinLen()
	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes[:width])
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("prefilter: build automaton: %w", err)
	}
	return &ahoCorasickPrefilter{auto: auto, needles: seq.Len(), width: width}, nil
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoCorasickPrefilter) IsComplete() bool { return false }

func (p *ahoCorasickPrefilter) LiteralLen() int { return 0 }

func (p *ahoCorasickPrefilter) String() string {
	return fmt.Sprintf("aho-corasick(%d needles, width %d)", p.needles, p.width)
}
