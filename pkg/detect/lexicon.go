package detect

import "regexp"

// The lexicon is split into three scored groups plus street terms used for
// the context bonus. All patterns match against lowercased segment text.

// handStartPatterns signal the opening of a hand discussion ("I was dealt
// pocket kings", "the flop comes...", "let's break down this hand").
var handStartPatterns = []string{
	`(?:i|we|he|she|they|villain|hero|player)\s+(?:have|had|got dealt|was dealt|held|pick up)\s+(?:pocket|hole cards?)`,
	`(?:with|holding|dealt)\s+(?:pocket|ace|king|queen|jack|\d+)`,
	`(?:preflop|pre-flop).*(?:raise|call|fold|all.?in)`,
	`(?:flop|turn|river)\s+(?:comes?|brings?|is|was)`,
	`board\s+(?:comes?|is|was|reads?)`,
	`hand\s+(?:analysis|breakdown|review|discussion)`,
	`(?:let's|we'll|i'll)\s+(?:talk about|discuss|analyze|break down|look at)\s+(?:this|a|the)\s+hand`,
}

// cardPatterns match concrete card mentions: ranks, rank-of-suit, pocket
// pairs, suitedness, and spoken shorthand ("ace king suited").
var cardPatterns = []string{
	`\b(?:ace|king|queen|jack|ten|deuce)s?(?:\s+of\s+(?:hearts|diamonds|clubs|spades))?\b`,
	`\b(?:two|three|four|five|six|seven|eight|nine|\d)\s+of\s+(?:hearts|diamonds|clubs|spades)\b`,
	`pocket\s+(?:aces|kings|queens|jacks|tens|nines|eights|sevens|sixes|fives|fours|threes|twos|deuces|pairs?)`,
	`(?:suited|offsuit)\s+(?:ace|king|queen|jack|connectors?)`,
	`\b(?:ace|king|queen|jack|ten)[\s-](?:ace|king|queen|jack|ten)(?:\s+(?:suited|offsuit))?\b`,
}

// actionPatterns match betting-action narration with sizing or named lines.
var actionPatterns = []string{
	`(?:raises?|calls?|folds?|checks?|bets?|all.?in|shoves?|jams?)\s+(?:to\s+|for\s+)?\$?\d+`,
	`(?:three|3).?bet(?:s|ting)?`,
	`(?:four|4).?bet(?:s|ting)?`,
	`check.?raise`,
	`continuation\s+bet|c.?bet`,
}

// streetTerms drive the context bonus: a segment surrounded by street talk
// is likely inside a hand discussion even if it scores low on its own.
var streetTerms = []string{
	"preflop", "pre-flop", "flop", "turn", "river", "showdown",
}

// Lexicon holds the compiled term groups used by the detector
type Lexicon struct {
	handStart []*regexp.Regexp
	cards     []*regexp.Regexp
	actions   []*regexp.Regexp
	streets   []string
}

// NewLexicon compiles the default poker lexicon
func NewLexicon() *Lexicon {
	return &Lexicon{
		handStart: compileAll(handStartPatterns),
		cards:     compileAll(cardPatterns),
		actions:   compileAll(actionPatterns),
		streets:   streetTerms,
	}
}

func compileAll(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}
