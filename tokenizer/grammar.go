package tokenizer

import "slices"

var (
	letter = class(setLetter)
	digit  = class(setDigit)

	// wordChunk is a letter run with single apostrophes between letters.
	wordChunk = seq(letter, star(seq(lit("'"), letter)))

	punctRun = plus(class(setPunct))

	number = seq(digit, star(alt(
		digit,
		seq(class(setMidNum), digit),
		wordChunk,
	)))

	// wordExt joins two runs with one hyphen, unless both sides are digits.
	wordExt = alt(
		seq(letter, lit("-"), alt(wordChunk, digit), star(alt(wordChunk, digit))),
		seq(digit, lit("-"), wordChunk, star(alt(wordChunk, digit))),
	)

	word = alt(
		seq(plus(alt(wordChunk, digit)), opt(wordExt)),
		wordExt,
	)

	scientific = seq(number, class(setExp), opt(class(setSign)), plus(alt(letter, digit)))

	tld = alt(
		lit("al"), lit("ad"), lit("am"), lit("at"), lit("az"), lit("by"), lit("be"), lit("ba"),
		lit("bg"), lit("hr"), lit("cy"), lit("cz"), lit("dk"), lit("ee"), lit("fo"), lit("fi"),
		lit("fr"), lit("ge"), lit("de"), lit("gi"), lit("gr"), lit("hu"), lit("is"), lit("ie"),
		lit("im"), lit("it"), lit("je"), lit("lv"), lit("li"), lit("lt"), lit("lu"), lit("mt"),
		lit("md"), lit("nl"), lit("no"), lit("pl"), lit("pt"), lit("ro"), lit("ru"), lit("es"),
		lit("se"), lit("ch"), lit("ua"), lit("uk"), lit("yu"), lit("jp"), lit("com"), lit("org"),
		lit("net"), lit("edu"), lit("gov"), lit("mil"), lit("biz"), lit("info"), lit("eu"),
	)

	uriDomain = plus(class(setURIDomain))
	uriPath   = plus(class(setURIPath))

	url = seq(
		opt(seq(plus(class(setSchemeChar)), lit("://"))),
		uriDomain,
		star(seq(lit("."), uriDomain)),
		lit("."), tld,
		opt(seq(lit(":"), plus(digit))),
		star(seq(lit("/"), opt(seq(uriPath, star(seq(lit("."), uriPath)))))),
	)

	// abbrev is single letters joined by periods, keeping a trailing period.
	abbrev = seq(letter, plus(seq(lit("."), letter)), opt(lit(".")))

	spaceRun = plus(class(setSpace))
)

type ruleKind int

const (
	ruleNone ruleKind = iota
	ruleWord
	ruleURL
	ruleAbbrev
	ruleSpace
	ruleSymbol
)

// rule is one alternative of the token grammar. follow, when set, is the
// class of symbols allowed to come right after the match; that symbol is
// counted when comparing match lengths but is not part of the token.
type rule struct {
	kind   ruleKind
	m      matcher
	follow func(symbol) bool
}

// rules are listed in priority order. Number, word and scientific notation
// compete within one rule.
var rules = []rule{
	{kind: ruleWord, m: alt(punctRun, number, word, scientific)},
	{kind: ruleURL, m: url, follow: func(c symbol) bool { return setURIFollow.has(c) }},
	{kind: ruleAbbrev, m: abbrev, follow: func(c symbol) bool { return !setWordish.has(c) }},
	{kind: ruleSpace, m: spaceRun},
}

// longest returns the kind and byte length of the token at the start of in,
// or ruleNone when the input is exhausted or starts with NUL.
func longest(in *input) (ruleKind, int) {
	c, w := in.at(0)
	if c == symEnd {
		return ruleNone, 0
	}

	// Any single symbol is a token of last resort.
	bestKind, bestEnd, bestScore := ruleSymbol, w, w
	start := []int{0}
	for _, r := range rules {
		for _, end := range slices.Backward(r.m(in, start)) {
			score := end
			if r.follow != nil {
				next, nw := in.at(end)
				if !r.follow(next) {
					continue
				}
				score += nw
			}
			if score > bestScore || (score == bestScore && r.kind < bestKind) {
				bestKind, bestEnd, bestScore = r.kind, end, score
			}
			break
		}
	}
	return bestKind, bestEnd
}
