package grading

import (
	"fmt"
	"strings"
)

// Result is the verdict for one answered question, plus enough diagnostic
// detail to explain which rule produced it.
type Result struct {
	IsCorrect bool   `json:"is_correct"`
	Method    string `json:"method"`
	Details   string `json:"details"`
}

// Match methods, one per strategy.
const (
	MethodDirectLetter = "direct-letter"
	MethodLetterPrefix = "letter-prefix"
	MethodOptionText   = "option-text-match"
	MethodKeyword      = "keyword-match"
	MethodExact        = "exact-match"
	MethodNone         = "none"
)

// answerKeywords is a fixed vocabulary of short answers that appear verbatim
// in upstream quiz data (programming terms the letter heuristics misread).
// For these the option text is compared by strict equality only.
var answerKeywords = map[string]struct{}{
	"SET":        {},
	"TUPLE":      {},
	"LIST":       {},
	"DICTIONARY": {},
	"DEF":        {},
	"IS":         {},
	"X":          {},
}

// Evaluate decides whether the selected option answers the question
// correctly. Quiz backends represent the correct answer inconsistently
// (bare letter, letter-prefixed text, literal option text), so strategies
// are tried in order from cheapest/most authoritative to loosest, and the
// first one that applies wins. Looser rules run only as fallback to avoid
// false positives; the precedence is deliberate and must not be reordered.
//
// Evaluate is pure: malformed input degrades to an incorrect verdict with
// Method "none", never a panic.
func Evaluate(selected, correctAnswer string, options []Option) Result {
	sel := strings.TrimSpace(selected)
	corr := strings.TrimSpace(correctAnswer)
	if sel == "" || corr == "" {
		return Result{Method: MethodNone, Details: "empty selection or correct answer"}
	}

	opts := NormalizeOptions(options)
	selUp := strings.ToUpper(sel)
	corrUp := strings.ToUpper(corr)

	// Strategy 1: both sides a single option letter. Authoritative either
	// way: when two bare letters disagree, no looser rule may overrule that.
	if isOptionLetter(selUp) && isOptionLetter(corrUp) {
		if selUp == corrUp {
			return Result{
				IsCorrect: true,
				Method:    MethodDirectLetter,
				Details:   fmt.Sprintf("selected letter %s equals correct letter %s", selUp, corrUp),
			}
		}
		return Result{
			Method:  MethodDirectLetter,
			Details: fmt.Sprintf("selected letter %s does not match correct letter %s", selUp, corrUp),
		}
	}

	// Strategy 2: correct answer written as "A) some text"; the selected
	// letter must be followed by a delimiter, not another letter.
	if isOptionLetter(selUp) && strings.HasPrefix(corrUp, selUp) &&
		len(corrUp) > 1 && !isUpperAlpha(corrUp[1]) {
		return Result{
			IsCorrect: true,
			Method:    MethodLetterPrefix,
			Details:   fmt.Sprintf("correct answer %q starts with selected letter %s", corr, selUp),
		}
	}

	// Map the selected letter to its option, if possible. Strategies 3 and 4
	// both need it.
	optText := ""
	if isOptionLetter(selUp) {
		if idx := int(selUp[0] - 'A'); idx < len(opts) {
			optText = NormalizeText(opts[idx].Text)
		}
	}

	// Strategy 3: correct answer stores the literal text of the right
	// option. Position-derived: the selected letter indexes the options
	// list. Known keywords are deferred to strategy 4, which compares them
	// strictly (substring matching on terms like "IS" is too loose).
	if optText != "" {
		if _, kw := answerKeywords[stripQuotes(corrUp)]; !kw {
			if optText == corrUp || strings.Contains(optText, corrUp) || strings.Contains(corrUp, optText) {
				return Result{
					IsCorrect: true,
					Method:    MethodOptionText,
					Details:   fmt.Sprintf("option text %q matches correct answer %q", optText, corr),
				}
			}
		}
	}

	// Strategy 4: fixed keyword vocabulary, strict equality against the
	// selected option's normalized text.
	if kw := stripQuotes(corrUp); optText != "" {
		if _, ok := answerKeywords[kw]; ok && optText == kw {
			return Result{
				IsCorrect: true,
				Method:    MethodKeyword,
				Details:   fmt.Sprintf("option text equals keyword answer %q", kw),
			}
		}
	}

	// Strategy 5: the selection itself may already be full option text.
	if strings.EqualFold(sel, corr) {
		return Result{
			IsCorrect: true,
			Method:    MethodExact,
			Details:   fmt.Sprintf("selection %q equals correct answer %q", sel, corr),
		}
	}

	return Result{
		Method:  MethodNone,
		Details: fmt.Sprintf("no strategy matched selection %q against correct answer %q", sel, corr),
	}
}
