package worker

import "strings"

// Verdict is the outcome of classifying a piece of worker stderr text.
type Verdict int

const (
	// VerdictSuppressed marks benign diagnostics (warnings, progress
	// chatter) that are logged but never surfaced to the user.
	VerdictSuppressed Verdict = iota

	// VerdictFatal marks stderr text the user must see: the worker hit
	// an error that will affect results.
	VerdictFatal
)

// Rule maps a substring pattern to a verdict.
type Rule struct {
	Pattern string
	Verdict Verdict
}

// Classifier decides whether worker stderr text is user-visible.
// Rules are checked in order and the first match wins; unmatched text is
// suppressed. Classification is pure string matching, independent of the
// stream handling, so rule sets can be tested in isolation.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds a classifier from an ordered rule list.
func NewClassifier(rules ...Rule) *Classifier {
	return &Classifier{rules: rules}
}

// DefaultClassifier recognizes the Python error markers that indicate a
// run has genuinely failed, while keeping the interpreter's warning
// categories quiet. Warning rules precede error rules so that a warning
// line mentioning an error class name stays suppressed.
func DefaultClassifier() *Classifier {
	return NewClassifier(
		Rule{Pattern: "DeprecationWarning", Verdict: VerdictSuppressed},
		Rule{Pattern: "PendingDeprecationWarning", Verdict: VerdictSuppressed},
		Rule{Pattern: "FutureWarning", Verdict: VerdictSuppressed},
		Rule{Pattern: "UserWarning", Verdict: VerdictSuppressed},
		Rule{Pattern: "RuntimeWarning", Verdict: VerdictSuppressed},
		Rule{Pattern: "ResourceWarning", Verdict: VerdictSuppressed},
		Rule{Pattern: "Traceback (most recent call last)", Verdict: VerdictFatal},
		Rule{Pattern: "ModuleNotFoundError", Verdict: VerdictFatal},
		Rule{Pattern: "ImportError", Verdict: VerdictFatal},
		Rule{Pattern: "SyntaxError", Verdict: VerdictFatal},
		Rule{Pattern: "IndentationError", Verdict: VerdictFatal},
		Rule{Pattern: "NameError", Verdict: VerdictFatal},
		Rule{Pattern: "TypeError", Verdict: VerdictFatal},
		Rule{Pattern: "AttributeError", Verdict: VerdictFatal},
	)
}

// Classify returns the verdict for text.
func (c *Classifier) Classify(text string) Verdict {
	for _, r := range c.rules {
		if strings.Contains(text, r.Pattern) {
			return r.Verdict
		}
	}
	return VerdictSuppressed
}

// Prepend returns a new classifier whose rules take priority over the
// receiver's. Hosts use this to layer their own patterns on top of the
// defaults.
func (c *Classifier) Prepend(rules ...Rule) *Classifier {
	combined := make([]Rule, 0, len(rules)+len(c.rules))
	combined = append(combined, rules...)
	combined = append(combined, c.rules...)
	return NewClassifier(combined...)
}
