package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultClassifier(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Verdict
	}{
		{
			name: "module not found is fatal",
			text: "ModuleNotFoundError: No module named 'numpy'",
			want: VerdictFatal,
		},
		{
			name: "traceback is fatal",
			text: "Traceback (most recent call last):\n  File \"main.py\", line 3",
			want: VerdictFatal,
		},
		{
			name: "import error is fatal",
			text: "ImportError: cannot import name 'foo' from 'bar'",
			want: VerdictFatal,
		},
		{
			name: "syntax error is fatal",
			text: "  File \"main.py\", line 1\nSyntaxError: invalid syntax",
			want: VerdictFatal,
		},
		{
			name: "deprecation warning is suppressed",
			text: "main.py:3: DeprecationWarning: the imp module is deprecated",
			want: VerdictSuppressed,
		},
		{
			name: "future warning is suppressed",
			text: "FutureWarning: elementwise comparison failed",
			want: VerdictSuppressed,
		},
		{
			name: "unrecognized chatter is suppressed",
			text: "loading dataset... 45%",
			want: VerdictSuppressed,
		},
		{
			name: "empty text is suppressed",
			text: "",
			want: VerdictSuppressed,
		},
		{
			name: "warning mentioning an error class stays suppressed",
			text: "DeprecationWarning: catching ImportError here is deprecated",
			want: VerdictSuppressed,
		},
	}

	c := DefaultClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}

func TestClassifier_FirstMatchWins(t *testing.T) {
	c := NewClassifier(
		Rule{Pattern: "boom", Verdict: VerdictFatal},
		Rule{Pattern: "boom town", Verdict: VerdictSuppressed},
	)
	assert.Equal(t, VerdictFatal, c.Classify("boom town"))
}

func TestClassifier_PrependTakesPriority(t *testing.T) {
	base := DefaultClassifier()
	assert.Equal(t, VerdictFatal, base.Classify("SyntaxError: invalid syntax"))

	// A host that wants syntax errors quiet can shadow the default rule.
	custom := base.Prepend(Rule{Pattern: "SyntaxError", Verdict: VerdictSuppressed})
	assert.Equal(t, VerdictSuppressed, custom.Classify("SyntaxError: invalid syntax"))

	// The original classifier is unchanged.
	assert.Equal(t, VerdictFatal, base.Classify("SyntaxError: invalid syntax"))
}
