package recognize

import (
	"context"
	"testing"
)

func TestEnglishClassifierAcceptsOrdinaryProse(t *testing.T) {
	c := NewEnglishClassifier(nil)
	result := c.Recognize(context.Background(), "the quick brown fox will come back and make them think about this")
	if !result.IsPlaintext {
		t.Fatalf("expected ordinary English prose to be recognized")
	}
}

func TestEnglishClassifierRejectsRandomBytes(t *testing.T) {
	c := NewEnglishClassifier(nil)
	result := c.Recognize(context.Background(), "xqzvk jthpw mnbrt fgklq")
	if result.IsPlaintext {
		t.Fatalf("expected gibberish tokens to be rejected")
	}
}

func TestEnglishClassifierSensitivityLowRequiresMoreEvidence(t *testing.T) {
	c := NewEnglishClassifier(nil)
	marginal := "the zxqwplm jtbfkr wysole"

	low := c.RecognizeAt(context.Background(), marginal, SensitivityLow)
	high := c.RecognizeAt(context.Background(), marginal, SensitivityHigh)

	if low.IsPlaintext && !high.IsPlaintext {
		t.Fatalf("low sensitivity should never accept where high sensitivity rejects")
	}
}

func TestEnglishClassifierEmptyInput(t *testing.T) {
	c := NewEnglishClassifier(nil)
	if c.Recognize(context.Background(), "   ").IsPlaintext {
		t.Fatalf("expected blank text to never be recognized")
	}
}
