package types

import "testing"

func TestDescriptorIsEncoder(t *testing.T) {
	enc := NewTransformationDescriptor("base64", 0.9, "Base64 decode", "", IsEncoderTag)
	if !enc.IsEncoder() {
		t.Fatalf("expected base64 descriptor to be an encoder")
	}

	cipher := NewTransformationDescriptor("caesar", 0.7, "Caesar cipher", "")
	if cipher.IsEncoder() {
		t.Fatalf("expected caesar descriptor to be a cipher, not an encoder")
	}
}

func TestChainExtendDoesNotAliasParent(t *testing.T) {
	base := Chain{{TransformationName: "base64", InputText: "A", OutputText: "B"}}

	child1 := base.Extend(TransformationStep{TransformationName: "caesar", InputText: "B", OutputText: "C1"})
	child2 := base.Extend(TransformationStep{TransformationName: "rot13", InputText: "B", OutputText: "C2"})

	if len(base) != 1 {
		t.Fatalf("expected base chain untouched, got len %d", len(base))
	}
	if child1[len(child1)-1].OutputText != "C1" || child2[len(child2)-1].OutputText != "C2" {
		t.Fatalf("siblings aliased each other's appended step: %+v / %+v", child1, child2)
	}
}

func TestChainConsistent(t *testing.T) {
	chain := Chain{
		{InputText: "input", OutputText: "mid"},
		{InputText: "mid", OutputText: "plaintext"},
	}
	if !chain.Consistent("input", "plaintext") {
		t.Fatalf("expected chain to be consistent")
	}
	if chain.Consistent("wrong-start", "plaintext") {
		t.Fatalf("expected mismatch on start to be caught")
	}

	broken := Chain{
		{InputText: "input", OutputText: "mid"},
		{InputText: "different", OutputText: "plaintext"},
	}
	if broken.Consistent("input", "plaintext") {
		t.Fatalf("expected broken adjacency to be caught")
	}
}

func TestChainCipherCount(t *testing.T) {
	chain := Chain{
		{TransformationName: "base64"},
		{TransformationName: "caesar"},
		{TransformationName: "base64"},
		{TransformationName: "vigenere"},
	}
	isCipher := func(name string) bool {
		return name == "caesar" || name == "vigenere"
	}
	if got := chain.CipherCount(isCipher); got != 2 {
		t.Fatalf("expected 2 ciphers, got %d", got)
	}
}

func TestScalarLenIsUnicodeSafe(t *testing.T) {
	s := "héllo wörld 日本語"
	if ScalarLen(s) == len(s) {
		t.Fatalf("expected scalar length to differ from byte length for multi-byte input")
	}
	// Sanity: scalar length equals rune count, independent of encoding width.
	runeCount := 0
	for range s {
		runeCount++
	}
	if ScalarLen(s) != runeCount {
		t.Fatalf("expected ScalarLen %d to equal rune count %d", ScalarLen(s), runeCount)
	}
}

func TestFastHashStringDeterministic(t *testing.T) {
	a := FastHashString("hello world")
	b := FastHashString("hello world")
	c := FastHashString("hello worle")
	if a != b {
		t.Fatalf("expected identical strings to hash identically")
	}
	if a == c {
		t.Fatalf("expected different strings to (almost certainly) hash differently")
	}
}

func TestSearchNodeTotalCost(t *testing.T) {
	n := NewSearchNode("text", nil, 0, 1.5, 0.5, nil, false)
	if n.TotalCost() != 2.0 {
		t.Fatalf("expected total cost 2.0, got %f", n.TotalCost())
	}
}
