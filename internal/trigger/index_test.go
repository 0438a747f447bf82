package trigger

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/termlink/internal/glossary"
)

func compileTerms(t *testing.T, raw ...glossary.RawTerm) *Index {
	t.Helper()
	reg, err := glossary.Build(raw)
	require.NoError(t, err)
	return Compile(reg.Terms())
}

func collect(idx *Index, text string) []Match {
	return slices.Collect(idx.FindMatches(text))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Query (Q) ", "query"},
		{"Self   Attention", "self attention"},
		{"x\t/\ny", "x / y"},
		{"(aside) LayerNorm (LN)", "layernorm"},
		{"注意力", "注意力"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Normalize(got), "normalization must be idempotent")
		})
	}
}

func TestCompileDerivesAliasParts(t *testing.T) {
	idx := compileTerms(t,
		glossary.RawTerm{Name: "词表", Alias: "vocab / vocabulary"},
		glossary.RawTerm{Name: "词表大小", Alias: "vocab_size"},
		glossary.RawTerm{Name: "训练输入 x 与标签 y", Alias: "x / y shifted targets"},
		glossary.RawTerm{Name: "键", Alias: "Key (K)"},
	)

	for trigger, key := range map[string]string{
		"词表":                 "term-0",
		"vocab / vocabulary": "term-0",
		"vocab":              "term-0",
		"vocabulary":         "term-0",
		"vocab_size":         "term-1",
		"vocab size":         "term-1",
		"y shifted targets":  "term-2",
		"key":                "term-3",
	} {
		got, ok := idx.Lookup(trigger)
		if assert.True(t, ok, "trigger %q", trigger) {
			assert.Equal(t, key, got, "trigger %q", trigger)
		}
	}

	_, ok := idx.Lookup("x")
	assert.False(t, ok, "single-letter alias part is too short")
	_, ok = idx.Lookup("键")
	assert.False(t, ok, "single CJK character is too short")
}

func TestShortStringGuard(t *testing.T) {
	idx := compileTerms(t,
		glossary.RawTerm{Name: "id"},
		glossary.RawTerm{Name: "词"},
		glossary.RawTerm{Name: "词表"},
		glossary.RawTerm{Name: "mlp"},
	)

	assert.Equal(t, 2, idx.Len())
	_, ok := idx.Lookup("id")
	assert.False(t, ok)
	_, ok = idx.Lookup("词表")
	assert.True(t, ok)
	_, ok = idx.Lookup("MLP")
	assert.True(t, ok)
}

func TestFirstRegistrationWins(t *testing.T) {
	idx := compileTerms(t,
		glossary.RawTerm{Key: "a", Name: "词元", Alias: "token"},
		glossary.RawTerm{Key: "b", Name: "Token", Alias: "TOKEN (tok)"},
	)

	key, ok := idx.Lookup("token")
	require.True(t, ok)
	assert.Equal(t, "a", key)

	m := collect(idx, "one Token at a time")
	require.Len(t, m, 1)
	assert.Equal(t, "a", m[0].Key)
}

func TestLongestMatchWins(t *testing.T) {
	idx := compileTerms(t,
		glossary.RawTerm{Key: "attn", Name: "注意力", Alias: "attention"},
		glossary.RawTerm{Key: "self", Name: "自注意力", Alias: "self attention"},
	)

	m := collect(idx, "self attention is key")
	require.Len(t, m, 1)
	assert.Equal(t, Match{Start: 0, End: 14, Text: "self attention", Key: "self"}, m[0])

	triggers := idx.Triggers()
	require.NotEmpty(t, triggers)
	assert.Equal(t, "self attention", triggers[0])
}

func TestLongestMatchCJK(t *testing.T) {
	idx := compileTerms(t,
		glossary.RawTerm{Key: "attn", Name: "注意力"},
		glossary.RawTerm{Key: "heads", Name: "注意力头数"},
	)

	m := collect(idx, "调整注意力头数后再看注意力")
	require.Len(t, m, 2)
	assert.Equal(t, "heads", m[0].Key)
	assert.Equal(t, "注意力头数", m[0].Text)
	assert.Equal(t, "attn", m[1].Key)
}

func TestASCIIBoundary(t *testing.T) {
	idx := compileTerms(t,
		glossary.RawTerm{Key: "band", Name: "频带", Alias: "band"},
		glossary.RawTerm{Key: "tok", Name: "词元", Alias: "token"},
	)

	assert.Empty(t, collect(idx, "broadband"))
	assert.Empty(t, collect(idx, "bandwidth"))
	assert.Empty(t, collect(idx, "tokens"))
	assert.Empty(t, collect(idx, "token_id"))

	for _, text := range []string{"band", "a band.", "(band)", "的band们", "band-pass"} {
		m := collect(idx, text)
		if assert.Len(t, m, 1, "text %q", text) {
			assert.Equal(t, "band", m[0].Key)
		}
	}
}

func TestNonASCIIHasNoBoundary(t *testing.T) {
	idx := compileTerms(t, glossary.RawTerm{Key: "vocab", Name: "词表"})

	m := collect(idx, "这个词表很大")
	require.Len(t, m, 1)
	assert.Equal(t, "词表", m[0].Text)
	assert.Equal(t, "这个词表很大"[m[0].Start:m[0].End], m[0].Text)

	m = collect(idx, "abc词表xyz")
	assert.Len(t, m, 1)
}

func TestCaseInsensitive(t *testing.T) {
	idx := compileTerms(t, glossary.RawTerm{Key: "ln", Name: "层归一化", Alias: "LayerNorm"})

	m := collect(idx, "layernorm, LAYERNORM and LayerNorm")
	require.Len(t, m, 3)
	assert.Equal(t, "LAYERNORM", m[1].Text)
	for _, match := range m {
		assert.Equal(t, "ln", match.Key)
	}
}

func TestDottedTriggers(t *testing.T) {
	idx := compileTerms(t, glossary.RawTerm{Key: "compile", Name: "编译优化", Alias: "torch.compile"})

	m := collect(idx, "use torch.compile.")
	require.Len(t, m, 1)
	assert.Equal(t, "torch.compile", m[0].Text)

	assert.Empty(t, collect(idx, "torchXcompile"), "dot is literal")
}

func TestInertIndex(t *testing.T) {
	idx := Compile(nil)
	assert.True(t, idx.Inert())
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, collect(idx, "anything at all"))
	assert.False(t, idx.HasMatch("anything"))

	idx = compileTerms(t, glossary.RawTerm{Name: "x"})
	assert.True(t, idx.Inert(), "only rejected triggers")
}

func TestFindMatchesStopsEarly(t *testing.T) {
	idx := compileTerms(t, glossary.RawTerm{Key: "loss", Name: "损失", Alias: "loss"})

	var seen int
	for range idx.FindMatches("loss loss loss") {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
	assert.True(t, idx.HasMatch("the loss curve"))
}

func TestDefaultGlossaryCompiles(t *testing.T) {
	reg, err := glossary.Build(glossary.Default())
	require.NoError(t, err)

	idx := Compile(reg.Terms())
	require.False(t, idx.Inert())

	m := collect(idx, "self-attention 之后接 MLP，再做 softmax")
	require.Len(t, m, 3)
	assert.Equal(t, "self-attention", m[0].Text)
	assert.Equal(t, "MLP", m[1].Text)
	assert.Equal(t, "softmax", m[2].Text)
}
