package glossary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTerms() []RawTerm {
	return []RawTerm{
		{Name: "注意力", Alias: "self-attention", Level: "核心", Plain: "让 token 看上下文。", Scene: "实验 2 注意力热力图。"},
		{Name: "softmax", Alias: "softmax", Level: "核心", Plain: "把分数变成概率。"},
		{Name: "损失", Alias: "loss", Level: "入门", Plain: "预测错得有多离谱。", Example: "loss 从 4.2 降到 1.5。"},
	}
}

func TestBuildAssignsKeysAndExamples(t *testing.T) {
	reg, err := Build(sampleTerms())
	require.NoError(t, err)
	require.Equal(t, 3, reg.Len())

	terms := reg.Terms()
	assert.Equal(t, "term-0", terms[0].Key)
	assert.Equal(t, "term-1", terms[1].Key)
	assert.Equal(t, "term-2", terms[2].Key)

	assert.Equal(t, "例如: 实验 2 注意力热力图。", terms[0].Example)
	assert.Equal(t, "例如: 在学习流程中，用“softmax”描述对应步骤。", terms[1].Example)
	assert.Equal(t, "loss 从 4.2 降到 1.5。", terms[2].Example)
}

func TestBuildSearchBlob(t *testing.T) {
	reg, err := Build([]RawTerm{{Name: "LayerNorm", Alias: "Layer Normalization", Plain: "Stabilizes VALUES"}})
	require.NoError(t, err)

	blob := reg.Terms()[0].SearchBlob
	assert.Contains(t, blob, "layernorm")
	assert.Contains(t, blob, "layer normalization")
	assert.Contains(t, blob, "stabilizes values")
	assert.Equal(t, strings.ToLower(blob), blob)
}

func TestBuildExplicitKeys(t *testing.T) {
	reg, err := Build([]RawTerm{{Key: "attn", Name: "注意力"}, {Name: "损失"}})
	require.NoError(t, err)

	term, ok := reg.Lookup("attn")
	require.True(t, ok)
	assert.Equal(t, "注意力", term.Name)

	_, ok = reg.Lookup("term-1")
	assert.True(t, ok)
}

func TestBuildDuplicateKey(t *testing.T) {
	_, err := Build([]RawTerm{{Key: "term-1", Name: "a"}, {Name: "b"}})
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestBuildToleratesMissingFields(t *testing.T) {
	reg, err := Build([]RawTerm{{}})
	require.NoError(t, err)
	term := reg.Terms()[0]
	assert.Equal(t, "", term.Alias)
	assert.Equal(t, "例如: 在学习流程中，用“”描述对应步骤。", term.Example)
}

func TestGetMissing(t *testing.T) {
	reg, err := Build(sampleTerms())
	require.NoError(t, err)

	_, err = reg.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearch(t *testing.T) {
	reg, err := Build(sampleTerms())
	require.NoError(t, err)

	got := reg.Search("soft")
	require.Len(t, got, 1)
	assert.Equal(t, "softmax", got[0].Name)

	got = reg.Search("  SOFT ")
	require.Len(t, got, 1)

	all := reg.Search("")
	require.Len(t, all, 3)
	for i, term := range all {
		assert.Equal(t, reg.Terms()[i].Key, term.Key)
	}

	assert.Empty(t, reg.Search("no such thing"))
}

func TestSearchEmptyReturnsCopy(t *testing.T) {
	reg, err := Build(sampleTerms())
	require.NoError(t, err)

	all := reg.Search("")
	all[0] = nil
	assert.NotNil(t, reg.Terms()[0])
}

func TestFindKeys(t *testing.T) {
	reg, err := Build(sampleTerms())
	require.NoError(t, err)

	assert.Equal(t, []string{"term-0", "term-2"}, reg.FindKeys("loss", "注意力", "loss"))
	assert.Nil(t, reg.FindKeys("", "  "))
	assert.Empty(t, reg.FindKeys("absent"))
}
