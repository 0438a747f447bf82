package diagram

import "github.com/ziadkadry99/termlink/internal/glossary"

// Term groups shared by the surfaces. Each group is the set of glossary keys
// whose search text mentions one of its keywords.
const (
	GroupArchData      = "archData"
	GroupArchModel     = "archModel"
	GroupArchTensor    = "archTensor"
	GroupArchTrainLoop = "archTrainLoop"
	GroupBlockNorm     = "blockNorm"
	GroupBlockAttn     = "blockAttn"
	GroupBlockMLP      = "blockMLP"
	GroupLossCurve     = "lossCurve"
	GroupSampling      = "sampling"
)

var groupKeywords = map[string][]string{
	GroupArchData:      {"dataset", "get_batch", "x / y", "train split", "val split"},
	GroupArchModel:     {"wte", "wpe", "n_layer", "n_head", "n_embd", "block_size", "vocab_size"},
	GroupArchTensor:    {"block_size", "n_embd", "vocab_size", "logits"},
	GroupArchTrainLoop: {"loss", "optimizer", "gradient_accumulation_steps", "grad_clip", "checkpoint"},
	GroupBlockNorm:     {"LayerNorm", "层归一化"},
	GroupBlockAttn:     {"注意力", "softmax", "query", "key", "value"},
	GroupBlockMLP:      {"MLP", "GELU"},
	GroupLossCurve:     {"loss", "交叉熵", "训练集", "验证集"},
	GroupSampling:      {"temperature", "top_k", "概率分布", "multinomial", "logits"},
}

// Groups resolves every term group against reg. Groups with no matching
// term map to nil.
func Groups(reg *glossary.Registry) map[string][]string {
	out := make(map[string][]string, len(groupKeywords))
	for name, kws := range groupKeywords {
		if reg == nil {
			out[name] = nil
			continue
		}
		out[name] = reg.FindKeys(kws...)
	}
	return out
}

func concat(groups ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, g := range groups {
		for _, k := range g {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}
