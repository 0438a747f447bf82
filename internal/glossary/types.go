package glossary

// RawTerm is a glossary record as authored in the glossary source file.
// Every field except Name is optional; missing fields decode to "".
type RawTerm struct {
	Key     string `yaml:"key,omitempty" json:"key,omitempty"`
	Name    string `yaml:"name" json:"name"`
	Alias   string `yaml:"alias" json:"alias"`
	Level   string `yaml:"level" json:"level"`
	Plain   string `yaml:"plain" json:"plain"`
	Detail  string `yaml:"detail" json:"detail"`
	Analogy string `yaml:"analogy" json:"analogy"`
	Mistake string `yaml:"mistake" json:"mistake"`
	Example string `yaml:"example,omitempty" json:"example,omitempty"`
	Scene   string `yaml:"scene,omitempty" json:"scene,omitempty"`
	Code    string `yaml:"code,omitempty" json:"code,omitempty"`
}

// Term is a registered glossary entry. Terms are created once by Build and
// are read-only afterwards.
type Term struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Alias   string `json:"alias"`
	Level   string `json:"level"`
	Plain   string `json:"plain"`
	Detail  string `json:"detail"`
	Analogy string `json:"analogy"`
	Mistake string `json:"mistake"`
	Example string `json:"example"`
	Scene   string `json:"scene"`
	Code    string `json:"code,omitempty"`

	// SearchBlob is the lower-cased concatenation of the textual fields,
	// matched by substring in Search.
	SearchBlob string `json:"-"`
}

// Label is the accessible label for markers pointing at t.
func (t *Term) Label() string {
	return t.Name + ": " + t.Plain
}
