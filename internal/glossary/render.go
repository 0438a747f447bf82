package glossary

import "html/template"

// EmptyMessage is shown in place of the list when no term matches.
const EmptyMessage = "没有匹配术语，请换一个关键词。"

var listTemplate = template.Must(template.New("termList").Parse(`{{- if . -}}
{{- range . }}
<details class="term-card{{ if .Highlighted }} term-highlight{{ end }}" data-term-key="{{ .Term.Key }}"{{ if .Open }} open{{ end }}>
  <summary>
    <span class="term-head">
      <span class="term-name">{{ .Term.Name }}</span>
      <span class="term-alias">{{ .Term.Alias }}</span>
    </span>
    <span class="term-level">{{ .Term.Level }}</span>
  </summary>
  <div class="term-body">
    <div class="term-row"><b>一句话:</b> {{ .Term.Plain }}</div>
    <div class="term-row"><b>详细解释:</b> {{ .Term.Detail }}</div>
    <div class="term-row"><b>例子:</b> {{ .Term.Example }}</div>
    <div class="term-row"><b>初中类比:</b> {{ .Term.Analogy }}</div>
    <div class="term-row"><b>常见迷糊点:</b> {{ .Term.Mistake }}</div>
    <div class="term-row"><b>本页对应:</b> {{ .Term.Scene }}</div>
  </div>
</details>
{{- end }}
{{- else -}}
<div class="card">` + EmptyMessage + `</div>
{{- end }}`))
