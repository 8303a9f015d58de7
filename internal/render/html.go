// Package render turns session snapshots into user-facing output.
//
// The session core only produces data; every piece of markup is produced here
// through html/template so backend-supplied text and URLs are escaped.
package render

import (
	"html/template"
	"io"

	"github.com/usestring/recall-stream/pkg/types"
)

var htmlTemplate = template.Must(template.New("results").Parse(`<div id="progressDisplay">{{.Progress.Received}}件 / {{.Progress.Total}}件</div>
<div class="results">
{{- range .Artifacts}}
{{- if .Result}}
<div class="result-item">
  <strong>製品ID:</strong> {{.Result.ProductID}}<br/><br/>
  <strong>回収理由:</strong><pre>{{.Result.Reason}}</pre><br/>
  <strong>危惧される具体的な健康被害:</strong><pre>{{.Result.HealthRisk}}</pre><br/>
  <strong>現象・リスク分析:</strong><pre>{{.Result.RiskAnalysis}}</pre>
</div>
{{- else if .Link}}
<div class="download-link">
  <a href="{{.Link.URL}}" download target="_blank" rel="noopener noreferrer">📥 CSVファイルをダウンロード</a>
</div>
{{- end}}
{{- end}}
</div>
`))

// HTML writes the snapshot's progress and artifacts as an HTML fragment.
func HTML(w io.Writer, snap types.Snapshot) error {
	return htmlTemplate.Execute(w, snap)
}
