package render

const fragmentTemplates = `
{{- define "server" -}}
<strong>Server:</strong> {{.Hostname}} ({{.IP}})<br>
<strong>Timestamp:</strong> {{.Timestamp}}
{{- end -}}

{{- define "card" -}}
{{- if .Healthy -}}
<div class="stat-card status-connected">
<h4>✅ {{.Title}}</h4>
{{- range .Fields}}
<p><strong>{{.Name}}:</strong> {{.Value}}</p>
{{- end}}
</div>
{{- else -}}
<div class="stat-card status-error">
<h4>❌ {{.Title}}</h4>
<p>Error: {{.Error}}</p>
</div>
{{- end -}}
{{- end -}}
`
