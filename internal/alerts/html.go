package alerts

import (
	"bytes"
	"html/template"
	"time"

	"InfraDash/internal/sysinfo"
)

// Common HTML styles for all alert types
const commonStyles = `
body { font-family: Arial, sans-serif; }
.container { padding: 20px; border-radius: 5px; }
.header { color: white; padding: 10px; text-align: center; border-radius: 5px; }
.content { margin: 20px 0; }
table { width: 100%; border-collapse: collapse; }
table, th, td { border: 1px solid #ddd; }
th, td { padding: 8px; text-align: left; }
th { background-color: #f5f5f5; }
.note { background-color: #f5f5f5; padding: 10px; margin-top: 20px; border-left: 5px solid; }
.section { margin-top: 20px; }
.section-title { color: #333; border-bottom: 1px solid #ddd; padding-bottom: 5px; }
`

var alertTemplate = template.Must(template.New("alert").Parse(`<html>
<head>
    <style>
        {{.Styles}}
        .container { border: 1px solid {{.Style.BorderColor}}; }
        .header { background-color: {{.Style.HeaderColor}}; }
        .{{.Style.StatusColorClass}} { color: {{.Style.BorderColor}}; font-weight: bold; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h2>{{.Title}}</h2>
        </div>
        <div class="content">
            <p>This is an automated alert from {{.AppName}}. Please review the following details:</p>
            <p><b>Current Status:</b> <span class="{{.Style.StatusColorClass}}">{{.Style.StatusText}}</span></p>
            <table>
                <tr><th>Component</th><th>Detected At</th>{{if .Streak}}<th>Failed Refreshes</th>{{end}}</tr>
                <tr><td>{{.Component}}</td><td>{{.DetectedAt}}</td>{{if .Streak}}<td>{{.Streak}}</td>{{end}}</tr>
            </table>
            {{if .StatusChanged}}<div class="note" style="border-left-color: {{.Style.BorderColor}}"><b>NOTE:</b> This is a status change alert.</div>{{end}}
            {{with .Host}}
            <div class="section">
                <h3 class="section-title">Dashboard Host</h3>
                <table>
                    <tr><th>Attribute</th><th>Value</th></tr>
                    <tr><td>Hostname</td><td>{{.Hostname}}</td></tr>
                    <tr><td>IP Addresses</td><td>{{range $i, $ip := .IPAddresses}}{{if $i}}, {{end}}{{$ip}}{{end}}</td></tr>
                    <tr><td>Operating System</td><td>{{.Platform}} {{.PlatformVersion}}</td></tr>
                    <tr><td>Kernel Version</td><td>{{.KernelVersion}}</td></tr>
                    <tr><td>System Uptime</td><td>{{.Uptime}}</td></tr>
                </table>
            </div>
            {{end}}
        </div>
    </div>
</body>
</html>`))

type alertView struct {
	Styles        template.CSS
	Style         AlertStyle
	Title         string
	AppName       string
	Component     string
	DetectedAt    string
	Streak        int
	StatusChanged bool
	Host          *sysinfo.HostInfo
}

// CreateAlertHTML renders the alert email body. host may be nil.
func CreateAlertHTML(alert Alert, style AlertStyle, appName string, host *sysinfo.HostInfo) (string, error) {
	var buf bytes.Buffer
	err := alertTemplate.Execute(&buf, alertView{
		Styles:        template.CSS(commonStyles),
		Style:         style,
		Title:         alert.Subject(),
		AppName:       appName,
		Component:     alert.Component,
		DetectedAt:    alert.At.Format(time.RFC1123),
		Streak:        alert.Streak,
		StatusChanged: alert.StatusChanged,
		Host:          host,
	})
	return buf.String(), err
}
