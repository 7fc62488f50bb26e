package notifications

import "html/template"

// Kind повод для письма
type Kind string

const (
	KindBooked      Kind = "booked"
	KindRescheduled Kind = "rescheduled"
	KindCancelled   Kind = "cancelled"
)

var subjects = map[Kind]string{
	KindBooked:      "Your graduation photoshoot is booked",
	KindRescheduled: "Your graduation photoshoot was rescheduled",
	KindCancelled:   "Your graduation photoshoot booking was cancelled",
}

var mailTemplate = template.Must(template.New("mail").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #222;">
  <p>Hi {{.Name}},</p>
  {{- if eq .Kind "cancelled"}}
  <p>Your {{.Type}} photoshoot on <strong>{{.Date}}</strong> at <strong>{{.Time}}</strong> has been cancelled.</p>
  {{- else if eq .Kind "rescheduled"}}
  <p>Your photoshoot has been moved. Your new {{.Type}} session is on <strong>{{.Date}}</strong> at <strong>{{.Time}}</strong>.</p>
  {{- else}}
  <p>Your {{.Type}} photoshoot is confirmed for <strong>{{.Date}}</strong> at <strong>{{.Time}}</strong>.</p>
  {{- end}}
  {{- if ne .Kind "cancelled"}}
  <table cellpadding="4">
    <tr><td>Package</td><td>{{.Package}}</td></tr>
    {{- if .Addons}}
    <tr><td>Add-ons</td><td>{{.Addons}}</td></tr>
    {{- end}}
    <tr><td>Makeup</td><td>{{.Makeup}}</td></tr>
    {{- if .Remarks}}
    <tr><td>Remarks</td><td>{{.Remarks}}</td></tr>
    {{- end}}
  </table>
  {{- end}}
  <p>Changes are allowed until {{.WindowEnds}}.</p>
</body>
</html>
`))

type mailData struct {
	Kind       string
	Name       string
	Type       string
	Date       string
	Time       string
	Package    string
	Addons     string
	Makeup     string
	Remarks    string
	WindowEnds string
}
