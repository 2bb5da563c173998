package orafm

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig"
)

const listingTemplate = `synthdef {{ .Name }}
constants:
{{- range $i, $c := .Constants }}
  c{{ $i }} = {{ $c }}
{{- end }}
params:
{{- range $i, $p := .Params }}
  {{ $i }}: {{ $p.Name }} {{ $p.Rate }} default {{ $p.Default }}
{{- end }}
ugens:
{{- range $i, $u := .UGens }}
  u{{ $i }}: {{ $u.Class }} {{ $u.Rate }} special {{ $u.Special }} ins [{{ join " " $u.Inputs }}] outs {{ len $u.Outputs }}
{{- end }}
`

var listingTmpl = template.Must(template.New("listing").Funcs(sprig.TxtFuncMap()).Parse(listingTemplate))

// Listing renders a readable dump of the document: constant pool,
// parameter table with absolute indices and the wired ugen list. Meant
// for humans and golden tests, not for the engine.
func (d *SynthDef) Listing() (string, error) {
	var buf bytes.Buffer
	if err := listingTmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
