package cli

const noteTemplate = `
=== Note Details ===

ID:       {{.NoteID}}
Created:  {{.CreatedAtISO}}
Updated:  {{.UpdatedAtISO}}
Pinned:   {{if .Pinned}}yes{{else}}no{{end}}
{{- if .Attachments }}
Attachments:
{{- range $key, $attachment := .Attachments }}
  {{$key}}: {{if $attachment.AltText}}{{$attachment.AltText}}{{else}}(no alt text){{end}}
{{- end}}
{{- end}}
{{- if .Classification }}
Classification:
{{- range $key, $value := .Classification }}
  {{$key}}: {{$value}}
{{- end}}
{{- end}}

---
{{.MarkdownText}}
---
`
