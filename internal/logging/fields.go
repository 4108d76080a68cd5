package logging

// Standardized attribute keys. Keeping these as constants makes log
// output greppable across components.
const (
	FieldComponent = "component"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldRunID     = "run_id"
	FieldManifest  = "manifest"
	FieldLine      = "line"
	FieldURL       = "url"
	FieldBackend   = "backend"
	FieldFormat    = "format"
	FieldCodec     = "codec"
	FieldDest      = "dest"
	FieldElapsed   = "elapsed"
)
