package model

// ScriptMetadata is the metadata extracted from a local script file.
type ScriptMetadata struct {
	// Name is the script name (file name without extension).
	Name string `json:"name"`
	// Path is the local file path the metadata was read from.
	Path string `json:"path,omitempty"`
	// Language is the script language derived from the file extension.
	Language Language `json:"language,omitempty"`
	// Description is the free text description. Empty when not documented.
	Description string `json:"description"`
	// Parameters are the declared parameters in declaration order.
	Parameters []ParameterSpec `json:"parameters"`
	// OperatingSystems are the target operating systems. Empty means unspecified.
	OperatingSystems []string `json:"operatingSystems"`
	// Architectures are the target architectures. Empty means unspecified.
	Architectures []string `json:"architecture"`
	// Text is the full script body.
	Text string `json:"-"`
}

// ParameterSpec describes a single script parameter.
type ParameterSpec struct {
	// ID is the remote variable ID, set only when syncing onto an existing script.
	ID *int64 `json:"id,omitempty"`
	// Name is the parameter name without the leading '$'.
	Name string `json:"name"`
	// Type is the declared type mapped to the remote vocabulary.
	Type VarType `json:"type"`
	// Description is taken from the help block. Empty when not documented.
	Description string `json:"description"`
	// Default is the normalized default value, nil when none is declared.
	Default *string `json:"defaultValue,omitempty"`
	// Required is true when the parameter is declared mandatory.
	Required bool `json:"required"`
	// Source is the value source; always LITERAL for synced scripts.
	Source string `json:"source,omitempty"`
}

// DefaultValue returns the default value and whether one is declared.
func (p ParameterSpec) DefaultValue() (string, bool) {
	if p.Default == nil {
		return "", false
	}
	return *p.Default, true
}
