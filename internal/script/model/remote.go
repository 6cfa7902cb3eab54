package model

import "encoding/json"

// RemoteScript is a script record as returned by the remote script library.
type RemoteScript struct {
	// ID is the remote script identifier.
	ID int64 `json:"id"`
	// Name is the script name; unique within the library.
	Name string `json:"name"`
	// Description is the script description.
	Description string `json:"description"`
	// Language is the script language.
	Language Language `json:"language,omitempty"`
	// Variables are the declared script variables.
	Variables []RemoteVariable `json:"scriptVariables"`
	// OperatingSystems are the target operating systems.
	OperatingSystems []string `json:"operatingSystems"`
	// Architecture are the target architectures.
	Architecture []string `json:"architecture"`
}

// RemoteVariable is a script variable as returned by the remote script library.
type RemoteVariable struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Type        VarType `json:"type"`
	Source      string  `json:"source,omitempty"`
	// DefaultValue is decoded leniently: the API may return it as a string,
	// number or boolean.
	DefaultValue *string `json:"-"`
	Required     bool    `json:"required"`
}

// UnmarshalJSON decodes a RemoteVariable, accepting any JSON scalar as the
// default value.
func (v *RemoteVariable) UnmarshalJSON(data []byte) error {
	type plain RemoteVariable
	aux := struct {
		*plain
		DefaultValue json.RawMessage `json:"defaultValue"`
	}{plain: (*plain)(v)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	v.DefaultValue = nil
	raw := aux.DefaultValue
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		v.DefaultValue = &s
		return nil
	}
	s = string(raw)
	v.DefaultValue = &s
	return nil
}

// Parameters converts the remote variables into ParameterSpec values with
// defaults normalized to their declared type.
func (r RemoteScript) Parameters() []ParameterSpec {
	params := make([]ParameterSpec, 0, len(r.Variables))
	for _, v := range r.Variables {
		id := v.ID
		p := ParameterSpec{
			ID:          &id,
			Name:        v.Name,
			Type:        v.Type,
			Description: v.Description,
			Required:    v.Required,
			Source:      v.Source,
		}
		if v.DefaultValue != nil {
			d := NormalizeDefault(v.Type, *v.DefaultValue)
			p.Default = &d
		}
		params = append(params, p)
	}
	return params
}

// ScriptPayload is the request body for creating or updating a script.
type ScriptPayload struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	ScriptConfig     ScriptConfig    `json:"scriptConfig"`
	Variables        []ParameterSpec `json:"scriptVariables"`
	OperatingSystems []string        `json:"operatingSystems,omitempty"`
	Architecture     []string        `json:"architecture,omitempty"`
}

// ScriptConfig carries the script language and body.
type ScriptConfig struct {
	Language Language `json:"scriptLanguage"`
	Text     string   `json:"scriptText"`
}
