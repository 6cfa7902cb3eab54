package extract

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tacogips/rmmkit/internal/script/model"
)

const speedtestScript = `# NINJA_OS: Windows
# NINJA_ARCH: x64, x86
<#
.SYNOPSIS
    Runs an internet speed test.

.DESCRIPTION
    Downloads the Ookla CLI when missing and reports
    download and upload bandwidth.

.PARAMETER ServerId
    Optional speedtest server to use.

.PARAMETER Label
    Free text label.

.NOTES
    Author: ops
#>
[CmdletBinding()]
param(
    [Parameter(Mandatory = $true)]
    [int]$ServerId,

    # label shown in the report (with, punctuation)
    [string]$Label = "office",

    [switch]$Verbose2,

    [Parameter(Mandatory = $false)]
    [bool]$Upload = $True
)

Write-Output "hello"
`

func TestExtract_PowerShell(t *testing.T) {
	meta := Extract("scripts/Speedtest-Monitor.ps1", speedtestScript)

	if meta.Name != "Speedtest-Monitor" {
		t.Errorf("Name = %q, want %q", meta.Name, "Speedtest-Monitor")
	}
	if meta.Language != model.LanguagePowerShell {
		t.Errorf("Language = %q, want %q", meta.Language, model.LanguagePowerShell)
	}

	wantDesc := "Downloads the Ookla CLI when missing and reports\n    download and upload bandwidth."
	if meta.Description != wantDesc {
		t.Errorf("Description = %q, want %q", meta.Description, wantDesc)
	}

	if !reflect.DeepEqual(meta.OperatingSystems, []string{"WINDOWS"}) {
		t.Errorf("OperatingSystems = %v", meta.OperatingSystems)
	}
	if !reflect.DeepEqual(meta.Architectures, []string{"X64", "X86"}) {
		t.Errorf("Architectures = %v", meta.Architectures)
	}

	if len(meta.Parameters) != 4 {
		t.Fatalf("expected 4 parameters, got %d: %+v", len(meta.Parameters), meta.Parameters)
	}

	tests := []struct {
		name        string
		typ         model.VarType
		required    bool
		def         *string
		description string
	}{
		{name: "ServerId", typ: model.VarTypeInteger, required: true, description: "Optional speedtest server to use."},
		{name: "Label", typ: model.VarTypeText, def: strPtr("office"), description: "Free text label."},
		{name: "Verbose2", typ: model.VarTypeCheckbox},
		{name: "Upload", typ: model.VarTypeCheckbox, def: strPtr("true")},
	}

	for i, tt := range tests {
		p := meta.Parameters[i]
		if p.Name != tt.name {
			t.Errorf("param[%d].Name = %q, want %q", i, p.Name, tt.name)
		}
		if p.Type != tt.typ {
			t.Errorf("param %s Type = %q, want %q", tt.name, p.Type, tt.typ)
		}
		if p.Required != tt.required {
			t.Errorf("param %s Required = %v, want %v", tt.name, p.Required, tt.required)
		}
		if p.Description != tt.description {
			t.Errorf("param %s Description = %q, want %q", tt.name, p.Description, tt.description)
		}
		if !reflect.DeepEqual(p.Default, tt.def) {
			t.Errorf("param %s Default = %v, want %v", tt.name, deref(p.Default), deref(tt.def))
		}
	}
}

func TestExtract_DescriptionBetweenMarkers(t *testing.T) {
	content := "<#\n.DESCRIPTION\n   Checks disk space.   \n.EXAMPLE\n   ./x.ps1\n#>\n"
	meta := Extract("check.ps1", content)
	if meta.Description != "Checks disk space." {
		t.Errorf("Description = %q, want %q", meta.Description, "Checks disk space.")
	}
}

func TestExtract_DescriptionUntilBlockEnd(t *testing.T) {
	content := "<#\r\n.DESCRIPTION Reboots the host.\r\n#>\r\n"
	meta := Extract("reboot.ps1", content)
	if meta.Description != "Reboots the host." {
		t.Errorf("Description = %q, want %q", meta.Description, "Reboots the host.")
	}
}

func TestExtract_MissingBlocksDegradeGracefully(t *testing.T) {
	meta := Extract("plain.ps1", "Write-Output 'no help here'\n")

	if meta.Description != "" {
		t.Errorf("Description = %q, want empty", meta.Description)
	}
	if len(meta.Parameters) != 0 {
		t.Errorf("Parameters = %v, want none", meta.Parameters)
	}
	if meta.OperatingSystems == nil || len(meta.OperatingSystems) != 0 {
		t.Errorf("OperatingSystems = %#v, want empty non-nil", meta.OperatingSystems)
	}
	if meta.Architectures == nil || len(meta.Architectures) != 0 {
		t.Errorf("Architectures = %#v, want empty non-nil", meta.Architectures)
	}
}

func TestExtract_UnterminatedParamBlock(t *testing.T) {
	meta := Extract("broken.ps1", "param(\n  [Parameter(Mandatory)][string]$Name\n")
	if len(meta.Parameters) != 1 {
		t.Fatalf("expected 1 parameter, got %d", len(meta.Parameters))
	}
	p := meta.Parameters[0]
	if p.Name != "Name" || !p.Required || p.Type != model.VarTypeText {
		t.Errorf("unexpected parameter: %+v", p)
	}
}

func TestExtract_ShellScriptTagsOnly(t *testing.T) {
	content := "#!/bin/sh\n# OS: linux, mac, Linux\n# ARCH: arm64\n<#\n.DESCRIPTION\nnot powershell\n#>\n"
	meta := Extract("scripts/disk.sh", content)

	if meta.Language != model.LanguageShell {
		t.Errorf("Language = %q, want SHELL", meta.Language)
	}
	if meta.Description != "" {
		t.Errorf("Description = %q, want empty for shell scripts", meta.Description)
	}
	if !reflect.DeepEqual(meta.OperatingSystems, []string{"LINUX", "MAC"}) {
		t.Errorf("OperatingSystems = %v", meta.OperatingSystems)
	}
	if !reflect.DeepEqual(meta.Architectures, []string{"ARM64"}) {
		t.Errorf("Architectures = %v", meta.Architectures)
	}
}

func TestExtract_BatchTags(t *testing.T) {
	meta := Extract("cleanup.cmd", "@echo off\nREM OS: windows\n:: ARCH: x64\n")
	if !reflect.DeepEqual(meta.OperatingSystems, []string{"WINDOWS"}) {
		t.Errorf("OperatingSystems = %v", meta.OperatingSystems)
	}
	if !reflect.DeepEqual(meta.Architectures, []string{"X64"}) {
		t.Errorf("Architectures = %v", meta.Architectures)
	}
}

func TestMapType(t *testing.T) {
	tests := []struct {
		in   string
		want model.VarType
	}{
		{"int", model.VarTypeInteger},
		{"Int32", model.VarTypeInteger},
		{"System.Int64", model.VarTypeInteger},
		{"string", model.VarTypeText},
		{"string[]", model.VarTypeText},
		{"bool", model.VarTypeCheckbox},
		{"switch", model.VarTypeCheckbox},
		{"System.Management.Automation.SwitchParameter", model.VarTypeCheckbox},
		{"double", model.VarTypeDecimal},
		{"DateTime", model.VarTypeDateTime},
		{"hashtable", model.VarTypeText},
		{"", model.VarTypeText},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := MapType(tt.in); got != tt.want {
				t.Errorf("MapType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsMandatory(t *testing.T) {
	tests := []struct {
		name  string
		attrs []string
		want  bool
	}{
		{"explicit true", []string{"Parameter(Mandatory=$true)"}, true},
		{"bare", []string{"Parameter(Mandatory)"}, true},
		{"explicit false", []string{"Parameter(Mandatory=$false)"}, false},
		{"other attribute", []string{"ValidateRange(1, 10)"}, false},
		{"none", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isMandatory(tt.attrs); got != tt.want {
				t.Errorf("isMandatory(%v) = %v, want %v", tt.attrs, got, tt.want)
			}
		})
	}
}

func TestParseHelpSections(t *testing.T) {
	help := `
.SYNOPSIS
  Short.
.PARAMETER Path The target path.
.PARAMETER force
  Overwrite.
`
	sections := ParseHelpSections(help)
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d: %+v", len(sections), sections)
	}
	if sections[1].Keyword != "PARAMETER" || sections[1].Argument != "Path" || sections[1].Text != "The target path." {
		t.Errorf("unexpected section: %+v", sections[1])
	}
	if sections[2].Argument != "force" || sections[2].Text != "Overwrite." {
		t.Errorf("unexpected section: %+v", sections[2])
	}
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Speedtest.ps1")
	if err := os.WriteFile(path, []byte(speedtestScript), 0644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	meta, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile() error = %v", err)
	}
	if meta.Name != "Speedtest" {
		t.Errorf("Name = %q, want %q", meta.Name, "Speedtest")
	}
	if meta.Path != path {
		t.Errorf("Path = %q, want %q", meta.Path, path)
	}

	if _, err := ExtractFile(filepath.Join(dir, "missing.ps1")); err == nil {
		t.Error("ExtractFile() expected error for missing file")
	}
}

func strPtr(s string) *string { return &s }

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
