package display

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dotlink/dotlink/pkg/types"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"auto", FormatAuto, false},
		{"", FormatAuto, false},
		{"term", FormatTerm, false},
		{"terminal", FormatTerm, false},
		{"text", FormatText, false},
		{"plain", FormatText, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"YAML", FormatYAML, false},
		{"xml", FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func sampleStatuses() []types.MappingStatus {
	return []types.MappingStatus{
		{
			Mapping: types.Mapping{Source: "bashrc", Target: ".bashrc"},
			Status:  types.StatusLinked,
		},
		{
			Mapping: types.Mapping{Source: "vimrc", Target: ".vimrc"},
			Status:  types.StatusConflict,
			Detail:  "/home/user/.vimrc exists but is not a symlink",
		},
	}
}

func TestStatusesTextTable(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText)

	require.NoError(t, r.Statuses(sampleStatuses()))

	out := buf.String()
	assert.Contains(t, out, "TARGET")
	assert.Contains(t, out, ".bashrc")
	assert.Contains(t, out, "LINKED")
	assert.Contains(t, out, "CONFLICT")
	assert.Contains(t, out, "is not a symlink")
}

func TestStatusesEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText)

	require.NoError(t, r.Statuses(nil))
	assert.Equal(t, "no mappings configured\n", buf.String())
}

func TestStatusesJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatJSON)

	require.NoError(t, r.Statuses(sampleStatuses()))

	var decoded []types.MappingStatus
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, types.StatusLinked, decoded[0].Status)
	assert.Equal(t, ".vimrc", decoded[1].Mapping.Target)
}

func TestStatusesYAML(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatYAML)

	require.NoError(t, r.Statuses(sampleStatuses()))

	var decoded []types.MappingStatus
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, types.StatusConflict, decoded[1].Status)
}

func TestReportText(t *testing.T) {
	report := &types.Report{
		Results: []types.ActionResult{
			{Status: types.ResultSuccess, Message: "linked .bashrc"},
			{Status: types.ResultSkipped, Message: "skipped .vimrc: already linked"},
			{Status: types.ResultFailed, Message: "failed to link .zshrc", Error: "permission denied"},
		},
	}

	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText)
	require.NoError(t, r.Report(report))

	out := buf.String()
	assert.Contains(t, out, "ok linked .bashrc")
	assert.Contains(t, out, "-- skipped .vimrc")
	assert.Contains(t, out, "XX failed to link .zshrc: permission denied")
	assert.Contains(t, out, "1 applied, 1 skipped, 1 failed")
}

func TestReportDryRunSummary(t *testing.T) {
	report := &types.Report{
		DryRun: true,
		Results: []types.ActionResult{
			{Status: types.ResultSuccess, Message: "would link .bashrc"},
		},
	}

	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText)
	require.NoError(t, r.Report(report))
	assert.Contains(t, buf.String(), "1 applied (dry run)")
}

func TestReportJSON(t *testing.T) {
	report := &types.Report{
		Results: []types.ActionResult{
			{Status: types.ResultRefused, Message: "refusing to overwrite .vimrc"},
		},
	}

	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatJSON)
	require.NoError(t, r.Report(report))

	var decoded types.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Results, 1)
	assert.Equal(t, types.ResultRefused, decoded.Results[0].Status)
}

func TestErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatJSON)
	require.NoError(t, r.Error(errors.New("boom")))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "boom", decoded["error"])
}
