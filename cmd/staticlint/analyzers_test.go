package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/tools/go/analysis"
)

func names(checks []*analysis.Analyzer) []string {
	out := make([]string, 0, len(checks))
	for _, c := range checks {
		out = append(out, c.Name)
	}
	return out
}

func TestBaseChecks(t *testing.T) {
	got := names(baseChecks())
	assert.Contains(t, got, "exitinmain")
	assert.Contains(t, got, "errcheck")
	assert.Contains(t, got, "printf")
}

func TestSelected(t *testing.T) {
	got := names(selected(ConfigData{Staticcheck: []string{"SA1000", "S1000", "ST1005", "QF1001", "XX0000"}}))
	assert.ElementsMatch(t, []string{"SA1000", "S1000", "ST1005", "QF1001"}, got)

	assert.Empty(t, selected(ConfigData{}))
}
