package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"META", META},
		{"SEARCH", SEARCH},
		{"STATE", STATE},
		{"NODE", NODE},
		{"invalid", META}, // default case
		{"", META},        // default case
	}

	for _, test := range tests {
		result := ParseLevel(test.input)
		if result != test.expected {
			t.Errorf("ParseLevel(%s) = %d; expected %d", test.input, result, test.expected)
		}
	}
}

func TestSetLevel(t *testing.T) {
	originalLevel := currentLevel
	defer func() {
		currentLevel = originalLevel
	}()

	SetLevel(META)
	if currentLevel != META {
		t.Errorf("Expected log level to be META, got %d", currentLevel)
	}

	SetLevel(STATE)
	if currentLevel != STATE {
		t.Errorf("Expected log level to be STATE, got %d", currentLevel)
	}
}

func TestLoggingFunctions(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := std.logger
	std.logger = log.New(&buf, "", 0)
	defer func() {
		std.logger = originalLogger
	}()

	// NODE level should log everything.
	SetLevel(NODE)
	buf.Reset()

	Meta("Meta message")
	Search("Search message")
	State("State message")
	Node("Node message")

	output := buf.String()
	expectedMessages := []string{
		"META: Meta message",
		"SEARCH: Search message",
		"STATE: State message",
		"NODE: Node message",
	}

	for _, expected := range expectedMessages {
		if !strings.Contains(output, expected) {
			t.Errorf("Expected output to contain '%s', got: %s", expected, output)
		}
	}

	// SEARCH level should only log META and SEARCH.
	SetLevel(SEARCH)
	buf.Reset()

	Meta("Meta message 2")
	Search("Search message 2")
	State("State message 2")
	Node("Node message 2")

	output = buf.String()

	if !strings.Contains(output, "META: Meta message 2") {
		t.Errorf("Expected META message to be logged at SEARCH level")
	}
	if !strings.Contains(output, "SEARCH: Search message 2") {
		t.Errorf("Expected SEARCH message to be logged at SEARCH level")
	}
	if strings.Contains(output, "STATE: State message 2") {
		t.Errorf("Expected STATE message NOT to be logged at SEARCH level")
	}
	if strings.Contains(output, "NODE: Node message 2") {
		t.Errorf("Expected NODE message NOT to be logged at SEARCH level")
	}

	// META level should only log META.
	SetLevel(META)
	buf.Reset()

	Meta("Meta message 3")
	Search("Search message 3")

	output = buf.String()

	if !strings.Contains(output, "META: Meta message 3") {
		t.Errorf("Expected META message to be logged at META level")
	}
	if strings.Contains(output, "SEARCH: Search message 3") {
		t.Errorf("Expected SEARCH message NOT to be logged at META level")
	}
}

func TestLoggingWithFormatting(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := std.logger
	std.logger = log.New(&buf, "", 0)
	defer func() {
		std.logger = originalLogger
	}()

	SetLevel(NODE)
	buf.Reset()

	Search("depth %d, nodes %d", 5, 1200)
	State("phase transition: %s -> %s", "main1", "combat")

	output := buf.String()

	if !strings.Contains(output, "SEARCH: depth 5, nodes 1200") {
		t.Errorf("Expected formatted SEARCH message, got: %s", output)
	}
	if !strings.Contains(output, "STATE: phase transition: main1 -> combat") {
		t.Errorf("Expected formatted STATE message, got: %s", output)
	}
}
