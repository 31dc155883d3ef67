// Package suggest is the mock autocomplete provider. Suggestions are a
// pure function of code, cursor position and language; the provider
// shares no state with the collaboration plane.
package suggest

import "strings"

type Suggestion struct {
	Text       string
	Confidence float64
	Context    string
}

type Service struct{}

func New() *Service { return &Service{} }

func (s *Service) Suggest(code string, cursorPos int, language string) Suggestion {
	if cursorPos < 0 {
		cursorPos = 0
	}
	if cursorPos > len(code) {
		cursorPos = len(code)
	}
	before := code[:cursorPos]
	lines := strings.Split(before, "\n")
	current := lines[len(lines)-1]

	switch language {
	case "python":
		return pythonSuggestion(current)
	case "javascript":
		return javascriptSuggestion(current)
	}
	return Suggestion{}
}

// pattern pairs stay ordered; earlier rules win.
var pythonPatterns = []struct {
	trigger string
	text    string
}{
	{"with open(", "filename, \"r\") as f:\n    content = f.read()"},
	{"return ", "result"},
	{"raise ", "ValueError(\"Invalid input\")"},
}

var pythonImports = []struct {
	prefix string
	text   string
}{
	{"import pandas", " as pd"},
	{"import numpy", " as np"},
	{"import matplotlib", ".pyplot as plt"},
	{"from typing", " import List, Dict, Optional"},
}

func pythonSuggestion(currentLine string) Suggestion {
	line := strings.TrimSpace(currentLine)

	if strings.HasPrefix(line, "def ") && strings.Contains(line, "(") && !strings.Contains(line, ")") {
		return Suggestion{
			Text:       "self, *args, **kwargs):\n    \"\"\"\n    Description\n    \"\"\"\n    pass",
			Confidence: 0.85,
			Context:    "function_definition",
		}
	}

	if strings.HasPrefix(line, "class ") && !strings.Contains(line, ":") {
		return Suggestion{
			Text:       ":\n    def __init__(self):\n        pass",
			Confidence: 0.9,
			Context:    "class_definition",
		}
	}

	if strings.Contains(line, "import ") {
		for _, imp := range pythonImports {
			if strings.HasPrefix(line, imp.prefix) && !strings.Contains(line, imp.text[:4]) {
				return Suggestion{Text: imp.text, Confidence: 0.95, Context: "import"}
			}
		}
	}

	if strings.HasPrefix(line, "for ") && !strings.Contains(line, ":") {
		return Suggestion{
			Text:       "i in range(len(items)):\n    print(i)",
			Confidence: 0.8,
			Context:    "for_loop",
		}
	}

	if strings.HasPrefix(line, "if ") && !strings.Contains(line, ":") {
		return Suggestion{
			Text:       "condition:\n    # TODO: implement\n    pass",
			Confidence: 0.75,
			Context:    "conditional",
		}
	}

	if strings.Contains(line, "print(") && strings.Count(line, "(") > strings.Count(line, ")") {
		return Suggestion{
			Text:       "f\"{variable}\")",
			Confidence: 0.7,
			Context:    "print_statement",
		}
	}

	if strings.HasPrefix(line, "try:") {
		return Suggestion{
			Text:       "\n    # code here\nexcept Exception as e:\n    print(f\"Error: {e}\")",
			Confidence: 0.85,
			Context:    "exception_handling",
		}
	}

	for _, p := range pythonPatterns {
		if strings.Contains(line, p.trigger) {
			return Suggestion{Text: p.text, Confidence: 0.7, Context: "pattern_match"}
		}
	}

	return Suggestion{}
}

func javascriptSuggestion(currentLine string) Suggestion {
	line := strings.TrimSpace(currentLine)

	if strings.HasPrefix(line, "function ") {
		return Suggestion{
			Text:       "(params) {\n  // implementation\n}",
			Confidence: 0.85,
			Context:    "function",
		}
	}

	if strings.HasPrefix(line, "const ") {
		return Suggestion{
			Text:       "= ",
			Confidence: 0.75,
			Context:    "variable",
		}
	}

	return Suggestion{}
}
