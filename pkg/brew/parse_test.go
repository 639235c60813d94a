package brew

import "testing"

func TestParseVersions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []nameVersion
	}{
		{
			name:  "typical output",
			input: "git 2.46.0\ncurl 8.9.1\n",
			expected: []nameVersion{
				{name: "git", version: "2.46.0"},
				{name: "curl", version: "8.9.1"},
			},
		},
		{
			name:     "multiple versions keeps first",
			input:    "openssl@3 3.3.1 3.2.0\n",
			expected: []nameVersion{{name: "openssl@3", version: "3.3.1"}},
		},
		{
			name:     "malformed lines skipped",
			input:    "git 2.46.0\nbroken\n\n  \n",
			expected: []nameVersion{{name: "git", version: "2.46.0"}},
		},
		{
			name:     "empty output",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseVersions(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d entries, got %d", len(tt.expected), len(got))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("entry %d: expected %+v, got %+v", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestParseTap(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"third party tap", `{"formulae":[{"tap":"hashicorp/tap"}]}`, "hashicorp/tap"},
		{"core normalized", `{"formulae":[{"tap":"homebrew/core"}]}`, ""},
		{"empty formulae", `{"formulae":[]}`, ""},
		{"invalid json", `not json`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseTap([]byte(tt.input)); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
