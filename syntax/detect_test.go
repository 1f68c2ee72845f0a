package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		content  string
		want     string
	}{
		{name: "go by extension", filename: "/src/main.go", want: "Go"},
		{name: "rust by extension", filename: "lib.rs", want: "Rust"},
		{name: "python by extension", filename: "x/y/tool.py", want: "Python"},
		{name: "shebang content", filename: "script", content: "#!/bin/bash\necho hi\n", want: "Bash"},
		{name: "unknown", filename: "notes.zzqq", want: PlainText},
		{name: "empty", want: PlainText},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Detect(tc.filename, tc.content))
		})
	}
}

func TestLanguagesIncludesCommonLexers(t *testing.T) {
	names := Languages()
	assert.Contains(t, names, "Go")
	assert.Contains(t, names, "Rust")
}
