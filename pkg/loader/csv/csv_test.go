package csv

import (
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple rows",
			input: "name,type\nweb01,server\n",
			want:  "name,type\nweb01,server\n",
		},
		{
			name:  "skips empty rows",
			input: "name,type\n,\n\nweb01,server\n",
			want:  "name,type\nweb01,server\n",
		},
		{
			name:  "quotes fields with commas",
			input: "name,location\nweb01,\"NYC, DC1\"\n",
			want:  "name,location\nweb01,\"NYC, DC1\"\n",
		},
		{
			name:  "escapes embedded quotes",
			input: "name,note\nweb01,\"the \"\"primary\"\" host\"\n",
			want:  "name,note\nweb01,\"the \"\"primary\"\" host\"\n",
		},
		{
			name:  "adds trailing newline",
			input: "name\nweb01",
			want:  "name\nweb01\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV([]byte(tt.input))
			if err != nil {
				t.Fatalf("ParseCSV() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ParseCSV() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCSVEmpty(t *testing.T) {
	for _, input := range []string{"", "\n\n", ",,\n,,\n"} {
		if _, err := ParseCSV([]byte(input)); err == nil {
			t.Errorf("ParseCSV(%q) expected error, got nil", input)
		}
	}
}

func TestParseCSVRaggedRows(t *testing.T) {
	input := "a,b,c\n1,2\nx,y,z,w\n"
	got, err := ParseCSV([]byte(input))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	for _, line := range []string{"a,b,c", "1,2", "x,y,z,w"} {
		if !strings.Contains(string(got), line) {
			t.Errorf("ParseCSV() output missing line %q: %q", line, got)
		}
	}
}
