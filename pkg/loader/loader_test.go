package loader

import (
	"context"
	"testing"
)

type echoLoader struct {
	text []byte
}

func (l *echoLoader) GetFileText(ctx context.Context, file GraphFile) ([]byte, error) {
	return l.text, nil
}

func TestGetTextGenericFileUsesDescription(t *testing.T) {
	file := NewGraphGenericFile(NewGraphFileParams{
		ID:       "f1",
		FilePath: "notes",
	}, "John Doe manages Web Server 01.")

	got, err := file.GetText(context.Background())
	if err != nil {
		t.Fatalf("GetText() error = %v", err)
	}
	if string(got) != "John Doe manages Web Server 01." {
		t.Errorf("GetText() = %q", got)
	}
}

func TestGetTextDelegatesToLoader(t *testing.T) {
	file := NewGraphDocumentFile(NewGraphFileParams{
		ID:       "f1",
		FilePath: "report.txt",
		Loader:   &echoLoader{text: []byte("loaded content")},
	})

	got, err := file.GetText(context.Background())
	if err != nil {
		t.Fatalf("GetText() error = %v", err)
	}
	if string(got) != "loaded content" {
		t.Errorf("GetText() = %q", got)
	}
}

func TestCacheKey(t *testing.T) {
	file := GraphFile{ID: "abc", FilePath: "exports/inventory.csv"}
	if got := CacheKey(file); got != "abc:exports/inventory.csv" {
		t.Errorf("CacheKey() = %q", got)
	}
}

func TestFileTypeConstructors(t *testing.T) {
	tests := []struct {
		name string
		file GraphFile
		want GraphFileType
	}{
		{"document", NewGraphDocumentFile(NewGraphFileParams{ID: "1"}), GraphFileTypeDocument},
		{"csv", NewGraphCSVFile(NewGraphFileParams{ID: "2"}), GraphFileTypeCSV},
		{"generic", NewGraphGenericFile(NewGraphFileParams{ID: "3"}, "text"), GraphFileTypeFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.file.FileType != tt.want {
				t.Errorf("FileType = %q, want %q", tt.file.FileType, tt.want)
			}
		})
	}
}
