package loader

import (
	"context"
)

type GraphFileType string

const (
	GraphFileTypeDocument GraphFileType = "document"
	GraphFileTypeCSV      GraphFileType = "csv"
	GraphFileTypeFile     GraphFileType = "file"
)

// GraphFile represents a single input file for graph extraction. It carries
// metadata such as the file path, the per-unit token limit, and the loader
// responsible for producing the file's text content.
type GraphFile struct {
	ID          string
	FilePath    string
	FileType    GraphFileType
	MaxTokens   int
	Loader      GraphFileLoader
	Description string
}

// NewGraphFileParams defines the input parameters for creating a new GraphFile
// instance. It is used by the constructor functions to initialize GraphFile
// values with consistent metadata and loader configuration.
type NewGraphFileParams struct {
	ID        string
	FilePath  string
	MaxTokens int
	Loader    GraphFileLoader
}

// NewGraphDocumentFile creates a new GraphFile of type GraphFileTypeDocument.
// This is used for text-based documents such as PDFs, Word files, spreadsheets,
// and plain text files.
func NewGraphDocumentFile(
	params NewGraphFileParams,
) GraphFile {
	return GraphFile{
		ID:        params.ID,
		FilePath:  params.FilePath,
		FileType:  GraphFileTypeDocument,
		MaxTokens: params.MaxTokens,
		Loader:    params.Loader,
	}
}

// NewGraphCSVFile creates a new GraphFile of type GraphFileTypeCSV. CSV files
// are chunked row-wise with the header repeated per unit, so tabular exports
// keep their column context.
func NewGraphCSVFile(params NewGraphFileParams) GraphFile {
	return GraphFile{
		ID:        params.ID,
		FilePath:  params.FilePath,
		FileType:  GraphFileTypeCSV,
		MaxTokens: params.MaxTokens,
		Loader:    params.Loader,
	}
}

// NewGraphGenericFile creates a new GraphFile of type GraphFileTypeFile whose
// content is the given description string. No loader is consulted; this is
// useful for injecting inline text into a processing run.
func NewGraphGenericFile(
	params NewGraphFileParams,
	description string,
) GraphFile {
	return GraphFile{
		ID:          params.ID,
		FilePath:    params.FilePath,
		FileType:    GraphFileTypeFile,
		MaxTokens:   params.MaxTokens,
		Loader:      params.Loader,
		Description: description,
	}
}

// GetText retrieves the raw text content of the file using its Loader.
//
// Example:
//
//	text, err := file.GetText(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(string(text))
func (f *GraphFile) GetText(ctx context.Context) ([]byte, error) {
	if f.FileType == GraphFileTypeFile {
		return []byte(f.Description), nil
	}
	return f.Loader.GetFileText(ctx, *f)
}

// GraphFileLoader defines the interface for loading the contents of a GraphFile.
// Implementations may load files from disk, object storage, or other sources.
type GraphFileLoader interface {
	GetFileText(ctx context.Context, file GraphFile) ([]byte, error)
}

// CacheKey returns the cache key used by loaders to deduplicate work for the
// same file across concurrent callers.
func CacheKey(file GraphFile) string {
	return file.ID + ":" + file.FilePath
}
