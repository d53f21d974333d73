package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// File is a rendered diagram ready to be written.
type File struct {
	// Filename is the name of the file (e.g., "PatientToBundle.flow.puml").
	Filename string
	Content  []byte
}

// Files names the diagrams of one map after base, sorted by diagram name.
// PlantUML sources get ".puml", the rule outline gets ".txt".
func Files(base string, diagrams map[string]string) []File {
	names := make([]string, 0, len(diagrams))
	for name := range diagrams {
		names = append(names, name)
	}

	sort.Strings(names)

	files := make([]File, 0, len(names))

	for _, name := range names {
		ext := ".puml"
		if name == DiagramRules {
			ext = ".txt"
		}

		files = append(files, File{
			Filename: base + "." + name + ext,
			Content:  []byte(diagrams[name]),
		})
	}

	return files
}

// WriteFiles writes all files to the output directory.
// It creates the directory if it doesn't exist.
func WriteFiles(files []File, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}
