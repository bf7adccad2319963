package report

import (
	"path/filepath"

	"github.com/KaramelBytes/csv-inspector/internal/utils"
)

// SummaryFileName is the JSON summary written for every run.
const SummaryFileName = "summary.json"

// SaveJSON writes v as indented UTF-8 JSON to path, creating parent directories.
func SaveJSON(v any, path string) error {
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return renderErr(filepath.Base(path), err)
	}
	return renderErr(filepath.Base(path), utils.SafeWriteFile(path, b))
}
