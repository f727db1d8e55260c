package adapters

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"robot-models/internal/types"
)

// ReportFileAdapter writes resolution reports under an output
// directory.
type ReportFileAdapter struct {
	Dir string
}

func NewReportFileAdapter(dir string) ReportFileAdapter {
	return ReportFileAdapter{Dir: dir}
}

func (a ReportFileAdapter) WriteResolutionReport(report types.ResolutionReport) error {
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	sort.Strings(report.Required)
	sort.Slice(report.Selections, func(i, j int) bool {
		return report.Selections[i].Required < report.Selections[j].Required
	})
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode resolution report").
			WithCause(err)
	}
	path := filepath.Join(a.Dir, "resolution.yaml")
	return os.WriteFile(path, data, 0644)
}
