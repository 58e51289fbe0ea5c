package export

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/docsheet/constants"
	"github.com/joseph-ayodele/docsheet/internal/common"
	"github.com/joseph-ayodele/docsheet/internal/table"
)

// OutputFileName is the default spreadsheet name for a run finished at now.
func OutputFileName(now time.Time) string {
	return constants.OutputFilePrefix + now.Format(constants.OutputTimeLayout) + ".xlsx"
}

// WriteFile renders t and writes it to path, creating parent directories.
func WriteFile(path string, t *table.Table) error {
	data, err := WriteXLSX(t)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return common.NewKindError(common.KindFileIO, "create output dir", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return common.NewKindError(common.KindFileIO, "write "+path, err)
	}
	return nil
}

// ReadFile opens path and reads it with ReadXLSX.
func ReadFile(path string) (*table.Table, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, common.NewKindError(common.KindFileIO, "open "+path, err)
	}
	defer func() { _ = fh.Close() }()
	return ReadXLSX(fh)
}
