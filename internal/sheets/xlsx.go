package sheets

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/xuri/excelize/v2"
)

// XLSXSource reads tabs from an exported .xlsx workbook on disk. It is the
// offline backend: the same tournament spreadsheet downloaded as a file.
type XLSXSource struct {
	path string
}

var _ Source = (*XLSXSource)(nil)

// NewXLSXSource creates a Source over the workbook at path. The file is
// opened per call so a re-downloaded export is picked up without a restart.
func NewXLSXSource(path string) *XLSXSource {
	return &XLSXSource{path: path}
}

// GetRows returns the cells of one worksheet. The spreadsheetID is ignored:
// the workbook file itself is the spreadsheet.
func (x *XLSXSource) GetRows(_, tab string) ([][]string, error) {
	f, err := excelize.OpenFile(x.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("workbook %s: %w", x.path, ErrSheetNotFound)
		}
		return nil, fmt.Errorf("failed to open workbook %s: %w", x.path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Error("Failed to close workbook", "path", x.path, "error", err)
		}
	}()

	rows, err := f.GetRows(tab)
	if err != nil {
		var sheetErr excelize.ErrSheetNotExist
		if errors.As(err, &sheetErr) {
			return nil, fmt.Errorf("tab %s: %w", tab, ErrTabNotFound)
		}
		return nil, fmt.Errorf("failed to read tab %s: %w", tab, err)
	}
	return rows, nil
}
