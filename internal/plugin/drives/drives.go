// Package drives imports drive records from Excel workbooks into the
// "drives" list of a configuration.
package drives

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"

	"github.com/billie-coop/confed/internal/logging"
	"github.com/billie-coop/confed/internal/navigator"
	"github.com/billie-coop/confed/internal/plugin"
)

const (
	// Scope is the cursor path suffix the importer is offered at
	Scope = "[drives]"
	// Label is the menu row that starts the import
	Label = "[ load drives from Excel ]"

	// SheetName is the worksheet holding one drive per row, after a header row
	SheetName = "Data"

	noWorkbooksText = "There is no Excel (*.xlsx) file that could be imported in this directory.\nMove the desired file to this directory."
	chooseText      = "Select the Excel file you want to import"
)

// Columns read from each row
const (
	unitNameCol   = 0 // A
	unitNumberCol = 2 // C
	moduleNameCol = 8 // I
)

// Every imported drive starts with this trigger configuration
const defaultTriggerInterval = int64(180)

var defaultTriggerTypes = []int64{1, 2, 3}

// Chooser is the part of the presenter the importer needs
type Chooser interface {
	Select(ctx context.Context, title string, items []string, defaultIndex int) (int, error)
}

// Importer is a plugin.Action appending workbook rows to a drives list
type Importer struct {
	fs      afero.Fs
	dir     string
	chooser Chooser
	out     io.Writer
	log     zerolog.Logger
}

// New creates an importer scanning dir on fs for workbooks
func New(fs afero.Fs, dir string, chooser Chooser, out io.Writer) *Importer {
	if out == nil {
		out = io.Discard
	}
	return &Importer{fs: fs, dir: dir, chooser: chooser, out: out, log: logging.Component("drives")}
}

// Register offers the importer at Scope
func Register(reg *plugin.Registry, imp *Importer) {
	reg.Register(Scope, Label, imp)
}

// Apply lets the operator pick a workbook and appends its drives to node
func (i *Importer) Apply(ctx context.Context, node *any) error {
	list, ok := (*node).([]any)
	if !ok {
		return fmt.Errorf("drives must be a list, got %T", *node)
	}

	files, err := i.workbooks()
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Fprintln(i.out, noWorkbooksText)
		_, err := i.chooser.Select(ctx, noWorkbooksText, []string{navigator.BackText}, 0)
		return err
	}

	idx, err := i.chooser.Select(ctx, chooseText, files, 0)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(files) {
		return fmt.Errorf("no workbook at row %d", idx)
	}

	drives, err := i.load(files[idx])
	if err != nil {
		return err
	}

	i.log.Info().Str("workbook", files[idx]).Int("drives", len(drives)).Msg("drives imported")
	*node = append(list[:len(list):len(list)], drives...)
	return nil
}

// workbooks lists the *.xlsx files in the import directory, sorted by name
func (i *Importer) workbooks() ([]string, error) {
	entries, err := afero.ReadDir(i.fs, i.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", i.dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.Mode().IsRegular() && strings.HasSuffix(e.Name(), ".xlsx") {
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)
	return files, nil
}

func (i *Importer) load(name string) ([]any, error) {
	f, err := i.fs.Open(filepath.Join(i.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	drives, err := ReadWorkbook(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return drives, nil
}

// ErrNoDataSheet is returned for workbooks without the Data sheet
var ErrNoDataSheet = errors.New("workbook has no " + SheetName + " sheet")

// ReadWorkbook reads drive records from the Data sheet. Rows start after the
// header and stop at the first row missing a unit name, unit number or
// module name.
func ReadWorkbook(r io.Reader) ([]any, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	if idx, err := wb.GetSheetIndex(SheetName); err != nil || idx < 0 {
		return nil, ErrNoDataSheet
	}

	rows, err := wb.GetRows(SheetName)
	if err != nil {
		return nil, err
	}

	drives := []any{}
	for _, row := range rows[min(1, len(rows)):] {
		unitName, ok1 := cell(row, unitNameCol)
		unitNumber, ok2 := cell(row, unitNumberCol)
		moduleName, ok3 := cell(row, moduleNameCol)
		if !ok1 || !ok2 || !ok3 {
			break
		}
		drives = append(drives, newDrive(unitName, unitNumber, moduleName))
	}
	return drives, nil
}

func cell(row []string, col int) (string, bool) {
	if col >= len(row) || row[col] == "" {
		return "", false
	}
	return row[col], true
}

func newDrive(unitName, unitNumber, moduleName string) map[string]any {
	types := make([]any, len(defaultTriggerTypes))
	for i, t := range defaultTriggerTypes {
		types[i] = t
	}
	return map[string]any{
		"unit_name":            unitName,
		"unit_number":          unitNumber,
		"module_name":          moduleName,
		"trigger_interval_min": defaultTriggerInterval,
		"trigger_type_scheme":  types,
	}
}
