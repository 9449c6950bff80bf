package output

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Row is a value that can be shown as one table row.
type Row interface {
	TableHeader() []string
	TableRow() []string
}

var rowType = reflect.TypeOf((*Row)(nil)).Elem()

// tableOf extracts the header and rows of a Row or a slice of Rows.
func tableOf(v any) (header []string, rows [][]string, ok bool) {
	if r, isRow := v.(Row); isRow {
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
			return r.TableHeader(), nil, true
		}
		return r.TableHeader(), [][]string{r.TableRow()}, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || !rv.Type().Elem().Implements(rowType) {
		return nil, nil, false
	}

	// The zero element supplies the header of an empty slice.
	header = reflect.Zero(rv.Type().Elem()).Interface().(Row).TableHeader()
	rows = make([][]string, 0, rv.Len())
	for i := range rv.Len() {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Ptr && elem.IsNil() {
			continue
		}
		rows = append(rows, elem.Interface().(Row).TableRow())
	}
	return header, rows, true
}

// renderTable draws header and rows with the printer's styles.
// nonNil turns a nil slice into an empty one so that it encodes as [].
func nonNil(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return reflect.MakeSlice(rv.Type(), 0, 0).Interface()
	}
	return v
}

func (p *Printer) renderTable(header []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.styles.Border).
		Headers(header...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.styles.Header
			}
			return p.styles.Cell
		})
	return t.String()
}
