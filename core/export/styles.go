package export

import "github.com/xuri/excelize/v2"

// Report palette, matching the web UI.
const (
	colorHeader        = "334155"
	colorReferenceRow  = "FEF9C3"
	colorComparandRow  = "DCFCE7"
	colorMismatchCell  = "FECACA"
	colorMismatchFont  = "7F1D1D"
	colorReferenceOnly = "FDE68A"
	colorComparandOnly = "FECDD3"
	colorSectionTitle  = "F3F4F6"
	colorBorder        = "D1D5DB"
	colorAllMatched    = "16A34A"
)

// styles holds the excelize style ids used by the report.
type styles struct {
	title         int
	header        int
	referenceRow  int
	comparandRow  int
	mismatchCell  int
	referenceOnly int
	comparandOnly int
	allMatched    int
}

type styleDef struct {
	id    *int
	style *excelize.Style
}

func solid(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func thinBorder() []excelize.Border {
	border := make([]excelize.Border, 0, 4)
	for _, side := range []string{"left", "right", "top", "bottom"} {
		border = append(border, excelize.Border{Type: side, Color: colorBorder, Style: 1})
	}
	return border
}

func newStyles(f *excelize.File) (*styles, error) {
	s := &styles{}
	defs := []styleDef{
		{&s.title, &excelize.Style{
			Fill: solid(colorSectionTitle),
			Font: &excelize.Font{Bold: true, Size: 11},
		}},
		{&s.header, &excelize.Style{
			Fill:      solid(colorHeader),
			Font:      &excelize.Font{Bold: true, Size: 10, Color: "FFFFFF"},
			Border:    thinBorder(),
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}},
		{&s.referenceRow, &excelize.Style{Fill: solid(colorReferenceRow), Border: thinBorder()}},
		{&s.comparandRow, &excelize.Style{Fill: solid(colorComparandRow), Border: thinBorder()}},
		{&s.mismatchCell, &excelize.Style{
			Fill:   solid(colorMismatchCell),
			Font:   &excelize.Font{Bold: true, Color: colorMismatchFont},
			Border: thinBorder(),
		}},
		{&s.referenceOnly, &excelize.Style{Fill: solid(colorReferenceOnly), Border: thinBorder()}},
		{&s.comparandOnly, &excelize.Style{Fill: solid(colorComparandOnly), Border: thinBorder()}},
		{&s.allMatched, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 12, Color: colorAllMatched}}},
	}

	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return nil, err
		}
		*d.id = id
	}
	return s, nil
}
