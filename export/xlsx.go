// Package export encodes a school list as a single-sheet xlsx
// workbook for download.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/evaaz/schoolctl/client"
	"github.com/evaaz/schoolctl/locale"
)

// FileName is the fixed name of the exported workbook.
const FileName = "schools.xlsx"

const sheetName = "المدارس"

// headers is the fixed column sequence: five descriptive fields, six
// grade bands, two facility flags, two timestamps.
var headers = []string{
	"اسم المدرسة",
	"المدينة",
	"اسم مدير العقد",
	"رقم الهاتف",
	"البريد الإلكتروني",
	"روضة",
	"ابتدائي (1-4)",
	"ابتدائي (5-6)",
	"متوسط (1-2)",
	"متوسط (3)",
	"ثانوي",
	"معمل حاسب آلي",
	"خدمة الإنترنت",
	"تاريخ الإنشاء",
	"تاريخ التحديث",
}

// Encode produces the workbook bytes: one header row plus one row per
// record, in input order. Facility flags render as نعم/لا and
// timestamps as localized dates; enrollment counts stay numeric.
func Encode(records []client.School) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, sheetName); err != nil {
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("export: header row: %w", err)
	}

	for i, r := range records {
		row := []interface{}{
			r.SchoolName,
			r.City,
			r.ContractManagerName,
			r.PhoneNumber,
			r.Email,
			r.KindergartenStudents,
			r.Primary1to4Students,
			r.Primary5to6Students,
			r.Intermediate1to2Students,
			r.Intermediate3Students,
			r.SecondaryStudents,
			locale.YesNo(r.HasComputerLab),
			locale.YesNo(r.HasInternet),
			locale.FormatDate(r.CreatedAt),
			locale.FormatDate(r.UpdatedAt),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("export: row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("export: row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return buf.Bytes(), nil
}
