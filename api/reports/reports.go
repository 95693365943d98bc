// Package reports assembles the association's printable registers and renders
// them as PDF. Table assembly is kept separate from rendering so the row
// logic stays testable without parsing PDF output.
package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/vzo-kneginec/fire-brigade-api/models"
)

const dateLayout = "02.01.2006."

// placeholder marks fields with no recorded value in printed registers
const placeholder = "-"

// Table is one printable register: a title, a scope line and tabular rows
type Table struct {
	Title   string
	Scope   string
	Columns []string
	Rows    [][]string
}

// MemberRoster builds the evidencijski list: every member of the scope with
// role and flags.
func MemberRoster(scope string, users []models.User) Table {
	t := Table{
		Title:   "Evidencijski list clanova",
		Scope:   scope,
		Columns: []string{"Ime i prezime", "Korisnicko ime", "Odjel", "Duznost", "Operativan", "Aktivan"},
	}
	for _, u := range users {
		t.Rows = append(t.Rows, []string{
			orDash(u.FullName),
			u.Username,
			orDash(u.Department),
			orDash(u.Role),
			yesNo(u.IsOperational),
			yesNo(u.IsActive),
		})
	}
	return t
}

// VehicleManifest builds the oprema-vozilo register: equipment grouped under
// the vehicle it is assigned to. Vehicles without equipment still appear with
// a placeholder row.
func VehicleManifest(scope string, vehicles []models.Vehicle, equipment []models.Equipment) Table {
	t := Table{
		Title:   "Oprema po vozilima",
		Scope:   scope,
		Columns: []string{"Vozilo", "Registracija", "Oprema", "Serijski broj", "Stanje", "Sljedeci pregled"},
	}

	byVehicle := make(map[string][]models.Equipment)
	for _, e := range equipment {
		if e.AssignedToVehicle == "" {
			continue
		}
		byVehicle[e.AssignedToVehicle] = append(byVehicle[e.AssignedToVehicle], e)
	}

	for _, v := range vehicles {
		assigned := byVehicle[v.ID]
		if len(assigned) == 0 {
			t.Rows = append(t.Rows, []string{v.Name, orDash(v.RegistrationPlate), placeholder, placeholder, placeholder, placeholder})
			continue
		}
		for _, e := range assigned {
			t.Rows = append(t.Rows, []string{
				v.Name,
				orDash(v.RegistrationPlate),
				e.Name,
				orDash(e.SerialNumber),
				orDash(e.Status),
				FormatDate(e.NextInspection),
			})
		}
	}
	return t
}

// StorageManifest builds the oprema-spremiste register: equipment that sits
// in storage, meaning it has no vehicle assignment.
func StorageManifest(scope string, equipment []models.Equipment) Table {
	t := Table{
		Title:   "Oprema u spremistu",
		Scope:   scope,
		Columns: []string{"Oprema", "Vrsta", "Serijski broj", "Stanje", "Zaduzio", "Sljedeci pregled"},
	}
	for _, e := range equipment {
		if e.AssignedToVehicle != "" {
			continue
		}
		t.Rows = append(t.Rows, []string{
			e.Name,
			orDash(e.Type),
			orDash(e.SerialNumber),
			orDash(e.Status),
			orDash(e.AssignedToUser),
			FormatDate(e.NextInspection),
		})
	}
	return t
}

// PersonalAssignment builds the osobno zaduzenje sheet for one member
func PersonalAssignment(user models.User, equipment []models.Equipment) Table {
	t := Table{
		Title:   "Osobno zaduzenje",
		Scope:   user.FullName + " (" + user.Username + ")",
		Columns: []string{"Oprema", "Vrsta", "Serijski broj", "Stanje", "Sljedeci pregled"},
	}
	for _, e := range equipment {
		if e.AssignedToUser != user.ID {
			continue
		}
		t.Rows = append(t.Rows, []string{
			e.Name,
			orDash(e.Type),
			orDash(e.SerialNumber),
			orDash(e.Status),
			FormatDate(e.NextInspection),
		})
	}
	return t
}

// Render produces the PDF bytes for a table
func Render(t Table) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(t.Title), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(t.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, tr(t.Scope), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, time.Now().Format(dateLayout), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(t.Columns))

	pdf.SetFont("Helvetica", "B", 10)
	for _, col := range t.Columns {
		pdf.CellFormat(colWidth, 8, tr(col), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	if len(t.Rows) == 0 {
		pdf.CellFormat(colWidth*float64(len(t.Columns)), 8, tr("Nema zapisa"), "1", 1, "C", false, 0, "")
	}
	for _, row := range t.Rows {
		for _, cell := range row {
			pdf.CellFormat(colWidth, 7, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename builds the attachment name, e.g.
// evidencijski-list_DVD_Kneginec_Gornji_2026-08-28.pdf
func Filename(kind, scope string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.pdf", kind, scope, now.Format("2006-01-02"))
}

// FormatDate prints a date in the register layout, or a dash when unset
func FormatDate(t *time.Time) string {
	if t == nil {
		return placeholder
	}
	return t.Format(dateLayout)
}

func orDash(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "DA"
	}
	return "NE"
}
