package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/trufl/Compile-Lists/internal/dataset"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	return path
}

func TestLoad_CSV(t *testing.T) {
	path := writeFile(t, "main.csv", "Email,VIN\na@x.com,V1\n,V2\n")

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}

	if len(ds.Columns) != 2 || ds.Columns[0] != "email" || ds.Columns[1] != "vin" {
		t.Fatalf("columns = %v, want [email vin]", ds.Columns)
	}

	if len(ds.Rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(ds.Rows))
	}

	if ds.Rows[0]["email"].Text() != "a@x.com" {
		t.Errorf("rows[0].email = %q, want a@x.com", ds.Rows[0]["email"].Text())
	}

	// Empty cell loads as missing, not empty string.
	if ds.Rows[1]["email"].Present() {
		t.Error("empty cell should load as missing")
	}
}

func TestLoad_ShortRowPadsWithMissing(t *testing.T) {
	path := writeFile(t, "short.csv", "email,vin,year\na@x.com\n")

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}

	row := ds.Rows[0]
	if row["vin"].Present() || row["year"].Present() {
		t.Error("cells beyond a short row should be missing")
	}
}

func TestLoad_TSV(t *testing.T) {
	path := writeFile(t, "main.tsv", "email\tvin\na@x.com\tV1\n")

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}

	if ds.Rows[0]["vin"].Text() != "V1" {
		t.Errorf("vin = %q, want V1", ds.Rows[0]["vin"].Text())
	}
}

func TestLoad_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.xlsx")

	f := excelize.NewFile()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]string{"Email", "VIN"}); err != nil {
		t.Fatalf("failed to build workbook fixture: %v", err)
	}

	if err := f.SetSheetRow(sheet, "A2", &[]string{"a@x.com", "V1"}); err != nil {
		t.Fatalf("failed to build workbook fixture: %v", err)
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook fixture: %v", err)
	}

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}

	if len(ds.Rows) != 1 {
		t.Fatalf("row count = %d, want 1", len(ds.Rows))
	}

	if ds.Rows[0]["email"].Text() != "a@x.com" || ds.Rows[0]["vin"].Text() != "V1" {
		t.Errorf("row = %v, want email=a@x.com vin=V1", ds.Rows[0])
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	for _, name := range []string{"data.json", "data.xls", "data"} {
		_, err := Load(filepath.Join(t.TempDir(), name))
		if err == nil {
			t.Errorf("Load(%q) expected error", name)

			continue
		}

		var formatErr *UnsupportedFormatError
		if !errors.As(err, &formatErr) {
			t.Errorf("Load(%q) error type = %T, want *UnsupportedFormatError", name, err)
		}
	}
}

func TestSave_RoundTrip(t *testing.T) {
	ds := dataset.New([]string{"email", "vin"})
	ds.Append(dataset.Record{"email": dataset.String("a@x.com"), "vin": dataset.String("V1")})
	ds.Append(dataset.Record{"vin": dataset.String("V2")}) // missing email

	path := filepath.Join(t.TempDir(), "out", "final.csv")

	if err := Save(ds, path); err != nil {
		t.Fatalf("Save returned unexpected error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load after Save returned unexpected error: %v", err)
	}

	if len(loaded.Rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(loaded.Rows))
	}

	if loaded.Rows[0]["email"].Text() != "a@x.com" {
		t.Errorf("rows[0].email = %q, want a@x.com", loaded.Rows[0]["email"].Text())
	}

	// Missing serialized as empty field, loaded back as missing.
	if loaded.Rows[1]["email"].Present() {
		t.Error("missing value should survive the round trip as missing")
	}
}
