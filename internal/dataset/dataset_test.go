package dataset

import (
	"errors"
	"testing"
)

func TestValue_Zero(t *testing.T) {
	var v Value

	if !v.Missing() {
		t.Error("zero Value should be missing")
	}

	if v.Text() != "" {
		t.Errorf("Text() = %q, want empty", v.Text())
	}
}

func TestValue_EmptyStringIsPresent(t *testing.T) {
	v := String("")

	if v.Missing() {
		t.Error("String(\"\") should be present, not missing")
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Email", "email"},
		{"  VIN  ", "vin"},
		{"Model Year", "model year"},
		{"email", "email"},
	}

	for _, tt := range tests {
		if got := Canonicalize(tt.in); got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNew_CanonicalizesColumns(t *testing.T) {
	ds := New([]string{" Email ", "VIN", "Model Year"})

	want := []string{"email", "vin", "model year"}
	for i, col := range want {
		if ds.Columns[i] != col {
			t.Errorf("Columns[%d] = %q, want %q", i, ds.Columns[i], col)
		}
	}

	if !ds.HasColumn("EMAIL") {
		t.Error("HasColumn should match case-insensitively via canonicalization")
	}
}

func TestRecord_Clone(t *testing.T) {
	r := Record{"email": String("a@x.com")}
	c := r.Clone()

	c["email"] = String("b@x.com")

	if r["email"].Text() != "a@x.com" {
		t.Error("mutating a clone changed the original record")
	}
}

func TestRequireColumns(t *testing.T) {
	ds := New([]string{"email", "vin"})

	if err := ds.RequireColumns("email", "vin"); err != nil {
		t.Errorf("RequireColumns returned unexpected error: %v", err)
	}

	err := ds.RequireColumns("email", "year")
	if err == nil {
		t.Fatal("RequireColumns expected error for absent column")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error type = %T, want *SchemaError", err)
	}

	if schemaErr.Column != "year" {
		t.Errorf("SchemaError.Column = %q, want %q", schemaErr.Column, "year")
	}
}

func TestDropColumn(t *testing.T) {
	ds := New([]string{"email", "email2", "vin"})
	ds.Append(Record{"email": String("a@x.com"), "email2": String("b@x.com")})

	ds.DropColumn("email2")

	if ds.HasColumn("email2") {
		t.Error("email2 still in schema after DropColumn")
	}

	if _, ok := ds.Rows[0]["email2"]; ok {
		t.Error("email2 still present in record after DropColumn")
	}

	if len(ds.Columns) != 2 {
		t.Errorf("len(Columns) = %d, want 2", len(ds.Columns))
	}
}

func TestRename(t *testing.T) {
	ds := New([]string{"Email Address", "vin"})
	ds.Append(Record{"email address": String("a@x.com"), "vin": String("V1")})

	ds.Rename(map[string]string{"email address": "email"})

	if ds.Columns[0] != "email" {
		t.Errorf("Columns[0] = %q, want %q", ds.Columns[0], "email")
	}

	if ds.Rows[0]["email"].Text() != "a@x.com" {
		t.Error("record value did not move to renamed column")
	}

	if _, ok := ds.Rows[0]["email address"]; ok {
		t.Error("old column key still present in record after rename")
	}

	if ds.Columns[1] != "vin" {
		t.Error("unmapped column should keep its name")
	}
}

func TestReindex(t *testing.T) {
	ds := New([]string{"email", "phone"})
	ds.Append(Record{"email": String("a@x.com"), "phone": String("555")})

	out := ds.Reindex([]string{"vin", "email"})

	if len(out.Columns) != 2 || out.Columns[0] != "vin" || out.Columns[1] != "email" {
		t.Fatalf("Reindex columns = %v, want [vin email]", out.Columns)
	}

	row := out.Rows[0]

	if row["email"].Text() != "a@x.com" {
		t.Error("shared column value not kept")
	}

	if row["vin"].Present() {
		t.Error("target column absent from source should read missing")
	}

	if _, ok := row["phone"]; ok {
		t.Error("column outside the target schema should be dropped")
	}
}

func TestValueSet(t *testing.T) {
	ds := New([]string{"vin"})
	ds.Append(Record{"vin": String("V1")})
	ds.Append(Record{})
	ds.Append(Record{"vin": String("V1")})
	ds.Append(Record{"vin": String("V2")})

	set := ds.ValueSet("vin")

	if len(set) != 2 || !set["V1"] || !set["V2"] {
		t.Errorf("ValueSet = %v, want {V1, V2}", set)
	}
}

func TestDataset_Clone_Independent(t *testing.T) {
	ds := New([]string{"email"})
	ds.Append(Record{"email": String("a@x.com")})

	c := ds.Clone()
	c.Rows[0]["email"] = String("b@x.com")
	c.Columns[0] = "changed"

	if ds.Rows[0]["email"].Text() != "a@x.com" {
		t.Error("clone shares records with the original")
	}

	if ds.Columns[0] != "email" {
		t.Error("clone shares the column slice with the original")
	}
}
