package utils

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	csvData := `employee_code,kind,timestamp
EMP-001,in,2024-03-01T09:00:00Z
EMP-001,out,2024-03-01T17:30:00Z`

	reader := strings.NewReader(csvData)

	got, err := ParseCSV(reader)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}

	want := [][]string{
		{"employee_code", "kind", "timestamp"},
		{"EMP-001", "in", "2024-03-01T09:00:00Z"},
		{"EMP-001", "out", "2024-03-01T17:30:00Z"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseCSV returned %+v, want %+v", got, want)
	}
}
