package schema

import (
	"slices"
	"testing"
)

func TestTable_ReadFallbackOrder(t *testing.T) {
	tests := []struct {
		field Field
		want  []Key
	}{
		{FieldTitle, []Key{XmpTitle, IptcHeadline}},
		{FieldDescription, []Key{XmpDescription, IptcCaption, ExifImageDescription}},
		{FieldKeywords, []Key{XmpSubject, IptcKeywords}},
		{FieldDateTaken, []Key{ExifDateTimeOriginal}},
		{FieldAuthor, []Key{XmpCreator, IptcByline}},
		{FieldCopyright, []Key{XmpRights, IptcCopyright}},
	}

	for _, tt := range tests {
		t.Run(tt.field.String(), func(t *testing.T) {
			m, ok := Lookup(tt.field)
			if !ok {
				t.Fatalf("Lookup(%v) not found", tt.field)
			}
			if !slices.Equal(m.Read, tt.want) {
				t.Errorf("Read = %v, want %v", m.Read, tt.want)
			}
		})
	}
}

func TestTable_DateTakenReadOnly(t *testing.T) {
	m, ok := Lookup(FieldDateTaken)
	if !ok {
		t.Fatal("date_taken missing from table")
	}
	if !m.ReadOnly() {
		t.Errorf("date_taken should be read-only, Write = %v", m.Write)
	}

	for _, row := range Table {
		if row.Field != FieldDateTaken && row.ReadOnly() {
			t.Errorf("%s unexpectedly read-only", row.Field)
		}
		if slices.Contains(row.Write, ExifDateTimeOriginal) {
			t.Errorf("%s writes DateTimeOriginal", row.Field)
		}
	}
}

func TestTable_OrderMatchesFields(t *testing.T) {
	for i, row := range Table {
		if int(row.Field) != i {
			t.Errorf("Table[%d].Field = %v", i, row.Field)
		}
	}
}

func TestKey_Namespace(t *testing.T) {
	tests := []struct {
		key  Key
		want Namespace
	}{
		{XmpTitle, NamespaceXMP},
		{IptcKeywords, NamespaceIPTC},
		{ExifDateTimeOriginal, NamespaceEXIF},
		{Key("Foo.bar"), NamespaceUnknown},
		{Key(""), NamespaceUnknown},
	}

	for _, tt := range tests {
		if got := tt.key.Namespace(); got != tt.want {
			t.Errorf("%q.Namespace() = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestKey_Classification(t *testing.T) {
	if !IptcKeywords.Repeatable() {
		t.Error("IPTC keywords should be repeatable")
	}
	if IptcKeywords.MultiValue() {
		t.Error("IPTC keywords should not be multi-value")
	}
	if !XmpSubject.MultiValue() {
		t.Error("XMP subject should be multi-value")
	}
	if XmpTitle.Repeatable() || XmpTitle.MultiValue() {
		t.Error("XMP title should be a single value")
	}
}

func TestTable_ReadKeysUnique(t *testing.T) {
	seen := make(map[Key]bool)
	for _, m := range Table {
		for _, k := range m.Read {
			if seen[k] {
				t.Errorf("%s read by more than one field", k)
			}
			seen[k] = true
		}
	}
	if len(seen) != 12 {
		t.Errorf("table reads %d keys, want 12", len(seen))
	}
}

func TestField_String(t *testing.T) {
	if got := FieldDateTaken.String(); got != "date_taken" {
		t.Errorf("String() = %q", got)
	}
	if got := Field(42).String(); got != "unknown" {
		t.Errorf("String() = %q", got)
	}
}
