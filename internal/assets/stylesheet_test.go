package assets

import (
	"errors"
	"reflect"
	"testing"

	docpdf "github.com/alnah/go-docpdf"
)

func TestParseStylesheet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
		check   func(t *testing.T, s *Stylesheet)
	}{
		{
			name: "full entry",
			content: `name: house
description: house style
styles:
  - name: Note
    base: BodyText
    font: Courier
    size: 9
    leading: 1.4
    weight: italic
    align: right
    spaceBefore: 0
    spaceAfter: 4
    color: "#336699"
    keepWithNext: true
`,
			check: func(t *testing.T, s *Stylesheet) {
				if s.Name != "house" || len(s.Styles) != 1 {
					t.Fatalf("sheet = %+v", s)
				}
				e := s.Styles[0]
				if e.SpaceBefore == nil || *e.SpaceBefore != 0 {
					t.Errorf("SpaceBefore = %v, want explicit 0", e.SpaceBefore)
				}
				if e.KeepWithNext == nil || !*e.KeepWithNext {
					t.Errorf("KeepWithNext = %v, want true", e.KeepWithNext)
				}
			},
		},
		{
			name:    "unknown key rejected",
			content: "name: x\nstyles:\n  - name: A\n    colour: red\n",
			wantErr: ErrInvalidStylesheet,
		},
		{
			name:    "malformed YAML",
			content: "styles: [unclosed",
			wantErr: ErrInvalidStylesheet,
		},
		{
			name:    "empty content",
			content: "",
			wantErr: ErrInvalidStylesheet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseStylesheet(tt.content)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseStylesheet() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStylesheet() error = %v", err)
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestStyleEntry_Def(t *testing.T) {
	t.Parallel()

	after := 4.0
	keep := true

	tests := []struct {
		name    string
		entry   StyleEntry
		want    docpdf.StyleDef
		wantErr error
		anyErr  bool
	}{
		{
			name: "all fields",
			entry: StyleEntry{
				Name: "Note", Base: "BodyText", Font: "Courier", Size: 9, Leading: 1.4,
				Weight: "bold-italic", Align: "center", SpaceAfter: &after, Color: "#ff0000", KeepWithNext: &keep,
			},
			want: docpdf.StyleDef{
				Name: "Note", Base: "BodyText", Family: "Courier", Size: 9, Leading: 1.4,
				Weight: docpdf.WeightBoldItalic, Alignment: docpdf.AlignCenter, SpaceAfter: &after,
				Color: &docpdf.Color{R: 255}, KeepWithNext: &keep,
			},
		},
		{
			name:  "empty fields inherit",
			entry: StyleEntry{Name: "Plain", Base: "Normal"},
			want:  docpdf.StyleDef{Name: "Plain", Base: "Normal"},
		},
		{
			name:    "missing name",
			entry:   StyleEntry{Base: "Normal"},
			wantErr: ErrInvalidStylesheet,
		},
		{
			name:    "bad alignment",
			entry:   StyleEntry{Name: "A", Align: "middle"},
			wantErr: docpdf.ErrInvalidAlignment,
		},
		{
			name:    "bad weight",
			entry:   StyleEntry{Name: "A", Weight: "heavy"},
			wantErr: docpdf.ErrInvalidWeight,
		},
		{
			name:    "bad colour",
			entry:  StyleEntry{Name: "A", Color: "#12"},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.entry.Def()
			if tt.wantErr != nil || tt.anyErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("Def() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Def() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Def() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEntryDefs_NamesBadEntry(t *testing.T) {
	t.Parallel()

	_, err := EntryDefs([]StyleEntry{{Name: "Ok"}, {Name: "Broken", Weight: "heavy"}})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := err.Error(); !containsAll(got, "style 1", "Broken") {
		t.Errorf("error = %q, want index and name", got)
	}
}

func TestMergeDefs(t *testing.T) {
	t.Parallel()

	base := []docpdf.StyleDef{{Name: "A", Size: 10}, {Name: "B", Base: "A"}}
	got := MergeDefs(base, docpdf.StyleDef{Name: "A", Size: 12}, docpdf.StyleDef{Name: "C", Base: "B"})

	want := []docpdf.StyleDef{{Name: "A", Size: 12}, {Name: "B", Base: "A"}, {Name: "C", Base: "B"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeDefs() = %+v, want %+v", got, want)
	}
	if base[0].Size != 10 {
		t.Error("MergeDefs() mutated its input")
	}
}
