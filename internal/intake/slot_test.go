package intake

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pdf(name string) File {
	return NewMemoryFile(name, "application/pdf", []byte("%PDF-1.4"))
}

func TestSlotSubmit(t *testing.T) {
	tests := []struct {
		name      string
		maxCount  int
		existing  []File
		batch     []File
		wantFiles []string
		wantError string
		wantEmits int
	}{
		{
			name:      "accepted pdf",
			maxCount:  1,
			batch:     []File{pdf("rfp.pdf")},
			wantFiles: []string{"rfp.pdf"},
			wantEmits: 1,
		},
		{
			name:      "wrong media type",
			maxCount:  1,
			batch:     []File{NewMemoryFile("notes.txt", "text/plain", nil)},
			wantError: "Please upload only application/pdf files.",
		},
		{
			name:      "one bad file rejects the batch",
			maxCount:  3,
			batch:     []File{pdf("a.pdf"), NewMemoryFile("b.docx", "application/msword", nil)},
			wantError: "Some files were rejected.",
		},
		{
			name:      "over capacity",
			maxCount:  1,
			existing:  []File{pdf("first.pdf")},
			batch:     []File{pdf("second.pdf")},
			wantFiles: []string{"first.pdf"},
			wantError: "You can only upload up to 1 files.",
			wantEmits: 1,
		},
		{
			name:      "arrival order kept",
			maxCount:  3,
			batch:     []File{pdf("a.pdf"), pdf("b.pdf"), pdf("c.pdf")},
			wantFiles: []string{"a.pdf", "b.pdf", "c.pdf"},
			wantEmits: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emits := 0
			slot := NewSlot("rfp", []string{"application/pdf"}, tt.maxCount, WithListener(func([]File) { emits++ }))
			if len(tt.existing) > 0 {
				slot.Submit(tt.existing)
			}
			slot.Submit(tt.batch)

			var names []string
			for _, f := range slot.Files() {
				names = append(names, f.Name)
			}
			if strings.Join(names, ",") != strings.Join(tt.wantFiles, ",") {
				t.Errorf("files = %v, want %v", names, tt.wantFiles)
			}
			if tt.wantError == "" && slot.Error() != "" {
				t.Errorf("unexpected error message %q", slot.Error())
			}
			if tt.wantError != "" && !strings.Contains(slot.Error(), tt.wantError) {
				t.Errorf("error = %q, want it to contain %q", slot.Error(), tt.wantError)
			}
			if emits != tt.wantEmits {
				t.Errorf("listener called %d times, want %d", emits, tt.wantEmits)
			}
		})
	}
}

func TestSlotCapacityInvariant(t *testing.T) {
	slot := NewSlot("proposal", []string{"application/pdf"}, 2)
	for i := 0; i < 5; i++ {
		slot.Submit([]File{pdf("p.pdf")})
		if slot.Len() > slot.MaxCount() {
			t.Fatalf("slot holds %d files, max is %d", slot.Len(), slot.MaxCount())
		}
	}
	if slot.Len() != 2 {
		t.Errorf("expected slot to be full, got %d files", slot.Len())
	}
	if !strings.Contains(slot.Error(), "up to 2 files") {
		t.Errorf("expected capacity error, got %q", slot.Error())
	}
}

func TestSlotErrorClearedOnSuccess(t *testing.T) {
	slot := NewSlot("rfp", []string{"application/pdf"}, 1)
	slot.Submit([]File{NewMemoryFile("x.png", "image/png", nil)})
	if slot.Error() == "" {
		t.Fatal("expected error after rejected drop")
	}
	slot.Submit([]File{pdf("ok.pdf")})
	if slot.Error() != "" {
		t.Errorf("expected error cleared, got %q", slot.Error())
	}
}

func TestSlotRemove(t *testing.T) {
	slot := NewSlot("rfp", []string{"application/pdf"}, 3)
	slot.Submit([]File{pdf("a.pdf"), pdf("dup.pdf"), pdf("dup.pdf")})

	slot.Remove("missing.pdf")
	if slot.Len() != 3 {
		t.Fatalf("removing an unknown name changed the slot: %d files", slot.Len())
	}

	slot.Remove("dup.pdf")
	files := slot.Files()
	if len(files) != 2 || files[0].Name != "a.pdf" || files[1].Name != "dup.pdf" {
		t.Errorf("unexpected files after remove: %+v", files)
	}

	slot.Remove("dup.pdf")
	slot.Remove("dup.pdf")
	if slot.Len() != 1 {
		t.Errorf("expected one file left, got %d", slot.Len())
	}
}

func TestSlotClear(t *testing.T) {
	slot := NewSlot("rfp", []string{"application/pdf"}, 1)
	slot.Submit([]File{pdf("a.pdf")})
	slot.Submit([]File{pdf("b.pdf")})
	if slot.Error() == "" {
		t.Fatal("expected a capacity error before clearing")
	}

	slot.Clear()
	if slot.Len() != 0 || slot.Error() != "" {
		t.Errorf("expected empty slot without error, got %d files and %q", slot.Len(), slot.Error())
	}

	slot.Submit([]File{pdf("b.pdf")})
	if slot.Len() != 1 {
		t.Errorf("expected slot to accept after clear, got %d files", slot.Len())
	}
}

func TestSlotCheckDoesNotMutate(t *testing.T) {
	slot := NewSlot("rfp", []string{"application/pdf"}, 1)
	err := slot.Check([]File{NewMemoryFile("a.txt", "text/plain", nil)})
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Reason != ReasonMediaType || len(ve.Rejected) != 1 || ve.Rejected[0] != "a.txt" {
		t.Errorf("unexpected validation error: %+v", ve)
	}
	if slot.Error() != "" {
		t.Errorf("Check must not record an error message, got %q", slot.Error())
	}
}

func TestNewFile(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "rfp.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.7\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	noExt := filepath.Join(dir, "upload")
	if err := os.WriteFile(noExt, []byte("%PDF-1.7\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := NewFile(pdfPath)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if f.Name != "rfp.pdf" || f.MediaType != "application/pdf" || f.Size != 9 {
		t.Errorf("unexpected file: %+v", f)
	}

	sniffed, err := NewFile(noExt)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if sniffed.MediaType != "application/pdf" {
		t.Errorf("expected sniffed pdf, got %s", sniffed.MediaType)
	}

	if _, err := NewFile(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := NewFile(dir); err == nil {
		t.Error("expected error for directory")
	}
}
