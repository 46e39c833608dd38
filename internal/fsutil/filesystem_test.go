package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestMemoryFileSystem_WriteAndRead(t *testing.T) {
	m := NewMemoryFileSystem()
	if err := m.WriteFile("data/fires.csv", []byte("Easting,Northing\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := m.ReadFile("data/./fires.csv")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "Easting,Northing\n" {
		t.Errorf("ReadFile = %q", got)
	}
}

func TestMemoryFileSystem_CreateVisibleOnClose(t *testing.T) {
	m := NewMemoryFileSystem()
	w, err := m.Create("out/run.png")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := w.Write([]byte("png")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got, _ := m.ReadFile("out/run.png"); len(got) != 0 {
		t.Errorf("data visible before Close: %q", got)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := m.Open("out/run.png")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	data, _ := io.ReadAll(r)
	if string(data) != "png" {
		t.Errorf("Open read %q, want %q", data, "png")
	}
}

func TestMemoryFileSystem_NotExist(t *testing.T) {
	m := NewMemoryFileSystem()
	if _, err := m.Open("missing.csv"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open missing: %v", err)
	}
	if _, err := m.Stat("missing.csv"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat missing: %v", err)
	}
}

func TestMemoryFileSystem_StatAndMkdirAll(t *testing.T) {
	m := NewMemoryFileSystem()
	if err := m.MkdirAll("plots/2026/run", 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	for _, dir := range []string{"plots", "plots/2026", "plots/2026/run"} {
		info, err := m.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("Stat(%q) = %v, %v; want dir", dir, info, err)
		}
	}

	_ = m.WriteFile("plots/a.png", []byte("abcd"), 0644)
	info, err := m.Stat("plots/a.png")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != 4 || info.IsDir() || info.Name() != "a.png" {
		t.Errorf("Stat = %+v", info)
	}
}

func TestMemoryFileSystem_Files(t *testing.T) {
	m := NewMemoryFileSystem()
	_ = m.WriteFile("out/b.html", nil, 0644)
	_ = m.WriteFile("out/a.png", nil, 0644)
	_ = m.WriteFile("other/c.png", nil, 0644)

	got := m.Files("out")
	want := []string{filepath.Join("out", "a.png"), filepath.Join("out", "b.html")}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Files = %v, want %v", got, want)
	}
}

func TestOSFileSystem_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	var fsys FileSystem = OSFileSystem{}

	sub := filepath.Join(dir, "nested", "out")
	if err := fsys.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	path := filepath.Join(sub, "x.txt")
	w, err := fsys.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, _ = w.Write([]byte("hello"))
	_ = w.Close()

	data, err := fsys.ReadFile(path)
	if err != nil || string(data) != "hello" {
		t.Errorf("ReadFile = %q, %v", data, err)
	}
	info, err := fsys.Stat(path)
	if err != nil || info.Size() != 5 {
		t.Errorf("Stat = %v, %v", info, err)
	}
}
