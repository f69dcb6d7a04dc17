package embedded

import (
	"testing"
	"testing/fstest"
)

func reset() {
	dataFS = nil
	initialized = false
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	reset()
	defer reset()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(fstest.MapFS{})

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	reset()

	_, err := ReadFile("data/fireworks.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestReadFile(t *testing.T) {
	reset()
	defer reset()

	Init(fstest.MapFS{
		"data/fireworks.yaml": &fstest.MapFile{Data: []byte("particle: {}\n")},
	})

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"plain path", "data/fireworks.yaml", "particle: {}\n", false},
		{"dot prefix", "./data/fireworks.yaml", "particle: {}\n", false},
		{"missing file", "data/missing.yaml", "", true},
		{"bad prefix", "assets/fireworks.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && string(data) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, data, tt.want)
			}
		})
	}
}

func TestExists(t *testing.T) {
	reset()
	defer reset()

	if Exists("data/fireworks.yaml") {
		t.Error("Exists() = true before Init()")
	}

	Init(fstest.MapFS{
		"data/fireworks.yaml": &fstest.MapFile{Data: []byte("x")},
	})
	if !Exists("data/fireworks.yaml") {
		t.Error("Exists(data/fireworks.yaml) = false, want true")
	}
	if Exists("data/other.yaml") {
		t.Error("Exists(data/other.yaml) = true, want false")
	}
}
