package clipboard

import (
	"errors"
	"testing"
)

func TestWriteUsesFirstAvailableTool(t *testing.T) {
	origLook, origRun := lookPath, runTool
	defer func() { lookPath, runTool = origLook, origRun }()

	lookPath = func(name string) (string, error) {
		if name == "xclip" {
			return "/usr/bin/xclip", nil
		}
		return "", errors.New("not found")
	}
	var used string
	var got []byte
	runTool = func(tl tool, data []byte) error {
		used = tl.name
		got = data
		return nil
	}

	if err := Write([]byte{1, 2, 3}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if used != "xclip" {
		t.Errorf("used %q, want xclip", used)
	}
	if len(got) != 3 {
		t.Errorf("data len = %d", len(got))
	}
}

func TestWriteNoToolAvailable(t *testing.T) {
	origLook := lookPath
	defer func() { lookPath = origLook }()
	lookPath = func(string) (string, error) { return "", errors.New("not found") }

	if err := Write([]byte{1}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestWriteEmptyData(t *testing.T) {
	if err := Write(nil); err == nil {
		t.Error("empty data should fail")
	}
}

func TestWriteToolFailure(t *testing.T) {
	origLook, origRun := lookPath, runTool
	defer func() { lookPath, runTool = origLook, origRun }()

	lookPath = func(string) (string, error) { return "/usr/bin/wl-copy", nil }
	runTool = func(tool, []byte) error { return errors.New("boom") }

	err := Write([]byte{1})
	if err == nil || errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want tool failure", err)
	}
}
