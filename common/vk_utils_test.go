package common

import (
	"testing"
)

func TestAllOfAinB(t *testing.T) {
	b := []string{"VK_KHR_surface", "VK_KHR_xlib_surface", "VK_EXT_debug_utils"}
	if !AllOfAinB([]string{"VK_KHR_surface", "VK_EXT_debug_utils"}, b) {
		t.Errorf("Both extensions are available")
	}
	if AllOfAinB([]string{"VK_KHR_surface", "VK_KHR_win32_surface"}, b) {
		t.Errorf("VK_KHR_win32_surface is not available")
	}
	if !AllOfAinB(nil, b) {
		t.Errorf("An empty requirement is always met")
	}
}

func TestTerminatedStr(t *testing.T) {
	if s := TerminatedStr("abc"); s != "abc\x00" {
		t.Errorf("Expected terminated string but got %q", s)
	}
	if s := TerminatedStr("abc\x00"); s != "abc\x00" {
		t.Errorf("Terminating twice should not append a second \\x00, got %q", s)
	}
	if s := TerminatedStr(""); s != "\x00" {
		t.Errorf("Empty string should become a lone terminator, got %q", s)
	}
}

func TestRawBytes(t *testing.T) {
	b := RawBytes([]uint32{1, 0x01020304})
	want := []byte{1, 0, 0, 0, 4, 3, 2, 1}
	if len(b) != len(want) {
		t.Fatalf("Expected %d Byte but got %d", len(want), len(b))
	}
	for i := range want {
		if b[i] != want[i] {
			t.Errorf("Byte %d should be %d but was %d", i, want[i], b[i])
		}
	}
	if b := RawBytes([]int{1}); b != nil {
		t.Errorf("Values without a fixed size cannot be written, got %v", b)
	}
}

func TestAsUint32Arr(t *testing.T) {
	// SPIR-V magic number in little endian followed by a stray byte
	code := []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00, 0xff}
	words := AsUint32Arr(code)
	if len(words) != 2 {
		t.Fatalf("Expected 2 words but got %d", len(words))
	}
	if words[0] != 0x07230203 || words[1] != 0x00010000 {
		t.Errorf("Unexpected words %#x", words)
	}
	if AsUint32Arr([]byte{1, 2}) != nil {
		t.Errorf("Less than a word should give no words")
	}
}
