//go:build linux || freebsd || darwin

package viewer

import "testing"

func TestOpenCommand(t *testing.T) {
	argv := openCommand("/tmp/out.pdf")
	if len(argv) < 2 {
		t.Fatalf("openCommand = %v, want binary plus path", argv)
	}
	if argv[len(argv)-1] != "/tmp/out.pdf" {
		t.Errorf("last argument = %q, want the file path", argv[len(argv)-1])
	}
}
