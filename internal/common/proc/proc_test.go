package proc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestMatchName(t *testing.T) {
	tests := []struct {
		exe   string
		names []string
		want  bool
	}{
		{"AppInstallerCLI.exe", []string{"AppInstallerCLI"}, true},
		{"appinstallercli.EXE", []string{"AppInstallerCLI.exe"}, true},
		{`C:\Windows\System32\msiexec.exe`, []string{"msiexec"}, runtime.GOOS == "windows"},
		{"winget", []string{"AppInstallerCLI", "WindowsPackageManagerServer"}, false},
		{"WindowsPackageManagerServer", []string{"AppInstallerCLI", "WindowsPackageManagerServer"}, true},
		{"anything", nil, false},
	}

	for _, tt := range tests {
		if got := matchName(tt.exe, tt.names); got != tt.want {
			t.Errorf("matchName(%q, %v) = %v, want %v", tt.exe, tt.names, got, tt.want)
		}
	}
}

func TestFindNoNames(t *testing.T) {
	found, err := Find()
	if err != nil || found != nil {
		t.Errorf("Find() = %v, %v; want nil, nil", found, err)
	}
}

func TestFindSelf(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("reads /proc")
	}

	comm, err := os.ReadFile(filepath.Join("/proc", "self", "comm"))
	if err != nil {
		t.Skipf("cannot read /proc/self/comm: %v", err)
	}

	found, err := Find(string(comm))
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	self := os.Getpid()
	for _, p := range found {
		if p.PID == self {
			return
		}
	}
	t.Errorf("Find() = %v, want to include pid %d", found, self)
}

func TestWaitExitTimesOutOnLiveProcess(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("unix only")
	}

	err := WaitExit(context.Background(), os.Getpid(), 50*time.Millisecond)
	if !errors.Is(err, ErrWaitTimeout) {
		t.Errorf("WaitExit() error = %v, want ErrWaitTimeout", err)
	}
}
