package commands

import "testing"

func TestSetupKubeFlags(t *testing.T) {
	fs, flags := SetupKubeFlags()

	t.Run("default values", func(t *testing.T) {
		if flags.Output != DefaultOutputDir {
			t.Errorf("expected Output '%s' by default, got '%s'", DefaultOutputDir, flags.Output)
		}
		if flags.Kubeconfig != "" {
			t.Errorf("expected Kubeconfig to be empty by default, got '%s'", flags.Kubeconfig)
		}
		if flags.Context != "" {
			t.Errorf("expected Context to be empty by default, got '%s'", flags.Context)
		}
		if flags.Insecure {
			t.Error("expected Insecure to be false by default")
		}
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"--kubeconfig", "/tmp/config", "--context", "staging", "--insecure-skip-tls-verify", "-o", "out"}
		if err := fs.Parse(args); err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}

		if flags.Kubeconfig != "/tmp/config" {
			t.Errorf("expected Kubeconfig '/tmp/config', got '%s'", flags.Kubeconfig)
		}
		if flags.Context != "staging" {
			t.Errorf("expected Context 'staging', got '%s'", flags.Context)
		}
		if !flags.Insecure {
			t.Error("expected Insecure to be true")
		}
		if flags.Output != "out" {
			t.Errorf("expected Output 'out', got '%s'", flags.Output)
		}
	})
}

func TestHandleKube_PositionalArgs(t *testing.T) {
	err := HandleKube([]string{"unexpected"})
	if err == nil {
		t.Error("expected error for positional arguments")
	}
}

func TestHandleKube_Help(t *testing.T) {
	err := HandleKube([]string{"--help"})
	if err != nil {
		t.Errorf("unexpected error for help: %v", err)
	}
}

func TestHandleMCP_Help(t *testing.T) {
	err := HandleMCP([]string{"--help"})
	if err != nil {
		t.Errorf("unexpected error for help: %v", err)
	}
}
