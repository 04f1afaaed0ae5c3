package initcmd_test

import (
	"testing"

	"github.com/impactlens/ilens/pkg/config"
	"github.com/impactlens/ilens/pkg/controller/initcmd"
	"github.com/spf13/afero"
)

func TestController_Init(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	ctrl := initcmd.New(fs)
	created, err := ctrl.Init(".github/ilens.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Error("the file should be created")
	}
	cfg := &config.Config{}
	if err := config.NewReader(fs).Read(cfg, ".github/ilens.yaml"); err != nil {
		t.Fatalf("the template is not a valid configuration: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("version: got %d", cfg.Version)
	}

	if err := afero.WriteFile(fs, ".ilens.yaml", []byte("profile: strict\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	created, err = ctrl.Init(".ilens.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Error("an existing file must not be overwritten")
	}
	b, err := afero.ReadFile(fs, ".ilens.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "profile: strict\n" {
		t.Errorf("file content changed: %q", b)
	}
}
