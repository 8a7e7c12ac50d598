package irgen

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/llir/llvm/ir"
)

// Backend emits a finished IR module as a `<name>.o` object file. It is
// the one seam between the compiler core and a concrete IR framework
// (spec.md §9's "no direct dependence on the framework's concrete
// types"): everything upstream of object emission builds plain
// *ir.Module/*ir.Func/*ir.Block values from llir/llvm directly, but only
// a Backend implementation ever has to know how to turn one into bytes
// on disk.
type Backend interface {
	EmitObject(mod *ir.Module, moduleName, outputDir string) error
}

// LLCBackend implements Backend by serializing the module to LLVM IR
// text (llir/llvm's only native output) and shelling out to the system
// `llc` for target-machine codegen and object emission, the same
// subprocess-plus-captured-stderr shape as wut4's lang/ya/main.go
// findBinary/runStage pair -- llir/llvm has no target-machine or
// object-file API of its own (SPEC_FULL.md §3), so the "target machine
// with PIC relocation and small code model" spec.md §4.7/§6 call for is
// supplied by llc's own flags instead of an in-process API call.
type LLCBackend struct {
	// LLCPath overrides the PATH lookup of `llc`; empty resolves via
	// exec.LookPath at EmitObject time, same as wut4's findBinary.
	LLCPath string
}

func (b *LLCBackend) resolveLLC() (string, error) {
	if b.LLCPath != "" {
		return b.LLCPath, nil
	}
	path, err := exec.LookPath("llc")
	if err != nil {
		return "", fmt.Errorf("llc not found in PATH (set LLCBackend.LLCPath to override): %w", err)
	}
	return path, nil
}

// EmitObject writes `<outputDir>/<moduleName>.o`, creating outputDir
// (mode 0755) if it doesn't exist, per spec.md §6's output filesystem
// layout.
func (b *LLCBackend) EmitObject(mod *ir.Module, moduleName, outputDir string) error {
	llcPath, err := b.resolveLLC()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	llPath := filepath.Join(outputDir, moduleName+".ll")
	if err := os.WriteFile(llPath, []byte(mod.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", llPath, err)
	}

	objPath := filepath.Join(outputDir, moduleName+".o")
	cmd := exec.Command(llcPath,
		"-filetype=obj",
		"-relocation-model=pic",
		"-code-model=small",
		"-o", objPath,
		llPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("llc: %s", strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("llc: %w", err)
	}
	return nil
}
