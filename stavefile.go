//go:build stave

package main

import (
	"bytes"
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"fmt": Lint.Fmt,
	"fz":  Fuzz.Default,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
	Fuzz  st.Namespace
)

// ---------------------------------------------------------------------------
// Top-level targets
// ---------------------------------------------------------------------------

// Build compiles the gobbcode binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir("bin/gobbcode", "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println("bin/gobbcode is up to date")
		return nil
	}
	fmt.Println("Building gobbcode...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "bin/gobbcode", "./cmd/gobbcode")
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	if err := sh.Rm("coverage.out"); err != nil {
		return err
	}
	return sh.Rm("coverage.html")
}

// Install installs gobbcode to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing gobbcode...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/gobbcode")
}

// Deps ensures all dependencies are downloaded.
func Deps() error {
	fmt.Println("Downloading dependencies...")
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage generates a test coverage report and opens it.
func Coverage() error {
	st.Deps(Test.Default)
	fmt.Println("Generating coverage report...")
	if err := sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html"); err != nil {
		return err
	}
	return sh.RunV("open", "coverage.html")
}

// Docs regenerates docs/TAGS.md from the built-in tag table.
func Docs() error {
	st.Deps(Build)
	fmt.Println("Generating docs/TAGS.md...")
	out, err := sh.Output("bin/gobbcode", "tags", "--format", "markdown", "--color", "never")
	if err != nil {
		return fmt.Errorf("render tag reference: %w", err)
	}
	if err := os.MkdirAll("docs", 0o755); err != nil {
		return fmt.Errorf("create docs directory: %w", err)
	}
	return os.WriteFile(filepath.Join("docs", "TAGS.md"), []byte(out+"\n"), 0o600)
}

// ---------------------------------------------------------------------------
// Test namespace
// ---------------------------------------------------------------------------

// Default runs all tests with race detection and coverage, printing only
// package names and failures.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails")
}

// Verbose runs all tests with standard-verbose output.
func (Test) Verbose() error {
	fmt.Println("Running tests (verbose)...")
	return gotestsum("standard-verbose")
}

// Integration runs only the CLI end-to-end tests.
func (Test) Integration() error {
	fmt.Println("Running CLI integration tests...")
	return sh.RunV("go", "test", "-race", "-run", "^TestIntegration", "./internal/cli/")
}

// ---------------------------------------------------------------------------
// Lint namespace
// ---------------------------------------------------------------------------

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix (for CI pipelines).
func (Lint) CI() error {
	fmt.Println("Running linters (CI mode)...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	fmt.Println("✓ Code formatting OK")
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// ---------------------------------------------------------------------------
// CI namespace
// ---------------------------------------------------------------------------

// Gate runs all CI checks in idiomatic Go order.
func (CI) Gate() error {
	fmt.Println("Running CI gate checks...")
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("\n✓ All CI gate checks passed!")
	return nil
}

// ModTidy checks that go.mod and go.sum are tidy.
func (CI) ModTidy() error {
	fmt.Println("Checking go.mod/go.sum are tidy...")
	modFiles := []string{"go.mod", "go.sum"}
	before := make(map[string][]byte, len(modFiles))
	for _, name := range modFiles {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		before[name] = data
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	for _, name := range modFiles {
		after, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s after tidy: %w", name, err)
		}
		if !bytes.Equal(before[name], after) {
			return fmt.Errorf("%s changed after 'go mod tidy' - please commit the changes", name)
		}
	}
	fmt.Println("✓ go.mod/go.sum are tidy")
	return nil
}

// Cross builds for all release platforms to catch platform-specific issues.
func (CI) Cross() error {
	fmt.Println("Cross-compiling for all release platforms...")
	platforms := []struct{ goos, goarch string }{
		{"linux", "amd64"},
		{"linux", "arm64"},
		{"darwin", "amd64"},
		{"darwin", "arm64"},
		{"windows", "amd64"},
		{"windows", "arm64"},
		{"freebsd", "amd64"},
	}
	for _, p := range platforms {
		fmt.Printf("  Building %s/%s...\n", p.goos, p.goarch)
		env := map[string]string{
			"GOOS":        p.goos,
			"GOARCH":      p.goarch,
			"CGO_ENABLED": "0",
		}
		if err := sh.RunWith(env, "go", "build", "-o", "/dev/null", "./cmd/gobbcode"); err != nil {
			return fmt.Errorf("build failed for %s/%s: %w", p.goos, p.goarch, err)
		}
	}
	fmt.Println("✓ All platforms build successfully")
	return nil
}

// ---------------------------------------------------------------------------
// Bench namespace
// ---------------------------------------------------------------------------

// Default runs Go benchmarks.
func (Bench) Default() error {
	fmt.Println("Running benchmarks...")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-bench=.", "-benchmem",
		"./...",
	)
}

// Parser runs the lexer and parser benchmarks with a fixed iteration time
// so results are comparable between runs.
func (Bench) Parser() error {
	fmt.Println("Running parser benchmarks...")
	return sh.RunV("go", "test",
		"-run=^$",
		"-bench=.", "-benchmem",
		"-benchtime="+cmp.Or(os.Getenv("BENCH_TIME"), "2s"),
		"./pkg/bbcode/",
	)
}

// ---------------------------------------------------------------------------
// Fuzz namespace
// ---------------------------------------------------------------------------

// fuzzTargets lists the fuzz functions run by Fuzz.Default, by package.
//
//nolint:gochecknoglobals // Static target table
var fuzzTargets = []struct{ pkg, name string }{
	{"./pkg/bbcode/", "FuzzTokenize"},
	{"./pkg/bbcode/", "FuzzParse"},
	{"./pkg/fsutil/", "FuzzWriteAtomic"},
}

// Default runs every fuzz target for FUZZ_TIME each (default 30s).
func (Fuzz) Default() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZ_TIME"), "30s")
	for _, ft := range fuzzTargets {
		if err := runFuzz(ft.pkg, ft.name, fuzzTime); err != nil {
			return err
		}
	}
	fmt.Println("✓ Fuzz targets found no failures")
	return nil
}

// Lexer fuzzes only the tokenizer, for longer runs on lexer changes.
func (Fuzz) Lexer() error {
	return runFuzz("./pkg/bbcode/", "FuzzTokenize", cmp.Or(os.Getenv("FUZZ_TIME"), "2m"))
}

// ---------------------------------------------------------------------------
// Helpers (unexported — not targets)
// ---------------------------------------------------------------------------

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}

// gotestsum runs the whole test suite through gotestsum with the given
// output format. STAVE_NUM_PROCESSORS bounds package and test parallelism.
func gotestsum(format string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", format,
		"--",
		"-v", "-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// runFuzz runs a single fuzz target. Go only fuzzes one target per
// invocation, so the pattern is anchored.
func runFuzz(pkg, name, fuzzTime string) error {
	fmt.Printf("Fuzzing %s %s for %s...\n", pkg, name, fuzzTime)
	if err := sh.RunV("go", "test",
		"-run=^$",
		"-fuzz=^"+name+"$",
		"-fuzztime="+fuzzTime,
		pkg,
	); err != nil {
		return fmt.Errorf("fuzz %s: %w", name, err)
	}
	return nil
}
