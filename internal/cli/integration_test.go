package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplesDir = "../../testdata/samples"

func asserthint(args ...string) *exec.Cmd {
	return exec.Command("go", append([]string{"run", "../../main.go", "--color", "never"}, args...)...)
}

// TestCLI_FileInputOutput tests the CLI with file input and output
func TestCLI_FileInputOutput(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "hint.txt")

	cmd := asserthint("-i", filepath.Join(samplesDir, "field_change.txt"), "-o", outputFile)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	hint, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, " -> User(.lastname -> aaa)\n", string(hint))
}

// TestCLI_StdinStdout tests the CLI with stdin input and stdout output
func TestCLI_StdinStdout(t *testing.T) {
	content, err := os.ReadFile(filepath.Join(samplesDir, "additional_element.txt"))
	require.NoError(t, err)

	cmd := asserthint()
	cmd.Stdin = bytes.NewReader(content)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())
	assert.Equal(t, " -> [ additional User(name=\"second\",other=null)]\n", stdout.String())
}

// TestCLI_BuilderCode tests the CLI in builder code mode
func TestCLI_BuilderCode(t *testing.T) {
	cmd := asserthint("--code", "-i", filepath.Join(samplesDir, "users.txt"))
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())

	output := stdout.String()
	assert.True(t, strings.HasPrefix(output, "List.of(\n"))
	assert.Equal(t, 2, strings.Count(output, "User.builder()"))
	assert.Contains(t, output, `    .name("second")`)
	assert.True(t, strings.HasSuffix(output, "\n)\n"))
}

// TestCLI_ConfigFile tests that a config file changes the builder output
func TestCLI_ConfigFile(t *testing.T) {
	cmd := asserthint("--code",
		"--config", filepath.Join(samplesDir, "asserthint.yml"),
		"-i", filepath.Join(samplesDir, "users.txt"))
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())

	output := stdout.String()
	assert.True(t, strings.HasPrefix(output, "Arrays.asList(\n    User.builder()\n"))
	assert.Contains(t, output, "        .withOther(null)")
}

// TestCLI_NoAssertion tests that unrecognized input produces no output
func TestCLI_NoAssertion(t *testing.T) {
	cmd := asserthint()
	cmd.Stdin = strings.NewReader("java.lang.IllegalStateException: not an assertion")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
}

// TestCLI_EmptyInput tests the CLI with empty input
func TestCLI_EmptyInput(t *testing.T) {
	cmd := asserthint()
	cmd.Stdin = strings.NewReader("")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with empty input")
	assert.Contains(t, stderr.String(), "empty")
}

// TestCLI_InvalidColor tests that an unknown color mode is rejected
func TestCLI_InvalidColor(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--color", "sometimes")
	cmd.Stdin = strings.NewReader("expected: <1> but was: <2>")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err)
	assert.Contains(t, stderr.String(), "Configuration error")
}

// TestCLI_Version tests the version flag
func TestCLI_Version(t *testing.T) {
	cmd := asserthint("--version")
	output, err := cmd.Output()
	require.NoError(t, err)
	assert.Contains(t, string(output), "asserthint version")
}
