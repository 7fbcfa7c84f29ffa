package cli

import (
	"bytes"
	"context"
	"log/slog"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Davincible/gf256/pkg/gf256"
	"github.com/Davincible/gf256/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the command tree with an isolated config file.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GF256_CONFIG", filepath.Join(t.TempDir(), "config.json"))

	var out bytes.Buffer
	cmd := NewRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestDumpCommand(t *testing.T) {
	out, err := runCLI(t, "dump")
	require.NoError(t, err)

	var want bytes.Buffer
	require.NoError(t, gf256.Default().Dump(&want))
	assert.Equal(t, want.String(), out)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, gf256.Steps)
	assert.Equal(t, "  8: 00011101 (1d)", lines[8])
}

func TestDumpCommandCustomField(t *testing.T) {
	out, err := runCLI(t, "dump", "--poly", "0x11b", "--generator", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "  1: 00000011 (03)", lines[1])
	assert.Equal(t, "  2: 00000101 (05)", lines[2])
}

func TestDumpCommandRejectsNonPrimitive(t *testing.T) {
	_, err := runCLI(t, "dump", "--poly", "0x11b")
	assert.ErrorIs(t, err, gf256.ErrInvalidPolynomial)
}

func TestCalcCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Multiply", []string{"calc", "mul", "0x53", "0xca"}, "0x53 * 0xca = 0x8f (143)\n"},
		{"Add", []string{"calc", "add", "0x0f", "0xf0"}, "0x0f + 0xf0 = 0xff (255)\n"},
		{"Divide", []string{"calc", "div", "0x1d", "2"}, "0x1d / 0x02 = 0x80 (128)\n"},
		{"Negative power", []string{"calc", "pow", "2", "--", "-1"}, "0x02 ^ -1 = 0x8e (142)\n"},
		{"Inverse", []string{"calc", "inv", "0x8e"}, "inv(0x8e) = 0x02 (2)\n"},
		{"Log", []string{"calc", "log", "0x1d"}, "log(0x1d) = 0x08 (8)\n"},
		{"Exp", []string{"calc", "exp", "8"}, "exp(8) = 0x1d (29)\n"},
		{"Exp beyond element range", []string{"calc", "exp", "263"}, "exp(263) = 0x1d (29)\n"},
		{"Negative exp", []string{"calc", "exp", "--", "-1"}, "exp(-1) = 0x8e (142)\n"},
		{"Leading zero is decimal", []string{"calc", "mul", "010", "1"}, "0x0a * 0x01 = 0x0a (10)\n"},
		{"Upper case op", []string{"calc", "MUL", "1", "7"}, "0x01 * 0x07 = 0x07 (7)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCalcCommandJSON(t *testing.T) {
	out, err := runCLI(t, "calc", "mul", "0x53", "0xca", "--json")
	require.NoError(t, err)

	var res CalcResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "mul", res.Op)
	assert.Equal(t, 0x53, res.A)
	require.NotNil(t, res.B)
	assert.Equal(t, 0xCA, *res.B)
	assert.Equal(t, 0x8F, res.Result)
	assert.Equal(t, "0x8f", res.Hex)
	assert.Equal(t, "0x11d", res.Polynomial)
}

func TestCalcCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"Division by zero", []string{"calc", "div", "5", "0"}, gf256.ErrDivisionByZero},
		{"Inverse of zero", []string{"calc", "inv", "0"}, gf256.ErrDivisionByZero},
		{"Zero to negative power", []string{"calc", "pow", "0", "--", "-3"}, gf256.ErrDivisionByZero},
		{"Log of zero", []string{"calc", "log", "0"}, gf256.ErrZeroLog},
		{"Unknown op", []string{"calc", "mod", "5", "3"}, nil},
		{"Missing operand", []string{"calc", "mul", "5"}, nil},
		{"Extra operand", []string{"calc", "inv", "5", "3"}, nil},
		{"Element out of range", []string{"calc", "mul", "256", "3"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestCheckCommand(t *testing.T) {
	out, err := runCLI(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "Primitive")
	assert.Contains(t, out, "x^8 + x^4 + x^3 + x^2 + 1")
	assert.Contains(t, out, storage.Fingerprint(gf256.Default()))

	out, err = runCLI(t, "check", "--poly", "0x11b")
	assert.ErrorIs(t, err, gf256.ErrInvalidPolynomial)
	assert.Contains(t, out, "Not primitive")
	assert.Contains(t, out, "Order:      51 of 255")

	out, err = runCLI(t, "check", "--poly", "0x101")
	assert.ErrorIs(t, err, gf256.ErrInvalidPolynomial)
	assert.Contains(t, out, "Not primitive")
}

func TestPolysCommand(t *testing.T) {
	out, err := runCLI(t, "polys")
	require.NoError(t, err)
	assert.Contains(t, out, "16 primitive polynomials for generator 0x02")
	assert.Contains(t, out, "0x11d  100011101  x^8 + x^4 + x^3 + x^2 + 1")

	out, err = runCLI(t, "polys", "--json")
	require.NoError(t, err)
	var polys []string
	require.NoError(t, json.Unmarshal([]byte(out), &polys))
	assert.Len(t, polys, 16)
	assert.Equal(t, "0x11d", polys[0])

	_, err = runCLI(t, "polys", "--generator", "1")
	assert.Error(t, err)
}

func TestTablesCommandFormats(t *testing.T) {
	out, err := runCLI(t, "tables")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "exp: 01020408102040801d"), out[:40])
	assert.Contains(t, out, "\nlog: ")

	out, err = runCLI(t, "tables", "--format", "go")
	require.NoError(t, err)
	assert.Contains(t, out, "expTable = [255]byte{")
	assert.Contains(t, out, "logTable = [256]byte{")
	assert.Contains(t, out, "0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1d,")

	out, err = runCLI(t, "tables", "--format", "json")
	require.NoError(t, err)
	var tbl struct {
		Polynomial uint16 `json:"polynomial"`
		Exp        []int  `json:"exp"`
		Log        []int  `json:"log"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &tbl))
	assert.Equal(t, uint16(0x11D), tbl.Polynomial)
	assert.Len(t, tbl.Exp, 255)
	assert.Equal(t, 8, tbl.Log[0x1D])

	_, err = runCLI(t, "tables", "--format", "yaml")
	assert.Error(t, err)
}

func TestTablesCommandDigest(t *testing.T) {
	out, err := runCLI(t, "tables", "--digest")
	require.NoError(t, err)
	assert.Equal(t, storage.Fingerprint(gf256.Default())+"\n", out)
}

func TestTablesOutAndVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aes.json")

	out, err := runCLI(t, "tables", "--poly", "0x11b", "--generator", "3", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Tables written to "+path)

	out, err = runCLI(t, "verify", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Table file is valid")
	assert.Contains(t, out, "Polynomial: 0x11b")
	assert.Contains(t, out, "Generator:  0x03")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	tampered := strings.Replace(string(data), `"exp": "01`, `"exp": "02`, 1)
	require.NotEqual(t, string(data), tampered)
	require.NoError(t, os.WriteFile(path, []byte(tampered), 0600))

	_, err = runCLI(t, "verify", path)
	assert.ErrorIs(t, err, storage.ErrChecksumMismatch)

	_, err = runCLI(t, "verify", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestConfigDefaultsDriveField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"field":{"polynomial":283,"generator":3}}`), 0600))

	var out bytes.Buffer
	t.Setenv("GF256_CONFIG", path)
	cmd := NewRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"calc", "mul", "0x57", "0x83"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "0x57 * 0x83 = 0xc1 (193)\n", out.String())
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("GF256_CONFIG", path)

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := NewRootCommand("test")
		cmd.SetOut(&out)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return out.String(), err
	}

	out, err := run("config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	out, err = run("config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = run("config", "init")
	assert.Error(t, err)
	_, err = run("config", "init", "--force")
	assert.NoError(t, err)

	out, err = run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"polynomial": 285`)
}

func TestFormatPolynomial(t *testing.T) {
	assert.Equal(t, "x^8 + x^4 + x^3 + x^2 + 1", formatPolynomial(0x11D))
	assert.Equal(t, "x^8 + x^4 + x^3 + x + 1", formatPolynomial(0x11B))
	assert.Equal(t, "0", formatPolynomial(0))
}

func TestConfiguredVerbosityControlsLogging(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		name      string
		verbosity string
		args      []string
		debug     bool
		warn      bool
	}{
		{"Verbose config", "verbose", []string{"calc", "add", "1", "2"}, true, true},
		{"Quiet config", "quiet", []string{"calc", "add", "1", "2"}, false, false},
		{"Flag overrides quiet", "quiet", []string{"calc", "add", "1", "2", "--verbose"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slog.SetDefault(prev)
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(`{"ui":{"verbosity":"`+tt.verbosity+`"}}`), 0600))
			t.Setenv("GF256_CONFIG", path)

			cmd := NewRootCommand("test")
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())

			ctx := context.Background()
			assert.Equal(t, tt.debug, slog.Default().Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.warn, slog.Default().Enabled(ctx, slog.LevelWarn))
		})
	}
}

func TestConfigInitRespectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	broken := []byte(`{"field":{"polynomial":283,"generator":2}}`)
	require.NoError(t, os.WriteFile(path, broken, 0600))
	t.Setenv("GF256_CONFIG", path)

	run := func(args ...string) error {
		cmd := NewRootCommand("test")
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	require.Error(t, run("config", "init"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, broken, data, "init without --force must leave the file alone")

	require.NoError(t, run("config", "init", "--force"))
	require.NoError(t, run("config", "show"))
}
