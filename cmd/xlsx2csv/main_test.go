package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func runCLI(args []string, stdin []byte) (string, string, int) {
	var stdout, stderr bytes.Buffer
	code := run(args, bytes.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func sampleWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Name", "Note"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Alice", "likes, commas"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"Bob", 7}))

	path := filepath.Join(t.TempDir(), "sample.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// minimalWorkbook has no styles part at all.
func minimalWorkbook(t *testing.T) []byte {
	t.Helper()

	parts := []struct{ name, body string }{
		{"xl/workbook.xml", `<workbook xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><sheets><sheet name="S" sheetId="1" r:id="rId1"/></sheets></workbook>`},
		{"xl/_rels/workbook.xml.rels", `<Relationships><Relationship Id="rId1" Target="worksheets/sheet1.xml"/></Relationships>`},
		{"xl/worksheets/sheet1.xml", `<worksheet><sheetData><row><c><v>id</v></c></row><row><c><v>1</v></c></row></sheetData></worksheet>`},
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, part := range parts {
		f, err := w.Create(part.name)
		require.NoError(t, err)
		_, err = f.Write([]byte(part.body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestRunDefault(t *testing.T) {
	out, errOut, code := runCLI([]string{sampleWorkbook(t)}, nil)
	require.Equal(t, 0, code, errOut)
	require.Equal(t, "Name,Note\nAlice,\"likes, commas\"\nBob,7\n", out)
}

func TestRunDelimiterTabNoHeader(t *testing.T) {
	out, errOut, code := runCLI([]string{"-d", "tab", "--no-header", sampleWorkbook(t)}, nil)
	require.Equal(t, 0, code, errOut)
	require.Equal(t, "Alice\tlikes, commas\nBob\t7\n", out)
}

func TestRunFallbackFromStdin(t *testing.T) {
	out, errOut, code := runCLI([]string{"--fallback", "-"}, minimalWorkbook(t))
	require.Equal(t, 0, code, errOut)
	require.Equal(t, "id\n1\n", out)
}

func TestRunOutputFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.csv")
	_, errOut, code := runCLI([]string{"-log-level", "info", "-log-format", "json", sampleWorkbook(t), outPath}, nil)
	require.Equal(t, 0, code, errOut)
	require.Contains(t, errOut, `"source":"primary"`)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "Name,Note\n"))
}

func TestRunErrors(t *testing.T) {
	_, _, code := runCLI(nil, nil)
	require.Equal(t, 2, code)

	_, errOut, code := runCLI([]string{"-d", "ab", "x.xlsx"}, nil)
	require.Equal(t, 2, code)
	require.Contains(t, errOut, "invalid delimiter")

	_, errOut, code = runCLI([]string{"-"}, []byte("not a workbook"))
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "not a valid xlsx container")

	_, errOut, code = runCLI([]string{"--fallback", "-"}, []byte("not a workbook"))
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "not a valid xlsx container")

	_, _, code = runCLI([]string{filepath.Join(t.TempDir(), "missing.xlsx")}, nil)
	require.Equal(t, 1, code)
}

func TestRunVersion(t *testing.T) {
	out, _, code := runCLI([]string{"--version"}, nil)
	require.Equal(t, 0, code)
	require.Equal(t, "dev\n", out)
}

func TestParseDelimiter(t *testing.T) {
	r, err := parseDelimiter("tab")
	require.NoError(t, err)
	require.Equal(t, '\t', r)

	r, err = parseDelimiter(";")
	require.NoError(t, err)
	require.Equal(t, ';', r)

	_, err = parseDelimiter("")
	require.Error(t, err)
	_, err = parseDelimiter(`"`)
	require.Error(t, err)
}
