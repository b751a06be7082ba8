package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/CRM-api/pkg/config"
	"github.com/jhoicas/CRM-api/pkg/csvtext"
	"github.com/jhoicas/CRM-api/pkg/jwt"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"migrate", "seed", "import", "duplicates", "token"} {
		assert.True(t, names[name], "falta el subcomando %q", name)
	}
}

func TestImportCmd_Flags(t *testing.T) {
	require.NotNil(t, importCmd.Flags().Lookup("file"))
	require.NotNil(t, importCmd.Flags().Lookup("map"))
	enc := importCmd.Flags().Lookup("encoding")
	require.NotNil(t, enc)
	assert.Equal(t, "utf-8", enc.DefValue)
}

// ──────────────────────────────────────────────────────────────────────────────
// import: mapeos y lectura de planillas
// ──────────────────────────────────────────────────────────────────────────────

func TestParseMappings(t *testing.T) {
	m, err := parseMappings([]string{"nombre=Nombre", " telefono = Tel. fijo "})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"nombre": "Nombre", "telefono": "Tel. fijo"}, m)

	_, err = parseMappings([]string{"nombre"})
	assert.Error(t, err)
	_, err = parseMappings([]string{"=Nombre"})
	assert.Error(t, err)
}

func TestDecodeText_Latin1(t *testing.T) {
	// "Nombre\nJosé" en ISO-8859-1
	out, err := decodeText([]byte("Nombre\nJos\xe9"), "latin1")
	require.NoError(t, err)
	assert.Equal(t, "Nombre\nJosé", out)
}

func TestDecodeText_QuitaBOM(t *testing.T) {
	out, err := decodeText([]byte("\xef\xbb\xbfNombre;Tel"), "utf-8")
	require.NoError(t, err)
	assert.Equal(t, "Nombre;Tel", out)
}

func TestDecodeText_CodificacionDesconocida(t *testing.T) {
	_, err := decodeText([]byte("x"), "ebcdic")
	assert.Error(t, err)
}

func TestLoadSheet_XLSX(t *testing.T) {
	b, err := spreadsheet.NewXLSXWriter().Write("Hoja1", []string{"Nombre", "Empresa"}, [][]string{{"Ana", "ACME, SA"}})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "leads.xlsx")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	text, err := loadSheet(path, "")
	require.NoError(t, err)

	tbl := csvtext.Parse(text)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "ACME, SA", tbl.Rows[0]["Empresa"])
}

func TestLoadSheet_ArchivoInexistente(t *testing.T) {
	_, err := loadSheet(filepath.Join(t.TempDir(), "nope.csv"), "")
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// token y duplicates
// ──────────────────────────────────────────────────────────────────────────────

func TestTokenCmd(t *testing.T) {
	cfg = &config.Config{JWT: config.JWTConfig{Secret: "s3cret", Expiration: 30, Issuer: "crm-api"}}
	tokenOperator, tokenRole, tokenMinutes = "op-1", jwt.RoleAdmin, 0

	var out bytes.Buffer
	tokenCmd.SetOut(&out)
	require.NoError(t, tokenCmd.RunE(tokenCmd, nil))

	op, role, err := jwt.Parse("s3cret", string(bytes.TrimSpace(out.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, "op-1", op)
	assert.Equal(t, jwt.RoleAdmin, role)
}

func TestTokenCmd_RolInvalido(t *testing.T) {
	cfg = &config.Config{JWT: config.JWTConfig{Secret: "s3cret"}}
	tokenOperator, tokenRole = "op-1", "root"

	err := tokenCmd.RunE(tokenCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inválido")
}

func TestPrintGroups(t *testing.T) {
	var out bytes.Buffer
	duplicatesCmd.SetOut(&out)

	require.NoError(t, printGroups(duplicatesCmd, nil))
	assert.Contains(t, out.String(), "sin duplicados")

	out.Reset()
	require.NoError(t, printGroups(duplicatesCmd, []dto.DuplicateGroupDTO{{
		Type: "telefono", Value: "5491155550000",
		Leads: []dto.DuplicateLeadDTO{{ID: "L1", Name: "Ana"}, {ID: "L2", Name: "Ana B"}},
	}}))
	assert.Contains(t, out.String(), "L1")
	assert.Contains(t, out.String(), "Ana B")
}
