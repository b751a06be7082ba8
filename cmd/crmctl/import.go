package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/CRM-api/internal/application/crm"
	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/infrastructure/postgres"
	"github.com/jhoicas/CRM-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/CRM-api/pkg/csvtext"
)

var (
	importFile     string
	importMappings []string
	importEncoding string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Importa leads desde una planilla CSV o XLSX",
	Long: "Lee el archivo completo, lo convierte a texto CSV y lo pasa por el mismo pipeline que POST /api/leads/import.\n" +
		"Ejemplo: crmctl import --file leads.csv --map nombre=Nombre --map telefono=Tel --encoding latin1",
	RunE: func(cmd *cobra.Command, _ []string) error {
		mapping, err := parseMappings(importMappings)
		if err != nil {
			return err
		}
		text, err := loadSheet(importFile, importEncoding)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		uc := crm.NewImportUseCase(postgres.NewTxRunner(pool), log)
		out, err := uc.Import(ctx, dto.ImportLeadsRequest{CSV: text, Mapping: mapping})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "importados: %d, omitidos: %d\n", out.Count, out.Skipped)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "ruta del archivo .csv o .xlsx (requerido)")
	importCmd.Flags().StringArrayVar(&importMappings, "map", nil, "campo=Encabezado, repetible")
	importCmd.Flags().StringVar(&importEncoding, "encoding", "utf-8", "codificación del CSV: utf-8 | latin1")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}

// parseMappings convierte ["nombre=Nombre", ...] en el mapeo campo -> encabezado.
func parseMappings(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		field, header, ok := strings.Cut(p, "=")
		field, header = strings.TrimSpace(field), strings.TrimSpace(header)
		if !ok || field == "" || header == "" {
			return nil, fmt.Errorf("mapeo %q inválido, se espera campo=Encabezado", p)
		}
		out[field] = header
	}
	return out, nil
}

// loadSheet lee el archivo y devuelve su contenido como texto CSV.
// Un .xlsx se toma de la primera hoja; un CSV se decodifica según encoding.
func loadSheet(path, encoding string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("leer %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err := spreadsheet.ReadFirstSheet(data)
		if err != nil {
			return "", err
		}
		if len(rows) == 0 {
			return "", nil
		}
		return csvtext.Write(rows[0], rows[1:]), nil
	}
	return decodeText(data, encoding)
}

// decodeText pasa el CSV a UTF-8 y quita el BOM si lo hay.
func decodeText(data []byte, encoding string) (string, error) {
	switch strings.ToLower(strings.ReplaceAll(encoding, "-", "")) {
	case "", "utf8":
	case "latin1", "iso88591":
		b, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decodificar latin1: %w", err)
		}
		data = b
	case "windows1252", "cp1252":
		b, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decodificar windows-1252: %w", err)
		}
		data = b
	default:
		return "", fmt.Errorf("codificación %q no soportada", encoding)
	}
	return string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))), nil
}
