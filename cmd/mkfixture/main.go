// mkfixture writes a synthetic helpdesk export CSV: two preamble lines, the
// version-specific header row, then data rows. Useful for demos and manual
// testing of the analyze command.
// Usage: go run ./cmd/mkfixture --out testdata/export.csv --rows 200 --version 1
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

var categories = []string{"Hardware", "Software", "Rede", "Acesso", "E-mail", "Impressora"}

// Header spellings per export version; version 2 is the renamed layout.
var headers = map[int][]string{
	1: {"PK Dataset Chamados", "Data criação", "Tempo Resolvido (Horas)", "Analista Responsável", "Categoria 1", "Flag Atendeu SLA"},
	2: {"ID Chamado", "Data/Hora criação", "Tempo Resolvido (h)", "Analista", "Categoria", "Status SLA"},
}

func main() {
	out := flag.String("out", "testdata/export.csv", "output csv path")
	rows := flag.Int("rows", 200, "data rows to generate")
	version := flag.Int("version", 1, "export header version (1 or 2)")
	seed := flag.Int64("seed", 1, "rng seed for reproducible output")
	analysts := flag.Int("analysts", 6, "size of the analyst pool")
	dirty := flag.Float64("dirty", 0, "fraction of rows with an invalid date or duration")
	flag.Parse()

	header, ok := headers[*version]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown export version %d\n", *version)
		os.Exit(1)
	}

	faker := gofakeit.New(*seed)

	pool := make([]string, *analysts)
	for i := range pool {
		pool[i] = faker.Name()
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Preamble mimics the tool banner real exports carry.
	fmt.Fprintf(f, "Relatório de Chamados - exportado em %s\n", time.Now().Format("02/01/2006"))
	fmt.Fprintln(f, "Filtros: todos os chamados")

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		fmt.Fprintf(os.Stderr, "write header: %v\n", err)
		os.Exit(1)
	}

	rangeStart := time.Now().AddDate(0, -3, 0)
	for i := 0; i < *rows; i++ {
		created := faker.DateRange(rangeStart, time.Now())
		hours := faker.Float64Range(0.5, 72)
		sla := "ATENDEU O SLA"
		if faker.Float64Range(0, 1) > 0.7 {
			sla = "NÃO ATENDEU O SLA"
		}

		rec := []string{
			fmt.Sprintf("CH-%06d", i+1),
			created.Format("02/01/2006 15:04"),
			fmt.Sprintf("%.1f", hours),
			pool[faker.Number(0, len(pool)-1)],
			categories[faker.Number(0, len(categories)-1)],
			sla,
		}

		if *dirty > 0 && faker.Float64Range(0, 1) < *dirty {
			// Corrupt either the date or the duration, as real exports do.
			if faker.Bool() {
				rec[1] = "data inválida"
			} else {
				rec[2] = "n/a"
			}
		}

		if err := w.Write(rec); err != nil {
			fmt.Fprintf(os.Stderr, "write row %d: %v\n", i+1, err)
			os.Exit(1)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "flush: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d rows to %s (version %d header)\n", *rows, *out, *version)
}
