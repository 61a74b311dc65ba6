// importer registra en bloque números escaneados desde un archivo de texto,
// uno por línea.
//
// Uso: go run ./cmd/importer [--encoding=utf-8|windows-1256] [--mode=entry|exit] archivo.txt
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/juju/clock"
	"github.com/spf13/pflag"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/invoice-tracker/internal/application/ledger"
	"github.com/jhoicas/invoice-tracker/internal/infrastructure/storage"
	"github.com/jhoicas/invoice-tracker/pkg/calendar"
	"github.com/jhoicas/invoice-tracker/pkg/config"
	"github.com/jhoicas/invoice-tracker/pkg/logger"
)

// scanner lo que el importador usa del ledger.
type scanner interface {
	Scan(ctx context.Context, mode, input string) (ledger.Outcome, error)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run devuelve el código de salida: 0 ok, 1 fallo de ejecución, 2 uso incorrecto.
func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("importer", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	encoding := fs.String("encoding", "utf-8", "codificación del archivo: utf-8 o windows-1256")
	mode := fs.String("mode", ledger.ModeEntry, "modo de escaneo: entry o exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Uso: importer [--encoding=utf-8|windows-1256] [--mode=entry|exit] archivo.txt")
		return 2
	}
	if !ledger.ValidMode(*mode) {
		fmt.Fprintf(stderr, "Modo desconocido %q: usar entry o exit\n", *mode)
		return 2
	}
	if _, err := decodeReader(strings.NewReader(""), *encoding); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Cargar configuración: %v\n", err)
		return 1
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "importer", Out: stderr})

	system, err := calendar.SystemByName(cfg.Calendar.System)
	if err != nil {
		log.Error().Err(err).Msg("calendario")
		return 1
	}
	loc, err := cfg.Calendar.Location()
	if err != nil {
		log.Error().Err(err).Msg("zona horaria")
		return 1
	}
	cal := calendar.New(clock.WallClock, system, loc)

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		log.Error().Err(err).Msg("abrir archivo")
		return 1
	}
	defer f.Close()
	r, err := decodeReader(f, *encoding)
	if err != nil {
		log.Error().Err(err).Msg("codificación")
		return 1
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.Store, cfg.DB, cal)
	if err != nil {
		log.Error().Err(err).Msg("abrir almacenamiento")
		return 1
	}
	defer store.Close()

	svc := ledger.NewService(store.Repo, store.Tx, log.Component("ledger"), nil)
	totals, err := importLines(ctx, svc, r, *mode)
	printTotals(stdout, totals)
	if err != nil {
		log.Error().Err(err).Msg("importación interrumpida")
		return 1
	}
	return 0
}

// decodeReader envuelve r según la codificación pedida.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1256", "cp1256":
		return transform.NewReader(r, charmap.Windows1256.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %q", encoding)
	}
}

// importLines pasa cada línea no vacía por Scan y cuenta los resultados por tipo.
// Un error de almacenamiento corta la importación.
func importLines(ctx context.Context, svc scanner, r io.Reader, mode string) (map[ledger.OutcomeKind]int, error) {
	totals := make(map[ledger.OutcomeKind]int)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		out, err := svc.Scan(ctx, mode, text)
		if err != nil {
			return totals, fmt.Errorf("línea %d: %w", line, err)
		}
		totals[out.Kind]++
	}
	return totals, sc.Err()
}

func printTotals(w io.Writer, totals map[ledger.OutcomeKind]int) {
	kinds := make([]string, 0, len(totals))
	for k := range totals {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "%-16s %d\n", k, totals[ledger.OutcomeKind(k)])
	}
}
