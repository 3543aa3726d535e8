// seehuhn.de/go/annotflip - mirror the geometry of PDF annotations
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Pdf-flip mirrors the annotations of a PDF file horizontally and/or
// vertically, for use with a PDF file whose page contents have been
// mirrored by other means.
//
// The input can also be a YAML record file, as written by the recfile
// package, in which case the output is a record file as well.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"seehuhn.de/go/pdf"

	"seehuhn.de/go/annotflip"
	"seehuhn.de/go/annotflip/pdfdoc"
	"seehuhn.de/go/annotflip/recfile"
	"seehuhn.de/go/annotflip/tools/internal/buildinfo"
	"seehuhn.de/go/annotflip/tools/internal/profile"
)

const maxPasswordTries = 3

func main() {
	cfg := defaultConfig
	var noHorizontal bool
	out := flag.String("o", "", "output file name (default \"flipped_<input>\")")
	flag.BoolVar(&cfg.overwrite, "f", cfg.overwrite, "overwrite output file if it exists")
	flag.BoolVar(&cfg.horizontal, "horizontal", cfg.horizontal, "mirror horizontally")
	flag.BoolVar(&cfg.vertical, "vertical", cfg.vertical, "mirror vertically")
	flag.BoolVar(&noHorizontal, "no-horizontal", false, "do not mirror horizontally")
	flag.BoolVar(&cfg.verbose, "v", cfg.verbose, "trace every change on stderr")
	configFile := flag.String("config", "", "read settings from YAML `file`")
	password := flag.String("password", "", "PDF password")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")
	version := flag.Bool("version", false, "print version information and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pdf-flip - mirror the annotations in a PDF file\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("pdf-flip"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  pdf-flip [options] <input>\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  input   PDF file (.pdf) or annotation record file (.yaml, .yml)\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pdf-flip scan.pdf\n")
		fmt.Fprintf(os.Stderr, "  pdf-flip -vertical -no-horizontal -o out.pdf scan.pdf\n")
		fmt.Fprintf(os.Stderr, "  pdf-flip -config flip.yaml records.yaml\n")
	}
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.Short("pdf-flip"))
		return
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	log.SetFlags(0)
	log.SetPrefix("pdf-flip: ")

	isSet := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		isSet[f.Name] = true
	})
	if *configFile != "" {
		err := loadConfig(*configFile, &cfg, isSet)
		if err != nil {
			log.Fatal(err)
		}
	}
	if noHorizontal {
		cfg.horizontal = false
	}

	in := flag.Arg(0)
	if *out == "" {
		*out = outputName(in, cfg.prefix)
	}

	err := run(in, *out, cfg, *password, *cpuprofile, *memprofile)
	if err != nil {
		log.Fatal(err)
	}
}

func run(in, out string, cfg config, password, cpuprofile, memprofile string) (err error) {
	stop, err := profile.Start(cpuprofile, memprofile)
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := stop(); err == nil {
			err = stopErr
		}
	}()

	if same, err := sameFile(in, out); err != nil {
		return err
	} else if same {
		return fmt.Errorf("output file %q would overwrite the input", out)
	}
	if !cfg.overwrite {
		if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file %s already exists (use -f to overwrite)", out)
		}
	}

	e := &annotflip.Engine{
		Flip: annotflip.Flip{Horizontal: cfg.horizontal, Vertical: cfg.vertical},
	}
	if cfg.verbose {
		e.Trace = newTracer(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var rep *annotflip.Report
	switch ext := strings.ToLower(filepath.Ext(in)); ext {
	case ".pdf":
		rep, err = flipPDF(ctx, e, in, out, password)
	case ".yaml", ".yml":
		rep, err = flipRecords(ctx, e, in, out)
	default:
		return fmt.Errorf("%s: unsupported file type %q", in, ext)
	}
	if err != nil {
		return err
	}

	for _, o := range rep.Failed() {
		fmt.Fprintln(os.Stderr, "not changed:", o)
	}
	p := message.NewPrinter(language.English)
	p.Printf("processed %d annotations (%s), saved to %s\n",
		rep.Processed(), e.Flip, out)
	return nil
}

func flipPDF(ctx context.Context, e *annotflip.Engine, in, out, password string) (*annotflip.Report, error) {
	opt := &pdf.ReaderOptions{
		ReadPassword:  readPassword(password),
		ErrorHandling: pdf.ErrorHandlingReport,
	}
	doc, err := pdfdoc.Open(in, opt)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	rep, err := e.Run(ctx, doc)
	if err != nil {
		return nil, err
	}
	err = doc.Write(out)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func flipRecords(ctx context.Context, e *annotflip.Engine, in, out string) (*annotflip.Report, error) {
	f, err := recfile.Load(in)
	if err != nil {
		return nil, err
	}
	rep, err := e.Run(ctx, f)
	if err != nil {
		return nil, err
	}
	err = f.Save(out)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// readPassword returns a password callback for the PDF reader.  If a
// password was given on the command line, only this password is tried.
// Otherwise the user is asked on the terminal.
func readPassword(password string) func([]byte, int) string {
	return func(_ []byte, try int) string {
		if password != "" {
			if try == 0 {
				return password
			}
			return ""
		}

		fd := int(os.Stdin.Fd())
		if try >= maxPasswordTries || !term.IsTerminal(fd) {
			return ""
		}
		fmt.Fprint(os.Stderr, "password: ")
		passwd, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return ""
		}
		return string(passwd)
	}
}

// newTracer returns a trace function which logs every change made to an
// annotation.
func newTracer(logger *slog.Logger) func(annotflip.Event) {
	return func(ev annotflip.Event) {
		logger.Info(ev.Kind.String(),
			slog.Int("page", ev.Page+1),
			slog.Int("annot", ev.Index+1),
			slog.String("subtype", string(ev.Subtype)),
			slog.String("detail", ev.Detail))
	}
}

func sameFile(a, b string) (bool, error) {
	fa, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	fb, err := os.Stat(b)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return os.SameFile(fa, fb), nil
}
