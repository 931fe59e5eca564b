// Command-line entry point for the ticket parser.
//
// Note about input formats
// ------------------------
// The parse command expects JSONL where each line is a document object:
//
//	{"airline":"7C","text":"...extracted PDF text...","namelist":"...optional..."}
//
// The airline field selects the adapter; text is the extracted document
// body (PDF text layer or raw HTML depending on the airline). Use -all
// to keep documents even when parsing fails.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	_ "ticketparser/internal/airlines" // register all airline adapters via init()
	"ticketparser/internal/booking"
	"ticketparser/internal/parse"
	"ticketparser/internal/storage"
)

type ParseOut struct {
	Document booking.Document `json:"document"`
	Draft    *booking.Draft   `json:"draft,omitempty"`
	Error    string           `json:"error,omitempty"`
}

type Stats struct {
	Lines       int
	Parsed      int
	Failed      int
	NeedsInput  int
	GroupDrafts int
	Stored      int
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "ticketparser - commands:")
	fmt.Fprintln(w, "  parse    - parse JSONL documents and output booking drafts")
	fmt.Fprintln(w, "  ingest   - subscribe to a NATS subject and parse documents as they arrive")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ticketparser parse -input documents.jsonl [-output out.json] [-pretty] [-all] [-stats] [-db drafts.db]")
	fmt.Fprintln(w, "  ticketparser ingest -nats nats://localhost:4222 -subject tickets.documents [-db drafts.db]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - Input must be JSONL (one JSON object per line) with airline, text and optional namelist fields.")
	fmt.Fprintln(w, "  - With -db, drafts are also written to a local SQLite database.")
	fmt.Fprintln(w, "")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "parse":
		runParse(os.Args[2:])
	case "ingest":
		runIngest(os.Args[2:])
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage(os.Stderr)
		os.Exit(2)
	}
}

func runParse(args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	inPath := fs.String("input", "", "Input JSONL file (default: stdin)")
	outPath := fs.String("output", "", "Output JSON file (default: stdout)")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	includeAll := fs.Bool("all", false, "Include documents even if parsing failed")
	showStats := fs.Bool("stats", false, "Print basic counters to stderr")
	dbPath := fs.String("db", "", "SQLite database to store drafts in (optional)")
	verbose := fs.Bool("v", false, "Verbose logging to stderr")
	_ = fs.Parse(args)

	log := zap.NewNop()
	if *verbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
	}
	parser := parse.New(parse.WithLogger(log))

	var db *storage.DB
	if *dbPath != "" {
		var err error
		db, err = storage.Open(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	var r io.Reader = os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open input: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	scanner := bufio.NewScanner(r)
	// Extracted PDF text can be long; bump buffer (20MB).
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 20*1024*1024)

	out := make([]ParseOut, 0, 64)
	st := &Stats{}

	for scanner.Scan() {
		st.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var doc booking.Document
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			fmt.Fprintf(os.Stderr, "line %d: invalid JSON: %v\n", st.Lines, err)
			st.Failed++
			continue
		}

		draft, err := parser.Parse(doc)
		if err != nil {
			st.Failed++
			if *includeAll {
				out = append(out, ParseOut{Document: doc, Error: err.Error()})
			}
			continue
		}
		st.Parsed++
		if draft.NeedsPassengerInput {
			st.NeedsInput++
		}
		if draft.IsGroupBooking {
			st.GroupDrafts++
		}

		if db != nil {
			if _, err := db.Insert(draft, doc.Text); err != nil {
				fmt.Fprintf(os.Stderr, "line %d: store failed: %v\n", st.Lines, err)
			} else {
				st.Stored++
			}
		}

		out = append(out, ParseOut{Document: doc, Draft: draft})
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Input read error: %v\n", err)
		os.Exit(1)
	}

	var wout io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		wout = f
	}

	enc, err := marshalJSON(out, *pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "JSON encode error: %v\n", err)
		os.Exit(1)
	}
	_, _ = wout.Write(enc)
	if wout == os.Stdout {
		_, _ = wout.Write([]byte("\n"))
	}

	if *showStats {
		fmt.Fprintf(os.Stderr,
			"stats: lines=%d parsed=%d failed=%d needs_input=%d groups=%d stored=%d\n",
			st.Lines, st.Parsed, st.Failed, st.NeedsInput, st.GroupDrafts, st.Stored,
		)
	}
}

func runIngest(args []string) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	natsURL := fs.String("nats", nats.DefaultURL, "NATS server URL")
	subject := fs.String("subject", "tickets.documents", "NATS subject to subscribe to")
	queue := fs.String("queue", "ticketparser", "NATS queue group")
	dbPath := fs.String("db", "drafts.db", "SQLite database to store drafts in")
	_ = fs.Parse(args)

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	parser := parse.New(parse.WithLogger(log))

	db, err := storage.Open(*dbPath)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	nc, err := nats.Connect(*natsURL,
		nats.MaxReconnects(-1),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats disconnected", zap.Error(err))
		}),
	)
	if err != nil {
		log.Fatal("connect to nats", zap.Error(err))
	}
	defer nc.Close()

	sub, err := nc.QueueSubscribe(*subject, *queue, func(msg *nats.Msg) {
		var doc booking.Document
		if err := json.Unmarshal(msg.Data, &doc); err != nil {
			log.Warn("invalid document", zap.Error(err))
			return
		}

		draft, err := parser.Parse(doc)
		if err != nil {
			log.Warn("parse failed",
				zap.String("airline", doc.Airline),
				zap.Error(err))
			return
		}

		id, err := db.Insert(draft, doc.Text)
		if err != nil {
			log.Error("store draft", zap.Error(err))
			return
		}
		log.Info("draft stored",
			zap.Int64("id", id),
			zap.String("airline", draft.AirlineCode),
			zap.String("reservation", draft.ReservationNumber),
			zap.Int("passengers", len(draft.Passengers)))

		if msg.Reply != "" {
			if body, err := json.Marshal(draft); err == nil {
				_ = msg.Respond(body)
			}
		}
	})
	if err != nil {
		log.Fatal("subscribe", zap.Error(err))
	}
	defer func() { _ = sub.Unsubscribe() }()

	log.Info("ingesting documents",
		zap.String("url", *natsURL),
		zap.String("subject", *subject))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")
}

func marshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
