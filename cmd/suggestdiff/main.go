// Command suggestdiff overlays suggest-mode diffs on block documents.
//
// Direct mode diffs two markdown files as block documents:
//
//	suggestdiff original.md current.md
//	suggestdiff --json original.md current.md
//	suggestdiff --content-only original.md current.md
//
// Session mode keeps a snapshot in a state directory, the way an editor
// host drives a suggestion session:
//
//	suggestdiff --store .suggest --doc readme --enter readme.md
//	suggestdiff --store .suggest --doc readme readme.md
//	suggestdiff --store .suggest --doc readme --accept
//	suggestdiff --store .suggest --doc readme --reject
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dacharyc/suggestdiff"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Exit codes
const (
	exitIdentical = 0 // documents are identical
	exitDiffer    = 1 // documents differ
	exitError     = 2 // error occurred
)

func main() {
	os.Exit(run())
}

func run() int {
	jsonOut := flag.BoolP("json", "j", false, "emit block diffs and decoration instructions as JSON")
	summaryOut := flag.BoolP("summary", "s", false, "print only diff counts")
	textOut := flag.BoolP("text", "t", false, "plain-text preview diff instead of block diff")
	contentOnly := flag.Bool("content-only", false, "strip block ids and match purely by content")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	profilePath := flag.String("profile", "", "YAML render profile")
	storeDir := flag.String("store", "", "session state directory (enables session mode)")
	docID := flag.String("doc", "", "document id for session mode")
	enterPath := flag.String("enter", "", "start a suggestion session by snapshotting this file")
	accept := flag.Bool("accept", false, "accept all suggestions and end the session")
	reject := flag.Bool("reject", false, "reject all suggestions and print the restored document")
	quiet := flag.BoolP("quiet", "q", false, "log errors only")
	version := flag.BoolP("version", "v", false, "print version and exit")
	help := flag.BoolP("help", "h", false, "print usage and exit")
	flag.Parse()

	if *version {
		fmt.Printf("suggestdiff %s\n", Version)
		return exitIdentical
	}
	if *help {
		printUsage()
		return exitIdentical
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if *quiet {
		logger = logger.Level(zerolog.ErrorLevel)
	}

	fmtOpts := suggestdiff.DefaultFormatOptions()
	if *noColor {
		fmtOpts.UseColor = false
	}
	if *profilePath != "" {
		if err := applyProfile(*profilePath, &fmtOpts); err != nil {
			logger.Error().Err(err).Str("profile", *profilePath).Msg("bad render profile")
			return exitError
		}
	}

	out := output{
		json:    *jsonOut,
		summary: *summaryOut,
		fmtOpts: fmtOpts,
	}

	if *storeDir != "" {
		return runSession(sessionArgs{
			storeDir:    *storeDir,
			docID:       *docID,
			enterPath:   *enterPath,
			accept:      *accept,
			reject:      *reject,
			contentOnly: *contentOnly,
			files:       flag.Args(),
		}, out, logger)
	}

	if flag.NArg() != 2 {
		printUsage()
		return exitError
	}
	return runDirect(flag.Arg(0), flag.Arg(1), *textOut, *contentOnly, out, logger)
}

// output bundles the selected output mode and formatting.
type output struct {
	json    bool
	summary bool
	fmtOpts suggestdiff.FormatOptions
}

// runDirect diffs two markdown files.
func runDirect(originalPath, currentPath string, textMode, contentOnly bool, out output, logger zerolog.Logger) int {
	originalSrc, err := os.ReadFile(originalPath)
	if err != nil {
		logger.Error().Err(err).Msg("cannot read original")
		return exitError
	}
	currentSrc, err := os.ReadFile(currentPath)
	if err != nil {
		logger.Error().Err(err).Msg("cannot read current")
		return exitError
	}

	if textMode {
		spans := suggestdiff.DiffTextPreview(string(originalSrc), string(currentSrc))
		fmt.Println(suggestdiff.FormatTextSpans(spans, out.fmtOpts))
		for _, sp := range spans {
			if sp.Op != suggestdiff.Equal {
				return exitDiffer
			}
		}
		return exitIdentical
	}

	// Each file gets its own id namespace, so matching runs on content
	// the way an editor reload does.
	origPrefix, curPrefix := "a", "b"
	if contentOnly {
		origPrefix, curPrefix = "", ""
	}
	original, err := BlocksFromMarkdown(originalSrc, origPrefix)
	if err != nil {
		logger.Error().Err(err).Msg("cannot parse original")
		return exitError
	}
	current, err := BlocksFromMarkdown(currentSrc, curPrefix)
	if err != nil {
		logger.Error().Err(err).Msg("cannot parse current")
		return exitError
	}

	live := LayoutBlocks(current)
	diffs, decorations := suggestdiff.BuildDocumentDecorations(original, current, live, true)
	return emit(diffs, decorations, current, out, logger)
}

// sessionArgs carries the session-mode flags.
type sessionArgs struct {
	storeDir    string
	docID       string
	enterPath   string
	accept      bool
	reject      bool
	contentOnly bool
	files       []string
}

// sessionIDPrefix picks the id namespace session mode parses with. The
// snapshot and later reparses share one namespace, so in-place edits
// keep their ids and classify as Modified.
func sessionIDPrefix(contentOnly bool) string {
	if contentOnly {
		return ""
	}
	return "b"
}

// runSession drives a persisted suggestion session.
func runSession(args sessionArgs, out output, logger zerolog.Logger) int {
	if args.docID == "" {
		logger.Error().Msg("session mode requires --doc")
		return exitError
	}
	store, err := suggestdiff.NewFileStore(args.storeDir)
	if err != nil {
		logger.Error().Err(err).Msg("cannot open session store")
		return exitError
	}
	sess := suggestdiff.NewSession(args.docID, store, logger)

	switch {
	case args.enterPath != "":
		src, err := os.ReadFile(args.enterPath)
		if err != nil {
			logger.Error().Err(err).Msg("cannot read snapshot file")
			return exitError
		}
		blocks, err := BlocksFromMarkdown(src, sessionIDPrefix(args.contentOnly))
		if err != nil {
			logger.Error().Err(err).Msg("cannot parse snapshot file")
			return exitError
		}
		if err := sess.Enter(blocks, PlainText(blocks)); err != nil {
			logger.Error().Err(err).Msg("cannot enter suggest mode")
			return exitError
		}
		return exitIdentical

	case args.accept:
		if err := sess.AcceptAll(); err != nil {
			logger.Error().Err(err).Msg("accept failed")
			return exitError
		}
		return exitIdentical

	case args.reject:
		_, text, err := sess.RejectAll()
		if err != nil {
			logger.Error().Err(err).Msg("reject failed")
			return exitError
		}
		fmt.Println(text)
		return exitIdentical

	case len(args.files) == 1:
		src, err := os.ReadFile(args.files[0])
		if err != nil {
			logger.Error().Err(err).Msg("cannot read current file")
			return exitError
		}
		current, err := BlocksFromMarkdown(src, sessionIDPrefix(args.contentOnly))
		if err != nil {
			logger.Error().Err(err).Msg("cannot parse current file")
			return exitError
		}
		if err := sess.SetPendingText(PlainText(current)); err != nil {
			logger.Error().Err(err).Msg("cannot record pending text")
			return exitError
		}
		live := LayoutBlocks(current)
		diffs, decorations, err := sess.Recompute(current, live, true)
		if err != nil {
			logger.Error().Err(err).Msg("recompute failed")
			return exitError
		}
		if diffs == nil {
			logger.Warn().Msg("no active suggestion session, nothing to diff")
			return exitIdentical
		}
		return emit(diffs, decorations, current, out, logger)

	default:
		printUsage()
		return exitError
	}
}

// emit writes the diff in the selected output mode and returns the exit
// code reflecting whether the documents differ.
func emit(diffs []suggestdiff.BlockDiff, decorations []suggestdiff.Decoration, current []suggestdiff.Block, out output, logger zerolog.Logger) int {
	summary := suggestdiff.Summarize(diffs)

	switch {
	case out.json:
		payload := struct {
			Diffs       []suggestdiff.BlockDiff  `json:"diffs"`
			Decorations []suggestdiff.Decoration `json:"decorations"`
			Summary     suggestdiff.Summary      `json:"summary"`
		}{diffs, decorations, summary}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			logger.Error().Err(err).Msg("cannot encode output")
			return exitError
		}
		fmt.Println(string(data))

	case out.summary:
		fmt.Printf("unchanged: %d, modified: %d, added: %d, deleted: %d\n",
			summary.Unchanged, summary.Modified, summary.Added, summary.Deleted)

	default:
		fmt.Println(suggestdiff.FormatBlockDiffs(diffs, current, out.fmtOpts))
	}

	if summary.HasChanges() {
		return exitDiffer
	}
	return exitIdentical
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  suggestdiff [flags] ORIGINAL.md CURRENT.md
  suggestdiff --store DIR --doc ID --enter FILE.md
  suggestdiff --store DIR --doc ID [flags] CURRENT.md
  suggestdiff --store DIR --doc ID --accept | --reject

Flags:
%s`, flag.CommandLine.FlagUsages())
}
