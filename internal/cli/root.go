package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joseph-ayodele/docsheet/internal/common"
	"github.com/joseph-ayodele/docsheet/internal/extract"
	"github.com/joseph-ayodele/docsheet/internal/llm"
	"github.com/joseph-ayodele/docsheet/internal/llm/openai"
	"github.com/joseph-ayodele/docsheet/internal/pdftext"
	"github.com/joseph-ayodele/docsheet/internal/pipeline"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// app carries what every command needs. Each root command owns one, so
// tests can build as many independent trees as they like.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool

	cfg    *common.Config
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer

	// newCompleter builds the model client; tests swap it for a fake.
	newCompleter func(cfg common.LLMConfig, logger *slog.Logger) (llm.Completer, error)
}

func defaultCompleter(cfg common.LLMConfig, logger *slog.Logger) (llm.Completer, error) {
	c, err := openai.NewClient(openai.ConfigFromCommon(cfg), logger)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// NewRootCmd builds the full command tree writing to out and errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	return newRootCmd(&app{
		v:            common.NewViper(),
		out:          out,
		errOut:       errOut,
		newCompleter: defaultCompleter,
	})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "docsheet",
		Short: "docsheet - PDF to structured Excel with extraction scoring",
		Long: `docsheet reads a PDF, asks a language model to turn its text into
key/value/comment records, writes them to a four-column spreadsheet
(#, Key, Value, Comments) and scores the result against the source text.

The score is a heuristic. It needs no expected output: it checks the
table's shape, how many numbers and capitalized words of the document
reappear in the output, and how descriptive the keys, values and
comments look.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.docsheet/config.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output (debug logging)")
	pf.String("api-key", "", "model API key (default: $GROQ_API_KEY)")
	pf.String("model", "", "model name")
	pf.String("base-url", "", "OpenAI-compatible endpoint")
	pf.String("pdf-method", "", "PDF text backend: native | pdftotext")
	pf.String("log-format", "", "log format: text | json")

	_ = a.v.BindPFlag("llm.api_key", pf.Lookup("api-key"))
	_ = a.v.BindPFlag("llm.model", pf.Lookup("model"))
	_ = a.v.BindPFlag("llm.base_url", pf.Lookup("base-url"))
	_ = a.v.BindPFlag("pdf.method", pf.Lookup("pdf-method"))
	_ = a.v.BindPFlag("log.format", pf.Lookup("log-format"))

	root.AddCommand(
		newExtractCmd(a),
		newEvaluateCmd(a),
		newBatchCmd(a),
		newInteractiveCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// Execute runs the root command against the process streams.
func Execute() error {
	return NewRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background())
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(a.out, "docsheet %s\n", Version)
			return err
		},
	}
}

// initConfig reads the config file, env and flags into a.cfg and builds the
// logger. A missing default config file is fine; a missing explicit one is not.
func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(filepath.Join(home, ".docsheet"))
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("config")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return common.NewKindError(common.KindConfig, "read config", err)
		}
	}

	a.cfg = common.LoadConfig(a.v)
	if a.verbose {
		a.cfg.Log.Level = "debug"
	}
	a.logger = common.NewLogger(a.errOut, a.cfg.Log)
	slog.SetDefault(a.logger)
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("config.loaded", "path", used)
	}
	return a.cfg.Validate()
}

func (a *app) textExtractor() *pdftext.Extractor {
	return pdftext.NewExtractor(pdftext.Config{
		Method:    a.cfg.PDF.Method,
		Pdftotext: a.cfg.PDF.Pdftotext,
		MaxPages:  a.cfg.PDF.MaxPages,
	}, a.logger)
}

// processor wires the full pipeline. withModel=false is for commands that
// only score existing files and must work without credentials.
func (a *app) processor(withModel bool) (*pipeline.Processor, error) {
	var records extract.RecordExtractor
	if withModel {
		if err := a.cfg.RequireCredential(); err != nil {
			return nil, err
		}
		c, err := a.newCompleter(a.cfg.LLM, a.logger)
		if err != nil {
			return nil, err
		}
		records = extract.NewExtractor(c, a.logger)
	}
	return pipeline.NewProcessor(a.logger, a.textExtractor(), records), nil
}
