package encryption

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/kdsm/internal/config"
	"github.com/idelchi/kdsm/internal/fileutil"
	"github.com/idelchi/kdsm/internal/kdsm"
)

// Processor handles the encryption and decryption of text files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// engine performs the cipher transform
	engine *kdsm.Engine

	// key is the resolved cipher key
	key string

	logger hclog.Logger

	// results channels processing outcomes to the printer goroutine
	results chan result
}

// result is the outcome of processing a single file.
type result struct {
	input      string
	output     string
	outputSize int64
	err        error
}

// NewProcessor creates a Processor transforming files with engine under key.
func NewProcessor(cfg *config.Config, engine *kdsm.Engine, key string, logger hclog.Logger) *Processor {
	return &Processor{
		cfg:     cfg,
		engine:  engine,
		key:     key,
		logger:  logger,
		results: make(chan result, len(cfg.Files)),
	}
}

// Transform encrypts or decrypts text according to the configuration.
// The seed is derived once per call, so a clock seed stays fixed between encryption and verification.
// With verification enabled, ciphertext that would not decrypt back is rejected.
func (p *Processor) Transform(text string) (string, error) {
	s, err := p.engine.Seed(p.key)
	if err != nil {
		return "", fmt.Errorf("deriving seed: %w", err)
	}

	if p.cfg.Decrypt {
		return kdsm.DecryptSeed(text, s), nil
	}

	out := kdsm.EncryptSeed(text, s)

	if p.cfg.Verify {
		if back := kdsm.DecryptSeed(out, s); back != text {
			return "", fmt.Errorf("%w: %s", ErrNotReversible, firstDifference(text, back))
		}
	}

	return out, nil
}

// ProcessFiles concurrently processes all files specified in the configuration.
// Returns the number of successfully processed files, the number of errors and the total output size.
//
//nolint:cyclop,gocognit
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for res := range p.results {
			if res.err != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", res.input, res.err)

				continue
			}

			processed++

			totalSize += res.outputSize

			if !p.cfg.Quiet {
				fmt.Printf("Processed %q -> %q\n", res.input, res.output) //nolint:forbidigo
			}

			if p.cfg.Delete && res.output != res.input {
				if err := os.Remove(res.input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", res.input, err)
				} else if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", res.input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := OutputPath(file, p.cfg)

			if outPath == filepath.Clean(file) {
				p.results <- result{input: file, err: fmt.Errorf("%w: %q", ErrSameOutput, outPath)}

				return ErrSameOutput
			}

			size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- result{input: file, err: err}

				return err
			}

			p.results <- result{input: filepath.Clean(file), output: outPath, outputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// processFile transforms a single file and atomically writes the result to outPath.
func (p *Processor) processFile(filename, outPath string) (int64, error) {
	src, err := fileutil.Stat(filename)
	if err != nil {
		return 0, err
	}

	data, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("reading input file: %w", err)
	}

	if !utf8.Valid(data) {
		return 0, ErrNotText
	}

	p.logger.Debug("transforming", "file", filename, "decrypt", p.cfg.Decrypt, "runes", utf8.RuneCount(data))

	out, err := p.Transform(string(data))
	if err != nil {
		return 0, err
	}

	if err := fileutil.WriteAtomic(outPath, []byte(out), src.OutputMode()); err != nil {
		return 0, err
	}

	size, err := fileutil.FinalizeOutput(outPath, p.cfg.PreserveTimestamps, src.Info.ModTime())
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

// OutputPath generates the output file path based on the input filename
// and the configured suffixes for encryption/decryption.
func OutputPath(filename string, cfg *config.Config) string {
	ext := cfg.Suffixes.Encrypt

	if cfg.Decrypt {
		filename = strings.TrimSuffix(filename, cfg.Suffixes.Encrypt)
		ext = cfg.Suffixes.Decrypt
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}

// firstDifference locates the first rune at which got departs from want.
func firstDifference(want, got string) string {
	w, g := []rune(want), []rune(got)

	for i := range min(len(w), len(g)) {
		if w[i] != g[i] {
			return fmt.Sprintf("character %d (%U) would decrypt as %U", i, w[i], g[i])
		}
	}

	return "length changed"
}
