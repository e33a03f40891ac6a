package converter

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/talentstack/cvintake/config"
	"github.com/talentstack/cvintake/dto"
	er "github.com/talentstack/cvintake/internal/errors"
	"github.com/talentstack/cvintake/internal/logger"
	"github.com/talentstack/cvintake/internal/models"
	"github.com/talentstack/cvintake/internal/tracing"
)

// converterService shepherds one attachment through the external parser
// subprocess: write input temp file, run the parser, read the output
// JSON. Both temp files are removed on every exit path.
type converterService struct {
	executable string
	script     string
	workDir    string
	tempDir    string
	log        logger.Logger
}

func NewConverterService(cfg *config.ConverterConfig, log logger.Logger) *converterService {
	workDir := cfg.WorkDir
	if workDir == "" {
		workDir = filepath.Dir(cfg.Script)
	}
	return &converterService{
		executable: cfg.Executable,
		script:     cfg.Script,
		workDir:    workDir,
		tempDir:    cfg.TempDir,
		log:        log,
	}
}

func (s *converterService) Convert(ctx context.Context, attachment models.ExtractedAttachment) (*dto.CandidateDocument, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "converterService.Convert")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("filename", attachment.Filename)

	inputFile, err := os.CreateTemp(s.tempDir, "cvintake-input-*"+filepath.Ext(attachment.Filename))
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "create input temp file")
	}
	defer os.Remove(inputFile.Name())

	outputFile, err := os.CreateTemp(s.tempDir, "cvintake-output-*.json")
	if err != nil {
		inputFile.Close()
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "create output temp file")
	}
	defer os.Remove(outputFile.Name())
	outputFile.Close()

	if _, err := inputFile.Write(attachment.Data); err != nil {
		inputFile.Close()
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "write input temp file")
	}
	if err := inputFile.Close(); err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "close input temp file")
	}

	if err := s.run(ctx, inputFile.Name(), outputFile.Name()); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	// Subprocess exited 0; only now is the output file trusted.
	raw, err := os.ReadFile(outputFile.Name())
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "read converter output")
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return doc, nil
}

// run invokes the parser and blocks until it terminates, streaming its
// combined stdout/stderr to the service log line by line.
func (s *converterService) run(ctx context.Context, inputPath, outputPath string) error {
	cmd := exec.CommandContext(ctx, s.executable, s.script,
		"--input", inputPath,
		"--output", outputPath,
	)
	cmd.Dir = s.workDir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "pipe converter output")
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "start converter")
	}

	// bufio.Reader instead of Scanner: parsers dump whole documents into
	// single diagnostic lines, and Scanner's token limit would stop
	// draining the pipe and deadlock Wait below.
	reader := bufio.NewReader(stdout)
	for {
		line, readErr := reader.ReadString('\n')
		if line != "" {
			s.log.Infof("converter: %s", strings.TrimRight(line, "\r\n"))
		}
		if readErr != nil {
			break
		}
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &er.ConverterError{ExitCode: exitErr.ExitCode()}
		}
		return errors.Wrap(err, "wait for converter")
	}
	return nil
}

// decodeDocument parses the converter's UTF-8 JSON output, tolerating
// unknown fields, and enforces the fields the record cannot exist
// without.
func decodeDocument(raw []byte) (*dto.CandidateDocument, error) {
	var doc dto.CandidateDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(er.ErrSchemaMismatch, "malformed converter output: %v", err)
	}

	if doc.PersonalInfo.FullName == "" {
		return nil, errors.Wrap(er.ErrSchemaMismatch, "personal_info.full_name missing")
	}
	if doc.PersonalInfo.Contact.Email == "" {
		return nil, errors.Wrap(er.ErrSchemaMismatch, "personal_info.contact.email missing")
	}

	return &doc, nil
}
