package oairequest

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"

	"github.com/HexmosTech/oairequest/config"
	"github.com/HexmosTech/oairequest/endpoint"
	"github.com/HexmosTech/oairequest/exchange"
	"github.com/HexmosTech/oairequest/flags"
	"github.com/HexmosTech/oairequest/input"
	"github.com/HexmosTech/oairequest/logger"
	"github.com/HexmosTech/oairequest/output"
	"github.com/HexmosTech/oairequest/version"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Options struct {
	// Transport is used for the HTTP client if it is not nil.
	Transport http.RoundTripper
}

func Main(options *Options) error {
	return Run(os.Args, os.Stdin, os.Stdout, os.Stderr, options)
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer, options *Options) error {
	// Parse flags
	args, usage, optionSet, err := flags.Parse(args)
	if err != nil {
		usage.PrintUsage(stderr)
		return err
	}
	inputOptions := optionSet.InputOptions
	exchangeOptions := optionSet.ExchangeOptions
	outputOptions := optionSet.OutputOptions

	// Print version or licenses
	if optionSet.PrintVersion {
		fmt.Fprintf(stdout, "%s %s\n", version.Name, version.Current())
		return nil
	}
	if optionSet.PrintLicense {
		version.PrintLicenses(stdout)
		return nil
	}

	// Load config
	cfg, err := config.Load(optionSet.ConfigFile)
	if err != nil {
		return err
	}
	logLevel := cfg.LogLevel
	if optionSet.Verbose {
		logLevel = "debug"
	}
	log := logger.New(stderr, logLevel)
	defer log.Sync()

	// Parse positional arguments
	in, err := input.ParseArgs(args, stdin, &inputOptions)
	if _, ok := errors.Cause(err).(*input.UsageError); ok {
		usage.PrintUsage(stderr)
		return err
	}
	if err != nil {
		return err
	}

	// Build request
	baseURL := firstNonEmpty(optionSet.BaseURL, cfg.BaseURL)
	e, ok := endpoint.Lookup(baseURL, in.Endpoint)
	if !ok {
		return errors.Errorf("unknown endpoint: %s", in.Endpoint)
	}
	warnOnBodyMismatch(log, in)
	creds := exchange.Credentials{
		APIKey:         firstNonEmpty(optionSet.APIKey, cfg.APIKey),
		OrganizationID: firstNonEmpty(optionSet.Organization, cfg.Organization),
	}
	request, err := exchange.BuildHTTPRequest(e, creds, in)
	if err != nil {
		return err
	}
	log.Debugw("built request",
		"method", request.Method,
		"url", request.URL.String(),
		"content_type", request.Header.Get("Content-Type"),
		"content_length", request.ContentLength,
	)

	body, err := requestBody(request)
	if err != nil {
		return err
	}
	if outputOptions.OutputFile != "" {
		fileWriter := output.NewFileWriter(outputOptions.OutputFile, &outputOptions)
		if err := fileWriter.Write(body); err != nil {
			return err
		}
		log.Infow("wrote request body", "path", fileWriter.Path(), "bytes", len(body))
	}

	writer := bufio.NewWriter(stdout)
	defer writer.Flush()
	printer := newPrinter(writer, &outputOptions)

	// Print request
	if outputOptions.PrintRequestHeader {
		if err := printer.PrintRequestLine(request); err != nil {
			return err
		}
		if err := printer.PrintHeader(request.Header); err != nil {
			return err
		}
	}
	if outputOptions.PrintRequestBody && len(body) > 0 {
		if err := printer.PrintBody(bytes.NewReader(body), request.Header.Get("Content-Type")); err != nil {
			return err
		}
		fmt.Fprintln(writer)
	}
	if optionSet.Offline {
		return nil
	}
	writer.Flush()

	// Send request and receive response
	if exchangeOptions.Timeout == 0 {
		exchangeOptions.Timeout = cfg.Timeout
	}
	if options.Transport != nil {
		exchangeOptions.Transport = options.Transport
	}
	client := exchange.NewClient(&exchangeOptions)
	resp, err := client.Send(context.Background(), request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	log.Debugw("received response", "status", resp.StatusCode)

	// Print response
	if outputOptions.PrintResponseHeader {
		if err := printer.PrintStatusLine(resp.Proto, resp.Status, resp.StatusCode); err != nil {
			return err
		}
		if err := printer.PrintHeader(resp.Header); err != nil {
			return err
		}
	}
	if outputOptions.PrintResponseBody {
		if err := printer.PrintBody(resp.Body, resp.Header.Get("Content-Type")); err != nil {
			return err
		}
	}

	return nil
}

func newPrinter(w io.Writer, options *output.Options) output.Printer {
	if options.EnableFormat {
		return output.NewPrettyPrinter(output.PrettyPrinterConfig{
			Writer:      w,
			EnableColor: options.EnableColor,
		})
	}
	return output.NewPlainPrinter(w)
}

// requestBody returns a copy of the body so that the request stays sendable.
func requestBody(request *http.Request) ([]byte, error) {
	if request.GetBody == nil {
		return nil, nil
	}
	rc, err := request.GetBody()
	if err != nil {
		return nil, errors.Wrap(err, "copying request body")
	}
	defer rc.Close()
	b, err := ioutil.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrap(err, "reading request body")
	}
	return b, nil
}

func warnOnBodyMismatch(log *zap.SugaredLogger, in *input.Input) {
	op, ok := endpoint.FindOperation(in.Endpoint)
	if !ok || in.Body.BodyType == input.EmptyBody {
		return
	}
	if op.Multipart != (in.Body.BodyType == input.FormBody) {
		log.Warnw("body encoding differs from what the operation usually takes",
			"endpoint", op.Name,
			"multipart", op.Multipart,
		)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
