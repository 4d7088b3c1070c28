package flags

import (
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/HexmosTech/oairequest/exchange"
	"github.com/HexmosTech/oairequest/input"
	"github.com/HexmosTech/oairequest/output"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
)

var reNumber = regexp.MustCompile(`^[0-9.]+$`)

type Usage interface {
	PrintUsage(w io.Writer)
}

type OptionSet struct {
	InputOptions    input.Options
	ExchangeOptions exchange.Options
	OutputOptions   output.Options

	APIKey       string
	Organization string
	BaseURL      string
	ConfigFile   string

	Offline      bool
	Verbose      bool
	PrintVersion bool
	PrintLicense bool
}

type terminalInfo struct {
	stdinIsTerminal  bool
	stdoutIsTerminal bool
}

func Parse(args []string) ([]string, Usage, *OptionSet, error) {
	return parse(args, terminalInfo{
		stdinIsTerminal:  isatty.IsTerminal(os.Stdin.Fd()),
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()),
	})
}

func parse(args []string, terminalInfo terminalInfo) ([]string, Usage, *OptionSet, error) {
	inputOptions := input.Options{}
	exchangeOptions := exchange.Options{}
	outputOptions := output.Options{}
	optionSet := &OptionSet{}
	var ignoreStdin bool
	var askKey bool
	var verifyFlag string
	printFlag := "\000" // "\000" is a special value that indicates user did not specified --print
	timeout := ""

	flagSet := getopt.New()
	flagSet.SetParameters("[METHOD] ENDPOINT [REQUEST_ITEM [REQUEST_ITEM ...]]")
	flagSet.BoolVarLong(&inputOptions.JSON, "json", 'j', "serialize body as JSON (default)")
	flagSet.BoolVarLong(&inputOptions.Form, "form", 'f', "serialize body as multipart/form-data")
	flagSet.StringVarLong(&printFlag, "print", 'p', "specifies what the output should contain (HBhb)")
	flagSet.BoolVarLong(&optionSet.Offline, "offline", 0, "build the request and print it without sending")
	flagSet.BoolVarLong(&ignoreStdin, "ignore-stdin", 0, "do not attempt to read stdin")
	flagSet.StringVarLong(&timeout, "timeout", 0, "timeout seconds that you allow the whole operation to take")
	flagSet.BoolVarLong(&exchangeOptions.FollowRedirects, "follow", 'F', "follow 30x Location redirects")
	flagSet.StringVarLong(&verifyFlag, "verify", 0, "set to \"no\" to skip checking the host's SSL certificate")
	flagSet.StringVarLong(&optionSet.Organization, "org", 'o', "organization sent in the OpenAI-Organization header")
	flagSet.StringVarLong(&optionSet.BaseURL, "base-url", 0, "origin of the API, e.g. https://api.openai.com")
	flagSet.StringVarLong(&optionSet.ConfigFile, "config", 'c', "path of a config file")
	flagSet.BoolVarLong(&askKey, "ask-key", 0, "read the API key from the terminal")
	flagSet.BoolVarLong(&optionSet.Verbose, "verbose", 'v', "log debug information to stderr")
	flagSet.StringVarLong(&outputOptions.OutputFile, "output", 0, "write the request body to the file")
	flagSet.BoolVarLong(&outputOptions.Overwrite, "overwrite", 0, "overwrite the file given by --output")
	flagSet.BoolVarLong(&optionSet.PrintVersion, "version", 0, "print version and exit")
	flagSet.BoolVarLong(&optionSet.PrintLicense, "license", 0, "print license information and exit")
	if err := flagSet.Getopt(args, nil); err != nil {
		return nil, flagSet, nil, errors.Wrap(err, "parsing flags")
	}

	// Check stdin
	if !ignoreStdin && !terminalInfo.stdinIsTerminal {
		inputOptions.ReadStdin = true
	}

	// Parse --print
	if err := parsePrintFlag(printFlag, optionSet.Offline, terminalInfo.stdoutIsTerminal, &outputOptions); err != nil {
		return nil, flagSet, nil, err
	}

	// Parse --timeout
	if timeout != "" {
		d, err := parseDurationOrSeconds(timeout)
		if err != nil {
			return nil, flagSet, nil, err
		}
		exchangeOptions.Timeout = d
	}

	// Parse --verify
	skipVerify, err := parseVerifyFlag(verifyFlag)
	if err != nil {
		return nil, flagSet, nil, err
	}
	exchangeOptions.SkipVerify = skipVerify

	// API key from terminal
	if askKey {
		key, err := askAPIKey()
		if err != nil {
			return nil, flagSet, nil, err
		}
		optionSet.APIKey = key
	}

	// Color
	outputOptions.EnableColor = terminalInfo.stdoutIsTerminal
	outputOptions.EnableFormat = terminalInfo.stdoutIsTerminal

	optionSet.InputOptions = inputOptions
	optionSet.ExchangeOptions = exchangeOptions
	optionSet.OutputOptions = outputOptions
	return flagSet.Args(), flagSet, optionSet, nil
}

func parsePrintFlag(printFlag string, offline bool, stdoutIsTerminal bool, outputOptions *output.Options) error {
	if printFlag == "\000" {
		// --print is not specified
		if offline {
			outputOptions.PrintRequestHeader = true
			outputOptions.PrintRequestBody = true
		} else if stdoutIsTerminal {
			outputOptions.PrintResponseHeader = true
			outputOptions.PrintResponseBody = true
		} else {
			outputOptions.PrintResponseBody = true
		}
		return nil
	}
	for _, c := range printFlag {
		switch c {
		case 'H':
			outputOptions.PrintRequestHeader = true
		case 'B':
			outputOptions.PrintRequestBody = true
		case 'h':
			outputOptions.PrintResponseHeader = true
		case 'b':
			outputOptions.PrintResponseBody = true
		default:
			return errors.Errorf("Invalid char in --print value (must be consist of HBhb): %c", c)
		}
	}
	return nil
}

func parseDurationOrSeconds(timeout string) (time.Duration, error) {
	if reNumber.MatchString(timeout) {
		timeout += "s"
	}
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return time.Duration(0), errors.Errorf("Value of --timeout must be a number or duration string: %v", timeout)
	}
	return d, nil
}

func parseVerifyFlag(verifyFlag string) (bool, error) {
	switch strings.ToLower(verifyFlag) {
	case "", "yes", "true":
		return false, nil
	case "no", "false":
		return true, nil
	default:
		return false, errors.Errorf("Value of --verify must be yes or no: %s", verifyFlag)
	}
}
