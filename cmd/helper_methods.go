package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"

	kerrors "github.com/PolarWolf314/dotenvage/internal/errors"
	"github.com/PolarWolf314/dotenvage/internal/loader"
	"github.com/PolarWolf314/dotenvage/internal/secrets"
	"github.com/PolarWolf314/dotenvage/internal/ui"
	"github.com/PolarWolf314/dotenvage/internal/workflows"
)

// startSpinner creates and starts a spinner on stderr when not in verbose
// or debug mode. The returned cleanup stops it and prints s.FinalMSG to
// out; FinalMSG values do not need trailing newlines.
func startSpinner(message string, out io.Writer) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Fprint(out, finalMsg)
		}
	}

	return s, cleanup
}

// scope builds the workflow scope from the global --dir flag.
func scope(file string) workflows.Scope {
	return workflows.Scope{Dir: workDir, File: file, Logger: Logger}
}

// formatError turns a workflow error into a user-facing message.
func formatError(err error) string {
	var decryptErr *loader.DecryptError

	switch {
	case errors.Is(err, kerrors.ErrKeyNotFound):
		return ui.Error.Sprint("✗") + " No age identity found\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("dotenvage keygen") + " or set " +
			ui.Name.Sprint(secrets.IdentityEnvVars[0]) + "\n" +
			ui.Muted.Sprint(err.Error())

	case errors.Is(err, kerrors.ErrInvalidIdentity):
		return ui.Error.Sprint("✗") + " The configured age identity is invalid\n" +
			ui.Muted.Sprint(err.Error())

	case errors.As(err, &decryptErr):
		return ui.Error.Sprint("✗") + " Failed to decrypt " + ui.Name.Sprint(decryptErr.Name) +
			" from " + ui.Path.Sprint(decryptErr.Path) + "\n" +
			ui.Info.Sprint("→") + " Check that the value was encrypted for " + ui.Code.Sprint("dotenvage pubkey")

	case errors.Is(err, kerrors.ErrKeyExists):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Use " + ui.Code.Sprint("--force") + " to overwrite it"

	case errors.Is(err, kerrors.ErrVarNotFound),
		errors.Is(err, kerrors.ErrFileNotFound),
		errors.Is(err, kerrors.ErrNoFilesFound):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, kerrors.ErrNoFixedPoint):
		return ui.Error.Sprint("✗") + " Env file discovery did not settle: " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}

// fail prints the formatted error to stderr and returns err so the process
// exits non-zero.
func fail(w io.Writer, err error) error {
	fmt.Fprint(w, ui.EnsureNewline(formatError(err)))
	return err
}
