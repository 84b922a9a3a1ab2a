// Package cli implements the tcm command surface: publication listing and
// maintenance, business process types, and TCM URI translation.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/smnsjas/go-coreservice/internal/config"
	intlog "github.com/smnsjas/go-coreservice/internal/log"
	"github.com/smnsjas/go-coreservice/session"
)

// options carries the connection settings shared by all subcommands.
// Defaults come from the environment; flags override them.
type options struct {
	endpoint string
	username string
	password string
	domain   string
	auth     string
	version  string
	spn      string
	realm    string
	timeout  time.Duration
	insecure bool
	logFile  string
	verbose  bool
}

// RootCmd builds the tcm command tree.
func RootCmd() *cobra.Command {
	env, err := config.Load()
	if err != nil {
		// A broken environment variable should not hide the whole CLI;
		// fall back to flag-only configuration.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		env = &config.Env{Auth: "basic", Version: "web-8.5", Timeout: 60 * time.Second}
	}

	opts := &options{
		endpoint: env.Endpoint,
		username: env.Username,
		password: env.Password,
		domain:   env.Domain,
		auth:     env.Auth,
		version:  env.Version,
		spn:      env.SPN,
		realm:    env.Realm,
		timeout:  env.Timeout,
		insecure: env.Insecure,
		logFile:  env.LogFile,
	}

	root := &cobra.Command{
		Use:   "tcm",
		Short: "Manage Content Manager publications through the Core Service",
		Long: `tcm talks to the SDL Tridion Core Service to list, create and update
publications, list business process types, and translate TCM URIs
between publication namespaces.

Connection settings come from flags or TRIDION_* environment variables
(TRIDION_ENDPOINT, TRIDION_USERNAME, TRIDION_PASSWORD, ...).`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.endpoint, "endpoint", opts.endpoint, "Core Service endpoint URL")
	pf.StringVar(&opts.username, "user", opts.username, "Username for authentication")
	pf.StringVar(&opts.password, "password", opts.password, "Password (prefer TRIDION_PASSWORD or the prompt)")
	pf.StringVar(&opts.domain, "domain", opts.domain, "Windows domain for NTLM authentication")
	pf.StringVar(&opts.auth, "auth", opts.auth, "Authentication mechanism: basic, ntlm, or negotiate")
	pf.StringVar(&opts.version, "api-version", opts.version, "Server API version (2011-sp1, 2013, 2013-sp1, web-8.1, web-8.5)")
	pf.StringVar(&opts.spn, "spn", opts.spn, "Service principal name for negotiate authentication")
	pf.StringVar(&opts.realm, "realm", opts.realm, "Kerberos realm for negotiate authentication")
	pf.DurationVar(&opts.timeout, "timeout", opts.timeout, "Per-request timeout")
	pf.BoolVar(&opts.insecure, "insecure", opts.insecure, "Skip TLS certificate verification")
	pf.StringVar(&opts.logFile, "log-file", opts.logFile, "Write debug logs to this file (rotated at 5 MB)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Log requests to stderr")

	root.AddCommand(publicationCmd(opts))
	root.AddCommand(bptCmd(opts))
	root.AddCommand(uriCmd(opts))

	return root
}

// sessionConfig resolves options into a session.Config, prompting for the
// password when none was supplied.
func (o *options) sessionConfig(confirm session.ConfirmFunc) (session.Config, error) {
	cfg := session.DefaultConfig()
	cfg.Endpoint = o.endpoint
	cfg.Username = o.username
	cfg.Domain = o.domain
	cfg.SPN = o.spn
	cfg.Realm = o.realm
	cfg.Timeout = o.timeout
	cfg.InsecureSkipVerify = o.insecure
	cfg.Confirm = confirm

	switch strings.ToLower(o.auth) {
	case "", "basic":
		cfg.AuthType = session.AuthBasic
	case "ntlm":
		cfg.AuthType = session.AuthNTLM
	case "negotiate", "kerberos":
		cfg.AuthType = session.AuthNegotiate
	default:
		return cfg, fmt.Errorf("unknown auth mechanism %q", o.auth)
	}

	version, err := session.ParseVersion(o.version)
	if err != nil {
		return cfg, err
	}
	cfg.Version = version

	cfg.Password = o.password
	if cfg.Password == "" && cfg.AuthType != session.AuthNegotiate {
		pw, err := promptPassword(o.username)
		if err != nil {
			return cfg, err
		}
		cfg.Password = pw
	}

	logger, err := o.logger()
	if err != nil {
		return cfg, err
	}
	cfg.Logger = logger

	return cfg, nil
}

// logger builds the slog logger for a session: stderr when verbose, the
// rotating log file when configured, otherwise discard. Credentials are
// always redacted.
func (o *options) logger() (*slog.Logger, error) {
	var sink io.Writer
	switch {
	case o.logFile != "":
		rf, err := intlog.NewRotatingFile(o.logFile, 5*1024*1024, 3)
		if err != nil {
			return nil, err
		}
		sink = rf
	case o.verbose:
		sink = os.Stderr
	default:
		return slog.New(slog.DiscardHandler), nil
	}

	handler := slog.NewTextHandler(sink, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(intlog.NewRedactingHandler(handler)), nil
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(username string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no password supplied and stdin is not a terminal")
	}
	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

// confirmPrompt asks the user to approve a state-changing call.
func confirmPrompt(action string) bool {
	fmt.Printf("About to %s. Proceed? [y/N]: ", action)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// confirmFunc returns the confirmation gate for a command: nil (allow)
// when --yes was passed, the interactive prompt otherwise.
func confirmFunc(skip bool) session.ConfirmFunc {
	if skip {
		return nil
	}
	return confirmPrompt
}
